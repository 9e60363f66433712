package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	LLM       LLMConfig
	Search    SearchConfig
	Scraper   ScraperConfig
	Redis     RedisConfig
	Pipeline  PipelineConfig
	UploadDir string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type LLMConfig struct {
	OpenAIAPIKey string
	Model        string
	Timeout      time.Duration
}

type SearchConfig struct {
	TavilyAPIKey string
	MaxResults   int
}

type ScraperConfig struct {
	FirecrawlAPIKey string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// PipelineConfig holds the tunable bounds of a study run. Defaults mirror the
// values the pipeline was calibrated with.
type PipelineConfig struct {
	ChunkSize           int
	ChunkOverlap        int
	MaxSummaryWords     int
	NumKeyPoints        int
	AnalysisContentMax  int
	QuizContentMax      int
	DefaultNumQuestions int
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("llm.model", "gpt-4-turbo-preview")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("search.max_results", 3)
	viper.SetDefault("redis.ttl", 3600)
	viper.SetDefault("pipeline.chunk_size", 1000)
	viper.SetDefault("pipeline.chunk_overlap", 200)
	viper.SetDefault("pipeline.max_summary_words", 500)
	viper.SetDefault("pipeline.num_key_points", 10)
	viper.SetDefault("pipeline.analysis_content_max", 8000)
	viper.SetDefault("pipeline.quiz_content_max", 3000)
	viper.SetDefault("pipeline.default_num_questions", 5)
	viper.SetDefault("upload_dir", "uploads")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; env vars and defaults are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		LLM: LLMConfig{
			OpenAIAPIKey: viper.GetString("llm.openai_api_key"),
			Model:        viper.GetString("llm.model"),
			Timeout:      viper.GetDuration("llm.timeout") * time.Second,
		},
		Search: SearchConfig{
			TavilyAPIKey: viper.GetString("search.tavily_api_key"),
			MaxResults:   viper.GetInt("search.max_results"),
		},
		Scraper: ScraperConfig{
			FirecrawlAPIKey: viper.GetString("scraper.firecrawl_api_key"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			TTL:      viper.GetDuration("redis.ttl") * time.Second,
		},
		Pipeline: PipelineConfig{
			ChunkSize:           viper.GetInt("pipeline.chunk_size"),
			ChunkOverlap:        viper.GetInt("pipeline.chunk_overlap"),
			MaxSummaryWords:     viper.GetInt("pipeline.max_summary_words"),
			NumKeyPoints:        viper.GetInt("pipeline.num_key_points"),
			AnalysisContentMax:  viper.GetInt("pipeline.analysis_content_max"),
			QuizContentMax:      viper.GetInt("pipeline.quiz_content_max"),
			DefaultNumQuestions: viper.GetInt("pipeline.default_num_questions"),
		},
		UploadDir: viper.GetString("upload_dir"),
	}

	// Override with environment variables if set
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.OpenAIAPIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		config.Search.TavilyAPIKey = key
	}
	if key := os.Getenv("FIRECRAWL_API_KEY"); key != "" {
		config.Scraper.FirecrawlAPIKey = key
	}
	if address := os.Getenv("REDIS_ADDRESS"); address != "" {
		config.Redis.Address = address
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
