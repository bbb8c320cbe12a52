package config

import (
	"errors"
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	EmbeddingOutputDimensionality int32 = 768
	DocumentCollectionName              = "agent-documents"

	//retrieval
	RetrievalTopK = 5
	//compression pass distills retrieved chunks to query-relevant sentences
	EnableRetrievalCompression = false

	//chunking
	ChunkSize    = 1000
	ChunkOverlap = 200

	//conversation memory: sliding window, last N messages fed to generation
	MaxHistoryMessages = 20

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	IngestJobTimeout                = 5 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //query streaming holds the response open
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//providers: "gemini" or "openai"
	DefaultLLMProvider = "gemini"

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//per-call upstream budgets
	LLMCallTimeout        = 30 * time.Second
	EmbeddingCallTimeout  = 30 * time.Second
	EmbeddingRetryBackoff = 5 * time.Second
	WeatherCallTimeout    = 10 * time.Second

	//weather provider
	WeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	RedisJobStore     = 0
	RedisSessionStore = 1

	RedisJobStoreTTL     = 24 * time.Hour
	RedisSessionStoreTTL = 24 * time.Hour
)

// Credentials and provider selection come from the environment so the binary
// never ships with embedded keys.
func GeminiAPIKey() string  { return os.Getenv("GEMINI_API_KEY") }
func OpenAIAPIKey() string  { return os.Getenv("OPENAI_API_KEY") }
func WeatherAPIKey() string { return os.Getenv("OPENWEATHERMAP_API_KEY") }

func LLMProvider() string {
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		return p
	}
	return DefaultLLMProvider
}

// Validate fails fast on configuration errors so they never surface per-query.
func Validate() error {
	if EmbeddingOutputDimensionality <= 0 {
		return errors.New("embedding dimensionality must be positive")
	}
	switch LLMProvider() {
	case "gemini":
		if GeminiAPIKey() == "" {
			return errors.New("GEMINI_API_KEY is not set")
		}
	case "openai":
		if OpenAIAPIKey() == "" {
			return errors.New("OPENAI_API_KEY is not set")
		}
	default:
		return errors.New("unknown LLM_PROVIDER: " + LLMProvider())
	}
	if WeatherAPIKey() == "" {
		return errors.New("OPENWEATHERMAP_API_KEY is not set")
	}
	return nil
}
