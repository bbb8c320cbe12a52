package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tkonda/AgentAPI/internal/agent"
	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/data/store"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	jobmodel "github.com/tkonda/AgentAPI/internal/domain/jobModel"
	"github.com/tkonda/AgentAPI/internal/handlers"
	"github.com/tkonda/AgentAPI/internal/job"
	"github.com/tkonda/AgentAPI/internal/rag"
	"github.com/tkonda/AgentAPI/internal/rag/docstore"
	"github.com/tkonda/AgentAPI/internal/rag/embedding"
	"github.com/tkonda/AgentAPI/internal/rag/embedding/googleEmbedding"
	"github.com/tkonda/AgentAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/tkonda/AgentAPI/internal/rag/llm"
	"github.com/tkonda/AgentAPI/internal/rag/llm/gemini"
	"github.com/tkonda/AgentAPI/internal/rag/llm/openai"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB/memoryDB"
	"github.com/tkonda/AgentAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/tkonda/AgentAPI/internal/server"
	"github.com/tkonda/AgentAPI/internal/weather"
	"github.com/tkonda/AgentAPI/internal/worker"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	_ = godotenv.Load()
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	if err := config.Validate(); err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	llmProvider, embedder, err := buildProviders(serviceContext)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "error", err)
		return
	}

	var vectorIndex vectorDB.Index
	vectorIndex, err = qdrantDB.New(serviceContext)
	if err != nil {
		logger.Error("Qdrant is offline, falling back to in-memory vector index", "error", err)
		vectorIndex = memoryDB.New()
	}

	documentStore, err := docstore.New(serviceContext, vectorIndex, embedder, config.DocumentCollectionName, config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		logger.Error("Document store failed to initialize. Shutting down.", "error", err)
		return
	}

	var compressor *rag.Compressor
	if config.EnableRetrievalCompression {
		compressor = rag.NewCompressor(llmProvider)
	}
	retriever := rag.NewRetriever(vectorIndex, embedder, config.DocumentCollectionName, config.RetrievalTopK, compressor)

	weatherClient := weather.NewClient(llmProvider, config.WeatherAPIKey(), config.WeatherBaseURL)

	var sessionStore chatModel.SessionStore
	redisSessions := store.GetRedisSessionStore(serviceContext)
	if redisSessions == nil {
		logger.Error("Redis session store is offline, using in-memory store")
		sessionStore = store.InitInMemorySessionStore()
	} else {
		sessionStore = redisSessions
	}

	orchestrator := agent.NewOrchestrator(
		agent.NewRouter(llmProvider),
		weatherClient,
		retriever,
		agent.NewGenerator(llmProvider),
		sessionStore,
	)

	//init job service and job store
	var jobStore jobmodel.JobStore
	if redisJobs := store.GetRedisJobStore(serviceContext); redisJobs != nil {
		jobStore = redisJobs
	} else {
		logger.Error("Redis job store is offline, using in-memory store")
		jobStore = store.InitInMemoryJobStore()
	}

	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})

	handlers.InitJobHandler(service)
	handlers.InitAgentHandlers(orchestrator, documentStore, sessionStore)

	//init worker pool
	worker.InitServices(service, documentStore)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildProviders(ctx context.Context) (llm.Provider, embedding.Embedder, error) {
	switch config.LLMProvider() {
	case "openai":
		provider, err := openai.New(config.OpenAIAPIKey(), config.OpenAIModelName)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := openaiEmbedding.New(config.OpenAIAPIKey(), config.OpenAIEmbeddingModel, config.EmbeddingOutputDimensionality)
		if err != nil {
			return nil, nil, err
		}
		return provider, embedder, nil
	default:
		provider, err := gemini.New(ctx, config.GeminiAPIKey(), config.GeminiModelName)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := googleEmbedding.New(ctx, config.GoogleEmbeddingModel, config.GeminiAPIKey(), config.EmbeddingOutputDimensionality)
		if err != nil {
			return nil, nil, err
		}
		return provider, embedder, nil
	}
}
