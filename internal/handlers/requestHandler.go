package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tkonda/AgentAPI/internal/adapter"
	"github.com/tkonda/AgentAPI/internal/adapter/utils"
	"github.com/tkonda/AgentAPI/internal/agent"
	"github.com/tkonda/AgentAPI/internal/api"
	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/domain/agentModel"
	"github.com/tkonda/AgentAPI/internal/domain/chatModel"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// DocumentStore is the slice of the ingestion subsystem the HTTP layer needs.
type DocumentStore interface {
	List() []string
	Delete(ctx context.Context, filename string) string
	DeleteAll(ctx context.Context)
}

var (
	agentOnce     sync.Once
	_orchestrator *agent.Orchestrator
	_docStore     DocumentStore
	_sessions     chatModel.SessionStore
)

func InitAgentHandlers(orchestrator *agent.Orchestrator, docStore DocumentStore, sessions chatModel.SessionStore) {
	agentOnce.Do(func() {
		_orchestrator = orchestrator
		_docStore = docStore
		_sessions = sessions
		if logRH == nil {
			logRH = logger_i.NewLogger("RequestHandler")
		}
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// QueryHandler answers one conversational turn. The response is NDJSON: one
// line per pipeline step as it completes, then a final line with the answer.
func QueryHandler(w http.ResponseWriter, request *http.Request) {

	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the Query handler reader :", err)
		}
	}(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionId, "Bad Request")
		return
	}

	sessionId := requestData.SessionId
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
		logRH.Debug("New session : ", "sessionId:", sessionId)
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, canFlush := w.(http.Flusher)

	encoder := json.NewEncoder(w)
	emit := func(event agentModel.StepEvent) {
		if err := encoder.Encode(event); err != nil {
			logRH.Error("Error streaming step event", "error", err)
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}

	answer, err := _orchestrator.Run(request.Context(), sessionId, requestData.Question, emit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logRH.Warn("Query abandoned by client", "sessionId", sessionId)
			return
		}
		logRH.Error("Query failed", "sessionId", sessionId, "error", err)
		_ = encoder.Encode(api.ErrorResponse{Error: "Failed to generate an answer"})
		return
	}

	if err := encoder.Encode(api.QueryResponse{SessionId: sessionId, Answer: answer}); err != nil {
		logRH.Error("Error writing final answer", "error", err)
	}
}

func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler receives a document via multipart/form-data, saves it to a
// temporary directory and queues an ingestion job.
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	// The original filename is the document's identity in the index. The copy
	// on disk gets a unique prefix so concurrent uploads never collide.
	tempName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, tempName)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Write error")
		return
	}

	newJob := newJobData{
		id:       utils.GetNewUUID(),
		traceId:  r.Context().Value(config.TRACE_ID_KEY).(string),
		filename: fileMetadata.Filename,
		filePath: tempFilePath,
	}
	CreateIngestJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}
