package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tkonda/AgentAPI/internal/adapter/utils"
	"github.com/tkonda/AgentAPI/internal/api"
	"github.com/tkonda/AgentAPI/internal/config"
)

func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DocumentListResponse{Documents: _docStore.List()})
}

func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	filename := utils.GetChiURLParam(r, "filename")
	if filename == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "filename is required")
		return
	}

	message := _docStore.Delete(r.Context(), filename)
	if strings.HasPrefix(message, "Error:") {
		writeJsonResponse(w, http.StatusNotFound, api.DocumentDeleteResponse{Message: message})
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DocumentDeleteResponse{Message: message})
}

// SessionResetHandler drops the session's history and hands back a fresh
// session id so the old one can never be resumed by accident.
func SessionResetHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	sessionId := utils.GetChiURLParam(r, "id")
	if sessionId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "session id is required")
		return
	}

	if err := _sessions.Delete(r.Context(), sessionId); err != nil {
		logRH.Error("Failed to reset session", "sessionId", sessionId, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Failed to reset session")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SessionResetResponse{SessionId: utils.GetNewUUID()})
}

// TeardownHandler clears the given session and every ingested document. It
// backs the client's logout flow.
func TeardownHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := logRH.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	sessionId := r.URL.Query().Get("session_id")
	if sessionId != "" {
		if err := _sessions.Delete(r.Context(), sessionId); err != nil {
			log.Error("Failed to delete session during teardown", "sessionId", sessionId, "error", err)
		}
	}

	count := len(_docStore.List())
	_docStore.DeleteAll(r.Context())
	log.Info("Teardown complete", "documentsRemoved", count)

	writeJsonResponse(w, http.StatusOK, api.DocumentDeleteResponse{
		Message: fmt.Sprintf("Teardown complete. %d documents removed.", count),
	})
}
