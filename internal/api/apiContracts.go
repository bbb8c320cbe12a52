package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Filename  string            `json:"filename" example:"report.pdf"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type QueryRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type QueryResponse struct {
	SessionId string `json:"session_id"`
	Answer    string `json:"answer"`
}

type DocumentListResponse struct {
	Documents []string `json:"documents"`
}

type DocumentDeleteResponse struct {
	Message string `json:"message"`
}

type SessionResetResponse struct {
	SessionId string `json:"session_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
