package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tkonda/AgentAPI/internal/config"
	"github.com/tkonda/AgentAPI/internal/domain/jobModel"
	"github.com/tkonda/AgentAPI/internal/job"
	"github.com/tkonda/AgentAPI/internal/metrics"
	"github.com/tkonda/AgentAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

type newJobData struct {
	id       string
	traceId  string
	filename string
	filePath string
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateIngestJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new ingestion job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{
		Id:          newJob.id,
		TraceId:     newJob.traceId,
		Filename:    newJob.filename,
		FilePath:    newJob.filePath,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new ingestion job")

	// Ingestion involves batch embedding calls that can take a while, so every
	// ingestion job signals the dispatcher. Idle workers retire on their own.
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	logJH.Debug("Request count ", accurateCount)
	h.service.DispatcherChannel <- true
}
