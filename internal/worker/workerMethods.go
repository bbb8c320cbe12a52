package worker

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tkonda/AgentAPI/internal/config"
	jobmodel "github.com/tkonda/AgentAPI/internal/domain/jobModel"
	"github.com/tkonda/AgentAPI/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureTurnMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestJobTimeout)
	defer cancel()
	logger.Debug("Processing job:", "job Id:", job.Id, "trace Id", job.TraceId)

	job.CurrentStep = jobmodel.IngestExtracting
	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = ingestDocument(ctx, job)

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	job.CurrentStep = jobmodel.Complete
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func ingestDocument(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	result := _ingestor.Ingest(ctx, job.FilePath, job.Filename)
	job.Result = result

	// The uploaded copy is only needed for the duration of the job.
	if err := os.Remove(job.FilePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove uploaded file", "path", job.FilePath, "err", err)
	}

	if strings.HasPrefix(result, "Error:") {
		job.Status = jobmodel.JobStatusError
		job.CurrentStep = jobmodel.Error
		job.Error = jobmodel.JobError{
			Code:    http.StatusUnprocessableEntity,
			Message: result,
			Retry:   false,
		}
	}
	return job
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
