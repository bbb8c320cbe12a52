package customHttpClient

import (
	"net/http"
	"time"

	"github.com/tkonda/AgentAPI/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient returns an http.Client sharing the process-wide connection
// pool, with the supplied per-request timeout.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: pooledTransport,
		Timeout:   timeout,
	}
}
