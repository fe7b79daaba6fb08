package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
)

const healthProbeTimeout = 2 * time.Second

// PendingLoader reads the parked result writes. Reading them doubles as a
// storage probe.
type PendingLoader interface {
	Load(ctx context.Context) ([]model.PendingWrite, error)
}

// SystemHandler reports service health and Go runtime metrics.
type SystemHandler struct {
	pending   PendingLoader
	driver    string
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(pending PendingLoader, driver string, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		pending:   pending,
		driver:    driver,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type systemMetrics struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Storage string `json:"storage"`

	// Retry backlog parked in storage
	PendingWrites int `json:"pending_writes"`

	// Go Application
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapSys    uint64 `json:"heap_sys"`
	NumGC      uint32 `json:"num_gc"`
	GoVersion  string `json:"go_version"`
	NumCPU     int    `json:"num_cpu"`
}

// Health godoc
// GET /health
// Reports 503 while the storage backend is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	m := h.collect()
	pending, err := h.pending.Load(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("Storage health probe failed")
		m.Status = "degraded"
		response.Success(c, http.StatusServiceUnavailable, m)
		return
	}
	m.PendingWrites = len(pending)
	response.Success(c, http.StatusOK, m)
}

func (h *SystemHandler) collect() systemMetrics {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return systemMetrics{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		Storage:    h.driver,
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		NumGC:      ms.NumGC,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
