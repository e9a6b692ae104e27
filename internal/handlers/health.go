// internal/handlers/health.go
package handlers

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/dashboard-be/internal/pkg/config"
)

// DatabaseChecker is the part of the database the health endpoints use
type DatabaseChecker interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]any
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        DatabaseChecker
	redis     *redis.Client
	asynq     *asynq.Inspector
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. asynqInspector may be nil.
func NewHealthHandler(
	database DatabaseChecker,
	redisClient *redis.Client,
	asynqInspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:        database,
		redis:     redisClient,
		asynq:     asynqInspector,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// Register adds /health and /ready
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Readiness)
}

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	ResponseTime string         `json:"response_time,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

type dependencyCheck struct {
	name  string
	check func(ctx context.Context, details map[string]any) error
}

func (h *HealthHandler) dependencies() []dependencyCheck {
	checks := []dependencyCheck{
		{name: "database", check: h.checkDatabase},
		{name: "redis", check: h.checkRedis},
	}
	if h.asynq != nil {
		checks = append(checks, dependencyCheck{name: "asynq", check: h.checkAsynq})
	}
	return checks
}

// Health handles GET /health with per-dependency details
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      "healthy",
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now(),
		Services:    make(map[string]ServiceInfo),
		System:      systemInfo(),
	}

	for _, dep := range h.dependencies() {
		start := time.Now()
		info := ServiceInfo{Status: "healthy", Details: map[string]any{}}

		if err := dep.check(ctx, info.Details); err != nil {
			info.Status = "unhealthy"
			info.Message = err.Error()
			health.Status = "degraded"
			h.logger.ErrorContext(ctx, "health check failed",
				slog.String("dependency", dep.name),
				slog.String("error", err.Error()))
		}

		info.ResponseTime = time.Since(start).String()
		health.Services[dep.name] = info
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, h.logger, statusCode, health)
}

// Readiness handles GET /ready. Only the stores the API cannot serve
// without are checked.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := make(map[string]string)

	for name, ping := range map[string]func(context.Context) error{
		"database": h.db.Ping,
		"redis":    func(ctx context.Context) error { return h.redis.Ping(ctx).Err() },
	} {
		if err := ping(ctx); err != nil {
			ready = false
			details[name] = "not ready"
			continue
		}
		details[name] = "ready"
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, h.logger, statusCode, map[string]any{
		"ready":   ready,
		"details": details,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context, details map[string]any) error {
	if err := h.db.Ping(ctx); err != nil {
		return err
	}

	for k, v := range h.db.Health(ctx) {
		details[k] = v
	}
	return nil
}

func (h *HealthHandler) checkRedis(ctx context.Context, details map[string]any) error {
	pong, err := h.redis.Ping(ctx).Result()
	if err != nil {
		return err
	}
	details["ping"] = pong

	if info, err := h.redis.Info(ctx, "server").Result(); err == nil {
		if version := infoField(info, "redis_version"); version != "" {
			details["version"] = version
		}
	}

	stats := h.redis.PoolStats()
	details["total_conns"] = stats.TotalConns
	details["idle_conns"] = stats.IdleConns
	details["stale_conns"] = stats.StaleConns

	return nil
}

func (h *HealthHandler) checkAsynq(_ context.Context, details map[string]any) error {
	queues, err := h.asynq.Queues()
	if err != nil {
		return err
	}

	queueStats := make(map[string]any, len(queues))
	for _, queue := range queues {
		qInfo, err := h.asynq.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		queueStats[queue] = map[string]any{
			"size":     qInfo.Size,
			"active":   qInfo.Active,
			"pending":  qInfo.Pending,
			"retry":    qInfo.Retry,
			"archived": qInfo.Archived,
			"paused":   qInfo.Paused,
		}
	}
	details["queues"] = queueStats

	if servers, err := h.asynq.Servers(); err == nil {
		details["servers"] = len(servers)
	}

	return nil
}

// infoField extracts key from the output of the redis INFO command
func infoField(info, key string) string {
	scanner := bufio.NewScanner(strings.NewReader(info))
	for scanner.Scan() {
		if value, ok := strings.CutPrefix(scanner.Text(), key+":"); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func systemInfo() SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		MemoryAllocMB: memStats.Alloc / 1024 / 1024,
		NumGC:         memStats.NumGC,
	}
}
