package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/dashboard-be/internal/handlers"
	"github.com/ammerola/dashboard-be/test/helpers"
)

type fakeDatabase struct {
	err error
}

func (f *fakeDatabase) Ping(context.Context) error {
	return f.err
}

func (f *fakeDatabase) Health(context.Context) map[string]any {
	return map[string]any{"total_conns": int32(3)}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		dbErr          error
		stopRedis      bool
		path           string
		expectedStatus int
		validate       func(*testing.T, map[string]any)
	}{
		{
			name:           "health_reports_all_dependencies",
			path:           "/health",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "healthy", body["status"])
				assert.Equal(t, "test", body["environment"])

				services := body["services"].(map[string]any)
				assert.Contains(t, services, "database")
				assert.Contains(t, services, "redis")
				assert.NotContains(t, services, "asynq")

				redisInfo := services["redis"].(map[string]any)
				assert.Equal(t, "healthy", redisInfo["status"])
				assert.Equal(t, "PONG", redisInfo["details"].(map[string]any)["ping"])
			},
		},
		{
			name:           "health_degrades_on_database_failure",
			dbErr:          errors.New("connection refused"),
			path:           "/health",
			expectedStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "degraded", body["status"])

				database := body["services"].(map[string]any)["database"].(map[string]any)
				assert.Equal(t, "unhealthy", database["status"])
				assert.Equal(t, "connection refused", database["message"])
			},
		},
		{
			name:           "ready_when_stores_respond",
			path:           "/ready",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["ready"])
			},
		},
		{
			name:           "not_ready_without_redis",
			stopRedis:      true,
			path:           "/ready",
			expectedStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["ready"])
				details := body["details"].(map[string]any)
				assert.Equal(t, "ready", details["database"])
				assert.Equal(t, "not ready", details["redis"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testRedis := helpers.SetupTestRedis(t)
			if tt.stopRedis {
				testRedis.Server.Close()
			}

			h := handlers.NewHealthHandler(&fakeDatabase{err: tt.dbErr}, testRedis.Client, nil,
				helpers.LoadTestConfig(), helpers.TestLogger())
			mux := http.NewServeMux()
			h.Register(mux)

			w := serve(mux, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			tt.validate(t, body)
		})
	}
}
