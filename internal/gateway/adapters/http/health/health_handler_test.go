package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/gateway/adapters/http/health"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     []health.Check
		wantStatus int
		wantReport health.Report
	}{
		{
			name:       "all up",
			checks:     []health.Check{{Name: "postgres", Pinger: ok}, {Name: "redis", Pinger: ok}},
			wantStatus: http.StatusOK,
			wantReport: health.Report{
				Status: health.StatusOK,
				Checks: map[string]string{"postgres": health.StatusOK, "redis": health.StatusOK},
			},
		},
		{
			name:       "redis down",
			checks:     []health.Check{{Name: "postgres", Pinger: ok}, {Name: "redis", Pinger: down}},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: health.Report{
				Status: health.StatusUnavailable,
				Checks: map[string]string{"postgres": health.StatusOK, "redis": health.StatusUnavailable},
			},
		},
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantReport: health.Report{Status: health.StatusOK, Checks: map[string]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/healthz", health.NewHandler(tt.checks...).Health)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var report health.Report
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantReport, report)
		})
	}
}
