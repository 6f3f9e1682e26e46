package response_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountEntities "gotodo/internal/account/domain/entities"
	accountServices "gotodo/internal/account/domain/services"
	"gotodo/internal/gateway/adapters/http/response"
	"gotodo/internal/gateway/app/dto"
	todoEntities "gotodo/internal/todos/domain/entities"
	"gotodo/pkg/validation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantFields bool
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("validating: %w", validation.Field("title", "required")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    response.MsgValidationFailed,
			wantFields: true,
		},
		{
			name:       "invalid credentials",
			err:        fmt.Errorf("login: %w", accountServices.ErrInvalidCredentials),
			wantStatus: http.StatusBadRequest,
			wantMsg:    response.MsgInvalidCredential,
		},
		{
			name:       "unauthenticated",
			err:        accountServices.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    response.MsgUnauthenticated,
		},
		{
			name:       "todo not found",
			err:        fmt.Errorf("get: %w", todoEntities.ErrTodoNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    response.MsgNotFound,
		},
		{
			name:       "user not found",
			err:        accountEntities.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    response.MsgNotFound,
		},
		{
			name:       "client fiber error",
			err:        fiber.ErrRequestEntityTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsg:    fiber.ErrRequestEntityTooLarge.Message,
		},
		{
			name:       "unexpected",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    response.MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := response.Classify(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.Equal(t, tt.wantFields, len(body.Fields) > 0)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   error
		wantField string
	}{
		{name: "empty body", body: ""},
		{name: "object", body: `{"title":"x","unknown":1}`},
		{name: "syntax error", body: `{"title":`, wantErr: response.ErrMalformedJSON},
		{name: "wrong type", body: `{"completed":"yes"}`, wantErr: validation.ErrInvalid, wantField: "completed"},
		{name: "bad due date", body: `{"due_date":"soon"}`, wantErr: validation.ErrInvalid, wantField: "due_date"},
		{name: "not an object", body: `[1,2]`, wantErr: response.ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/", func(ctx fiber.Ctx) error {
				var req dto.TodoRequest
				err := response.DecodeBody(ctx, &req)

				if tt.wantErr == nil {
					require.NoError(t, err)
					return ctx.SendStatus(fiber.StatusOK)
				}
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantField != "" {
					var verrs validation.Errors
					require.ErrorAs(t, err, &verrs)
					assert.Contains(t, verrs, tt.wantField)
				}
				return response.Error(ctx, err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			require.NoError(t, err)
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)

			if tt.wantErr == nil {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			} else {
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			}
		})
	}
}

func TestDecodeBody_UsesAppJSONDecoder(t *testing.T) {
	errDecoder := errors.New("decoder rejected body")
	calls := 0

	app := fiber.New(fiber.Config{
		JSONDecoder: func([]byte, any) error {
			calls++
			return errDecoder
		},
	})
	app.Post("/", func(ctx fiber.Ctx) error {
		var req dto.TodoRequest
		err := response.DecodeBody(ctx, &req)
		require.ErrorIs(t, err, errDecoder)
		require.ErrorIs(t, err, response.ErrMalformedJSON)
		return response.Error(ctx, err)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, calls)
}
