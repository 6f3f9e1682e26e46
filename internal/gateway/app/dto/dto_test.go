package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/gateway/app/dto"
	"gotodo/internal/todos/domain/entities"
)

func TestTodoRequest_DueDate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantTime    *time.Time
		wantErr     bool
	}{
		{name: "absent", body: `{"title":"x"}`},
		{name: "null", body: `{"due_date":null}`, wantPresent: true},
		{
			name:        "rfc3339 with offset",
			body:        `{"due_date":"2030-01-02T05:04:05+02:00"}`,
			wantPresent: true,
			wantTime:    ptr(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)),
		},
		{
			name:        "date only",
			body:        `{"due_date":"2030-01-02"}`,
			wantPresent: true,
			wantTime:    ptr(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)),
		},
		{name: "garbage", body: `{"due_date":"next week"}`, wantErr: true},
		{name: "number", body: `{"due_date":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.TodoRequest
			err := json.Unmarshal([]byte(tt.body), &req)

			if tt.wantErr {
				require.ErrorIs(t, err, dto.ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)

			input := req.ToInput()
			assert.Equal(t, tt.wantPresent, input.DueDate.Present)
			if tt.wantTime == nil {
				assert.Nil(t, input.DueDate.Time)
			} else {
				require.NotNil(t, input.DueDate.Time)
				assert.True(t, tt.wantTime.Equal(*input.DueDate.Time))
			}
		})
	}
}

func TestNewTodoResponse(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3600))
	todo := &entities.Todo{
		ID:          "id-1",
		OwnerID:     "owner",
		Title:       "Buy milk",
		CreatedDate: created,
	}

	raw, err := json.Marshal(dto.NewTodoResponse(todo))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "id-1",
		"title": "Buy milk",
		"description": "",
		"completed": false,
		"due_date": null,
		"created_date": "2024-05-06T06:08:09Z"
	}`, string(raw))
}

func TestNewTodoListResponse_Empty(t *testing.T) {
	raw, err := json.Marshal(dto.NewTodoListResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestProfileRequest_ToUpdate(t *testing.T) {
	var req dto.ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.io"}`), &req))

	update := req.ToUpdate(true)
	assert.True(t, update.Replace)
	assert.Nil(t, update.Username)
	require.NotNil(t, update.Email)
	assert.Equal(t, "a@b.io", *update.Email)
}

func ptr(t time.Time) *time.Time { return &t }
