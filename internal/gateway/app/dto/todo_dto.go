package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"gotodo/internal/todos/domain/entities"
)

// Форматы, принимаемые для due_date.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Сообщения разбора due_date.
const (
	FieldDueDate      = "due_date"
	MsgInvalidDueDate = "Datetime has wrong format. Use RFC 3339, e.g. 2006-01-02T15:04:05Z."
)

// ErrInvalidDueDate возвращается при неразборчивом значении due_date.
var ErrInvalidDueDate = errors.New(MsgInvalidDueDate)

// NullableTime различает отсутствующее поле, явный null и значение.
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// UnmarshalJSON вызывается только для присутствующего поля.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Time = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DueDateError{}
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			n.Time = &utc
			return nil
		}
	}
	return &DueDateError{}
}

// DueDateError - ошибка разбора поля due_date.
type DueDateError struct{}

func (e *DueDateError) Error() string {
	return FieldDueDate + ": " + MsgInvalidDueDate
}

// Field возвращает имя поля.
func (e *DueDateError) Field() string { return FieldDueDate }

// Message возвращает сообщение для клиента.
func (e *DueDateError) Message() string { return MsgInvalidDueDate }

// Unwrap позволяет сравнивать ошибку с ErrInvalidDueDate.
func (e *DueDateError) Unwrap() error {
	return ErrInvalidDueDate
}

// TodoRequest содержит поля задачи из тела запроса. id, created_date и
// владелец из тела игнорируются.
type TodoRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Completed   *bool        `json:"completed"`
	DueDate     NullableTime `json:"due_date"`
}

// ToInput переводит запрос во входные данные сервиса задач.
func (r TodoRequest) ToInput() entities.TodoInput {
	return entities.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate: entities.OptionalTime{
			Present: r.DueDate.Set,
			Time:    r.DueDate.Time,
		},
	}
}

// TodoResponse - представление задачи в ответе.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedDate time.Time  `json:"created_date"`
}

// NewTodoResponse строит ответ из сущности задачи.
func NewTodoResponse(t *entities.Todo) TodoResponse {
	resp := TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedDate: t.CreatedDate.UTC(),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		resp.DueDate = &due
	}
	return resp
}

// NewTodoListResponse строит ответ со списком задач; пустой список кодируется как [].
func NewTodoListResponse(todos []*entities.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, NewTodoResponse(t))
	}
	return out
}
