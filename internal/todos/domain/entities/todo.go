// Package entities содержит сущности домена задач.
package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gotodo/pkg/validation"
)

// ErrTodoNotFound возвращается, если задачи нет или она принадлежит другому пользователю.
var ErrTodoNotFound = errors.New("todo not found")

// Ограничения полей задачи.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 255
)

// Имена полей и сообщения валидации.
const (
	FieldTitle       = "title"
	FieldDescription = "description"

	MsgRequired           = "This field is required."
	MsgBlank              = "This field may not be blank."
	MsgTitleTooLong       = "Ensure this field has no more than 50 characters."
	MsgDescriptionTooLong = "Ensure this field has no more than 255 characters."
)

// Todo представляет задачу пользователя. OwnerID задается только сервисом.
type Todo struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
	CreatedDate time.Time
}

// OptionalTime различает отсутствующее поле (Present=false) и явный null (Present, Time=nil).
type OptionalTime struct {
	Present bool
	Time    *time.Time
}

// TodoInput - поля задачи, пришедшие от клиента. nil означает отсутствие поля.
type TodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     OptionalTime
}

// Normalize обрезает пробелы по краям title и description.
func (in TodoInput) Normalize() TodoInput {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		in.Description = &description
	}
	return in
}

// Validate проверяет переданные поля; titleRequired задается для создания и полной замены.
func (in TodoInput) Validate(titleRequired bool) error {
	errs := validation.Errors{}

	switch {
	case in.Title == nil:
		if titleRequired {
			errs.Add(FieldTitle, MsgRequired)
		}
	case *in.Title == "":
		errs.Add(FieldTitle, MsgBlank)
	case utf8.RuneCountInString(*in.Title) > MaxTitleLength:
		errs.Add(FieldTitle, MsgTitleTooLong)
	}

	if in.Description != nil && utf8.RuneCountInString(*in.Description) > MaxDescriptionLength {
		errs.Add(FieldDescription, MsgDescriptionTooLong)
	}

	return errs.Err()
}

// Apply переносит переданные поля в задачу.
func (in TodoInput) Apply(todo *Todo) {
	if in.Title != nil {
		todo.Title = *in.Title
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Completed != nil {
		todo.Completed = *in.Completed
	}
	if in.DueDate.Present {
		todo.DueDate = in.DueDate.Time
	}
}

// Replace присваивает все изменяемые поля; отсутствующие получают значения по умолчанию.
func (in TodoInput) Replace(todo *Todo) {
	todo.Title = ""
	todo.Description = ""
	todo.Completed = false
	todo.DueDate = nil
	in.Apply(todo)
}
