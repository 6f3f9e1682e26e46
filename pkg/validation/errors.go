// Package validation содержит ошибку валидации с привязкой сообщений к полям.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalid - общий признак ошибки валидации для errors.Is.
var ErrInvalid = errors.New("validation failed")

// Errors хранит сообщения об ошибках по именам полей.
type Errors map[string][]string

// Add добавляет сообщение для поля.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Err возвращает e как error или nil, если ошибок нет.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Error собирает сообщения в стабильном порядке полей.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

// Is сопоставляет Errors с ErrInvalid.
func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Field создает ошибку с одним сообщением.
func Field(field, message string) Errors {
	return Errors{field: {message}}
}
