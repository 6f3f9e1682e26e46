package entities

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gotodo/pkg/validation"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Ограничения полей пользователя.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MinPasswordLength = 8
)

// Имена полей и сообщения валидации, возвращаемые клиенту.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"

	MsgRequired         = "This field is required."
	MsgUsernameTooLong  = "Ensure this field has no more than 150 characters."
	MsgUsernameInvalid  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgUsernameTaken    = "A user with that username already exists."
	MsgEmailInvalid     = "Enter a valid email address."
	MsgEmailTooLong     = "Ensure this field has no more than 254 characters."
	MsgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
)

var (
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User представляет основную сущность домена пользователя.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateUsername добавляет в errs нарушения для имени пользователя.
func ValidateUsername(username string, errs validation.Errors) {
	switch {
	case username == "":
		errs.Add(FieldUsername, MsgRequired)
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		errs.Add(FieldUsername, MsgUsernameTooLong)
	case !usernameRegex.MatchString(username):
		errs.Add(FieldUsername, MsgUsernameInvalid)
	}
}

// ValidateEmail проверяет email. Пустой email допустим.
func ValidateEmail(email string, errs validation.Errors) {
	if email == "" {
		return
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		errs.Add(FieldEmail, MsgEmailTooLong)
		return
	}
	if !emailRegex.MatchString(email) {
		errs.Add(FieldEmail, MsgEmailInvalid)
	}
}

// ValidatePassword проверяет пароль в открытом виде.
func ValidatePassword(password string, errs validation.Errors) {
	switch {
	case password == "":
		errs.Add(FieldPassword, MsgRequired)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		errs.Add(FieldPassword, MsgPasswordTooShort)
	}
}

// NormalizeEmail убирает пробелы и приводит домен к нижнему регистру.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
