// Package dto содержит объекты передачи данных для HTTP API.
package dto

import (
	"gotodo/internal/account/domain/entities"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest содержит учетные данные для получения токена.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse содержит выданный токен.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileRequest содержит изменения профиля. Пароль в ответах не возвращается.
type ProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ToUpdate переводит запрос в изменение профиля.
func (r ProfileRequest) ToUpdate(replace bool) entities.ProfileUpdate {
	return entities.ProfileUpdate{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Replace:  replace,
	}
}

// UserResponse - публичное представление пользователя.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserResponse строит ответ из сущности пользователя.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{Username: u.Username, Email: u.Email}
}
