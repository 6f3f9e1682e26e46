// Package services содержит реализации сервисов паролей и токенов.
package services

import (
	"fmt"
	"time"

	"gotodo/internal/account/ports/services"
)

// Имена алгоритмов хэширования, принимаемые фабрикой.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// FactoryConfig содержит параметры сервисов учетных записей.
type FactoryConfig struct {
	SecretKey      string
	TokenTTL       time.Duration
	PasswordHasher string
	BcryptCost     int
	Argon2         Argon2Params
}

// ServiceFactory создает все необходимые сервисы для аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику. Хэши обоих алгоритмов проверяются всегда,
// новые пароли хэшируются алгоритмом cfg.PasswordHasher.
func NewServiceFactory(cfg FactoryConfig) (*ServiceFactory, error) {
	argon := NewArgon2id(cfg.Argon2)
	bcrypt := NewBcrypt(cfg.BcryptCost)

	var passwordService services.PasswordService
	switch cfg.PasswordHasher {
	case HasherArgon2id:
		passwordService = NewPasswordService(argon, bcrypt)
	case HasherBcrypt:
		passwordService = NewPasswordService(bcrypt, argon)
	default:
		return nil, fmt.Errorf("unknown password hasher %q", cfg.PasswordHasher)
	}

	tokenService, err := NewJWT(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &ServiceFactory{
		passwordService: passwordService,
		tokenService:    tokenService,
	}, nil
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
