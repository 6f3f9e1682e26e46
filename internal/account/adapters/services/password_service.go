package services

import (
	"context"
	"fmt"

	"gotodo/internal/account/domain/services"
	svc "gotodo/internal/account/ports/services"
)

// Hasher - алгоритм хэширования, распознающий свои хэши.
type Hasher interface {
	svc.PasswordService
	Matches(hash string) bool
}

// ServicePassword хэширует основным алгоритмом и проверяет хэши любого из известных.
type ServicePassword struct {
	primary Hasher
	known   []Hasher
}

// NewPasswordService создает сервис с основным алгоритмом primary.
func NewPasswordService(primary Hasher, others ...Hasher) svc.PasswordService {
	return &ServicePassword{
		primary: primary,
		known:   append([]Hasher{primary}, others...),
	}
}

// Hash хэширует пароль основным алгоритмом.
func (s *ServicePassword) Hash(ctx context.Context, password string) (string, error) {
	return s.primary.Hash(ctx, password)
}

// Verify выбирает алгоритм по формату хэша.
func (s *ServicePassword) Verify(ctx context.Context, password, hash string) (bool, error) {
	for _, h := range s.known {
		if h.Matches(hash) {
			return h.Verify(ctx, password, hash)
		}
	}
	return false, fmt.Errorf("verifying password: %w", services.ErrUnknownHashFormat)
}
