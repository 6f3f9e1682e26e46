package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"gotodo/internal/account/domain/services"
)

const (
	argon2idPrefix = "$argon2id$"
	argon2SaltLen  = 16
	argon2KeyLen   = 32

	errMsgGeneratingSalt = "failed to generate salt"
	errMsgParsingHash    = "failed to parse argon2id hash"
)

// Argon2Params задает стоимость argon2id.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// ServiceArgon2id хэширует пароли argon2id в формате PHC:
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>.
type ServiceArgon2id struct {
	params Argon2Params
}

// NewArgon2id создает сервис с заданными параметрами.
func NewArgon2id(params Argon2Params) *ServiceArgon2id {
	return &ServiceArgon2id{params: params}
}

// Hash хэширует пароль со случайной солью.
func (s *ServiceArgon2id) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgGeneratingSalt, services.ErrHashingFailed, err)
	}

	key := argon2.IDKey([]byte(password), salt, s.params.Time, s.params.Memory, s.params.Threads, argon2KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		s.params.Memory,
		s.params.Time,
		s.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify пересчитывает ключ с параметрами из hash и сравнивает за постоянное время.
func (s *ServiceArgon2id) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}

	params, salt, key, err := decodeArgon2id(hash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errMsgParsingHash, err)
	}

	//nolint:gosec
	candidate := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

// Matches сообщает, что hash создан argon2id.
func (s *ServiceArgon2id) Matches(hash string) bool {
	return strings.HasPrefix(hash, argon2idPrefix)
}

func decodeArgon2id(hash string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, services.ErrMalformedHashValue
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", services.ErrMalformedHashValue, err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("%w: unsupported version %d", services.ErrMalformedHashValue, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", services.ErrMalformedHashValue, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: %w", services.ErrMalformedHashValue, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, services.ErrMalformedHashValue
	}

	return params, salt, key, nil
}
