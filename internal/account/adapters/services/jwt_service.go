package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"

	"gotodo/internal/account/domain/services"
	svc "gotodo/internal/account/ports/services"
	"gotodo/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateToken   = "GenerateToken"
	methodValidateToken   = "ValidateToken"
	msgGeneratingToken    = "generating access token"
	msgValidatingToken    = "validating token"
	msgTokenGenerated     = "token generated successfully"
	msgTokenValidated     = "token validated successfully"
	msgInvalidToken       = "invalid token format"
	msgTokenExpired       = "token has expired"
	errSigningToken       = "error signing token" //nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"

	sessionIDLength = 21
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует svc.TokenService на HS256.
type ServiceJWT struct {
	config    services.JWTConfig
	sessionID func() string
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) (svc.TokenService, error) {
	gen, err := nanoid.Standard(sessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("creating session id generator: %w", err)
	}

	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
		sessionID: gen,
	}, nil
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.SessionID,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

func jwtToDomainClaims(claims Claims) services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return services.JWTClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		SessionID: claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

// GenerateToken выпускает токен с новым идентификатором сессии в jti.
func (s *ServiceJWT) GenerateToken(ctx context.Context, userID, username string) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	domainClaims := services.JWTClaims{
		UserID:    userID,
		Username:  username,
		SessionID: s.sessionID(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(domainClaims))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", domainClaims.ExpiresAt))
	return &services.IssuedToken{
		UserID:    userID,
		Username:  username,
		Token:     tokenString,
		SessionID: domainClaims.SessionID,
		ExpiresAt: domainClaims.ExpiresAt,
	}, nil
}

// ValidateToken проверяет подпись и срок действия токена.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.UserID == "" || claims.ID == "" {
		log.Debug(ctx, "user_id or jti claim is empty")
		return nil, fmt.Errorf("%s: %w: missing user_id or jti", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	domainClaims := jwtToDomainClaims(*claims)
	log.Debug(ctx, msgTokenValidated, zap.String("userID", domainClaims.UserID))
	return &domainClaims, nil
}
