package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gotodo/internal/account/domain/entities"
	"gotodo/internal/account/domain/services"
	"gotodo/internal/account/ports/api"
	"gotodo/internal/account/ports/repositories"
	svc "gotodo/internal/account/ports/services"
	"gotodo/pkg/logger"
	"gotodo/pkg/validation"
)

const (
	methodRegister         = "Register"
	methodIssueToken       = "IssueToken"
	methodAuthenticate     = "Authenticate"
	methodRevokeToken      = "RevokeToken"
	methodGetOwnProfile    = "GetOwnProfile"
	methodUpdateOwnProfile = "UpdateOwnProfile"

	msgStartRegistration    = "starting user registration"
	msgValidationFailed     = "validation failed"
	msgUsernameExists       = "user with this username already exists"
	msgUserRegistered       = "user registered successfully"
	msgLoginAttempt         = "token requested"
	msgLoginNonExistent     = "token requested for non-existent username"
	msgInvalidPasswordAuth  = "invalid password provided"
	msgTokenIssued          = "token issued"
	msgTokenRejected        = "token rejected"
	msgSessionMismatch      = "session does not belong to token subject"
	msgTokenRevoked         = "token revoked"
	msgProfileRetrieved     = "user profile retrieved"
	msgProfileUpdated       = "user profile updated"
	msgOtherSessionsRevoked = "other sessions revoked after password change"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate token"
	msgErrStoreSession      = "failed to store session"
	msgErrFindSession       = "failed to look up session"
	msgErrRevokeSession     = "failed to revoke session"
	msgErrUpdateUser        = "failed to update user"

	errCtxValidating         = "validating input"
	errCtxCheckingUser       = "checking existing user"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating token"
	errCtxStoringSession     = "storing session"
	errCtxValidatingToken    = "validating token"
	errCtxFindingSession     = "finding session"
	errCtxRevokingSession    = "revoking session"
	errCtxUpdatingUser       = "updating user"
)

// AccountUseCaseImpl реализует api.AccountUseCase и api.Authenticator.
type AccountUseCaseImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

var (
	_ api.AccountUseCase = (*AccountUseCaseImpl)(nil)
	_ api.Authenticator  = (*AccountUseCaseImpl)(nil)
)

// NewAccountUseCase создает новый экземпляр сервиса учетных записей.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AccountUseCaseImpl {
	return &AccountUseCaseImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с захэшированным паролем.
func (a *AccountUseCaseImpl) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = entities.NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	errs := validation.Errors{}
	entities.ValidateUsername(username, errs)
	entities.ValidateEmail(email, errs)
	entities.ValidatePassword(password, errs)
	if err := errs.Err(); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	if err := a.ensureUsernameFree(ctx, username, ""); err != nil {
		return nil, err
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, usernameTaken())
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// IssueToken проверяет учетные данные и выдает токен, привязанный к новой сессии.
func (a *AccountUseCaseImpl) IssueToken(ctx context.Context, username, password string) (*services.IssuedToken, error) {
	username = strings.TrimSpace(username)

	log := logger.Log(ctx).With(zap.String("method", methodIssueToken), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	errs := validation.Errors{}
	if username == "" {
		errs.Add(entities.FieldUsername, entities.MsgRequired)
	}
	if password == "" {
		errs.Add(entities.FieldPassword, entities.MsgRequired)
	}
	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	issued, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgTokenIssued, zap.String("userID", user.ID))
	return issued, nil
}

// Authenticate возвращает идентичность владельца живого токена.
func (a *AccountUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	if token == "" {
		return nil, services.ErrUnauthenticated
	}

	claims, err := a.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrUnauthenticated, err)
	}

	session, err := a.sessionRepo.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			log.Debug(ctx, msgTokenRejected, zap.String("userID", claims.UserID), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxFindingSession, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrFindSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingSession, err)
	}
	if session.UserID != claims.UserID {
		log.Warn(ctx, msgSessionMismatch, zap.String("userID", claims.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxFindingSession, services.ErrUnauthenticated)
	}

	return &entities.Identity{
		UserID:    claims.UserID,
		Username:  claims.Username,
		SessionID: claims.SessionID,
	}, nil
}

// RevokeToken завершает сессию, к которой привязан текущий токен.
func (a *AccountUseCaseImpl) RevokeToken(ctx context.Context, identity entities.Identity) error {
	log := logger.Log(ctx).With(zap.String("method", methodRevokeToken), zap.String("userID", identity.UserID))

	if err := a.sessionRepo.Revoke(ctx, identity.UserID, identity.SessionID); err != nil {
		log.Error(ctx, msgErrRevokeSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	log.Info(ctx, msgTokenRevoked)
	return nil
}

// GetOwnProfile возвращает профиль вызывающего.
func (a *AccountUseCaseImpl) GetOwnProfile(ctx context.Context, identity entities.Identity) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetOwnProfile), zap.String("userID", identity.UserID))

	user, err := a.findSelf(ctx, identity)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}

// UpdateOwnProfile изменяет профиль вызывающего. Смена пароля завершает
// все остальные сессии пользователя.
func (a *AccountUseCaseImpl) UpdateOwnProfile(
	ctx context.Context,
	identity entities.Identity,
	update entities.ProfileUpdate,
) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateOwnProfile), zap.String("userID", identity.UserID))

	if update.Replace {
		update = completeReplacement(update)
	}

	errs := validation.Errors{}
	if update.Username != nil {
		trimmed := strings.TrimSpace(*update.Username)
		update.Username = &trimmed
		entities.ValidateUsername(trimmed, errs)
	}
	if update.Email != nil {
		normalized := entities.NormalizeEmail(*update.Email)
		update.Email = &normalized
		entities.ValidateEmail(normalized, errs)
	}
	if update.Password != nil {
		entities.ValidatePassword(*update.Password, errs)
	}
	if err := errs.Err(); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	user, err := a.findSelf(ctx, identity)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if err := a.ensureUsernameFree(ctx, *update.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashedPassword, err := a.passwordSvc.Hash(ctx, *update.Password)
		if err != nil {
			log.Error(ctx, msgErrHashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hashedPassword

		// Сессии завершаются до сохранения хэша: при ошибке Redis пароль остается прежним.
		if err := a.sessionRepo.RevokeAllExcept(ctx, user.ID, identity.SessionID); err != nil {
			log.Error(ctx, msgErrRevokeSession, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxRevokingSession, err)
		}
		log.Info(ctx, msgOtherSessionsRevoked)
	}

	updated, err := a.userRepo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUsernameTaken):
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, usernameTaken())
		case errors.Is(err, entities.ErrUserNotFound):
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}

func (a *AccountUseCaseImpl) issue(ctx context.Context, user *entities.User) (*services.IssuedToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssueToken), zap.String("userID", user.ID))

	issued, err := a.tokenSvc.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	if err := a.sessionRepo.Store(ctx, &services.Session{
		ID:        issued.SessionID,
		UserID:    user.ID,
		ExpiresAt: issued.ExpiresAt,
	}); err != nil {
		log.Error(ctx, msgErrStoreSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringSession, err)
	}

	return issued, nil
}

func (a *AccountUseCaseImpl) findSelf(ctx context.Context, identity entities.Identity) (*entities.User, error) {
	if identity.UserID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, services.ErrUnauthenticated)
	}

	user, err := a.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, services.ErrUnauthenticated)
		}
		logger.Log(ctx).Error(ctx, msgErrFindingUser, zap.Error(err), zap.String("userID", identity.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

// ensureUsernameFree возвращает ошибку валидации, если имя занято кем-то кроме selfID.
func (a *AccountUseCaseImpl) ensureUsernameFree(ctx context.Context, username, selfID string) error {
	existing, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil
		}
		logger.Log(ctx).Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing.ID != selfID {
		logger.Log(ctx).Debug(ctx, msgUsernameExists, zap.String("username", username))
		return fmt.Errorf("%s: %w", errCtxCheckingUser, usernameTaken())
	}
	return nil
}

func usernameTaken() validation.Errors {
	return validation.Field(entities.FieldUsername, entities.MsgUsernameTaken)
}

// completeReplacement превращает отсутствующие поля полной замены в пустые значения.
func completeReplacement(update entities.ProfileUpdate) entities.ProfileUpdate {
	empty := ""
	if update.Username == nil {
		update.Username = &empty
	}
	if update.Email == nil {
		update.Email = &empty
	}
	if update.Password == nil {
		update.Password = &empty
	}
	return update
}
