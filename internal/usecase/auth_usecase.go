package usecase

import (
	"context"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
	"creacakes/pkg/logger"
)

type AuthUseCase struct {
	authClient       AuthClient
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewAuthUseCase(
	authClient AuthClient,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *AuthUseCase {
	return &AuthUseCase{
		authClient:       authClient,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register creates the Firebase account, mirrors it as a users document and
// queues a welcome email. New accounts are always customers; admins are
// promoted manually.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("An account with this email already exists")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:    uid,
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
		Role:  entity.RoleCustomer,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	notification := &entity.Notification{
		Type: entity.NotificationWelcome,
		To:   user.Email,
		Payload: map[string]interface{}{
			"name": user.Name,
		},
	}
	if err := uc.notificationRepo.Enqueue(ctx, notification); err != nil {
		logger.Error("Failed to enqueue welcome notification: %v", err)
	}

	token, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		// Account exists; the client can sign in separately.
		logger.Warn("Post-register sign-in failed for %s: %v", uid, err)
		return &AuthResult{User: user}, nil
	}

	return &AuthResult{Token: token, User: user}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.Unauthorized("Account not found", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// VerifyCaller resolves a bearer token to the stored user.
func (uc *AuthUseCase) VerifyCaller(ctx context.Context, token string) (*entity.User, error) {
	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.Unauthorized("Account not found", err)
	}

	return user, nil
}

type ChangePasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, uid string, input ChangePasswordInput) error {
	if err := uc.authClient.UpdateUserPassword(ctx, uid, input.NewPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}
