package usecase

import (
	"context"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Phone = input.Phone

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

// SetRole promotes or demotes an account. The last admin cannot demote
// itself, so the back office always stays reachable.
func (uc *UserUseCase) SetRole(ctx context.Context, callerID, uid, role string) (*entity.User, error) {
	if role != entity.RoleCustomer && role != entity.RoleAdmin {
		return nil, errors.BadRequest("Invalid role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if user.Role == entity.RoleAdmin && role == entity.RoleCustomer && callerID == uid {
		admins, err := uc.userRepo.GetByRole(ctx, entity.RoleAdmin, 2)
		if err != nil {
			return nil, err
		}
		if len(admins) <= 1 {
			return nil, errors.Conflict("Cannot demote the last admin account")
		}
	}

	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
