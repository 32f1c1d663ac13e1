package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creacakes/internal/domain/entity"
	"creacakes/pkg/errors"
)

func TestSetRolePromotesCustomer(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewUserUseCase(users)

	users.users["admin-1"] = &entity.User{ID: "admin-1", Role: entity.RoleAdmin}
	users.users["cust-1"] = &entity.User{ID: "cust-1", Role: entity.RoleCustomer}

	updated, err := uc.SetRole(context.Background(), "admin-1", "cust-1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
}

func TestSetRoleBlocksLastAdminSelfDemotion(t *testing.T) {
	users := newFakeUserRepo()
	uc := NewUserUseCase(users)

	users.users["admin-1"] = &entity.User{ID: "admin-1", Role: entity.RoleAdmin}

	_, err := uc.SetRole(context.Background(), "admin-1", "admin-1", entity.RoleCustomer)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	// With a second admin the demotion goes through.
	users.users["admin-2"] = &entity.User{ID: "admin-2", Role: entity.RoleAdmin}
	updated, err := uc.SetRole(context.Background(), "admin-1", "admin-1", entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, updated.Role)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	users := newFakeUserRepo()
	users.users["cust-1"] = &entity.User{ID: "cust-1", Role: entity.RoleCustomer}
	uc := NewUserUseCase(users)

	_, err := uc.SetRole(context.Background(), "admin-1", "cust-1", "owner")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
