package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creacakes/internal/domain/entity"
	"creacakes/pkg/errors"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "gateaux-d-anniversaire", slugify("Gâteaux d'anniversaire"))
	assert.Equal(t, "pieces-montees", slugify("  Pièces montées  "))
	assert.Equal(t, "macarons", slugify("Macarons"))
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := NewCategoryUseCase(categories, newFakeProductRepo())

	_, err := uc.CreateCategory(context.Background(), CategoryInput{Name: "Macarons"})
	require.NoError(t, err)

	_, err = uc.CreateCategory(context.Background(), CategoryInput{Name: "macarons"})
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestUpdateCategoryReslugsOnRename(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := NewCategoryUseCase(categories, newFakeProductRepo())

	created, err := uc.CreateCategory(context.Background(), CategoryInput{Name: "Macarons"})
	require.NoError(t, err)

	updated, err := uc.UpdateCategory(context.Background(), created.ID, CategoryInput{Name: "Petits fours"})
	require.NoError(t, err)
	assert.Equal(t, "petits-fours", updated.Slug)
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	categories := newFakeCategoryRepo()
	products := newFakeProductRepo()
	uc := NewCategoryUseCase(categories, products)

	created, err := uc.CreateCategory(context.Background(), CategoryInput{Name: "Macarons"})
	require.NoError(t, err)

	products.products["p1"] = &entity.Product{ID: "p1", CategoryID: created.ID}

	err = uc.DeleteCategory(context.Background(), created.ID)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	delete(products.products, "p1")
	require.NoError(t, uc.DeleteCategory(context.Background(), created.ID))
}
