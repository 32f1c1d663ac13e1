package usecase

import (
	"context"
	"regexp"
	"strings"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryUseCase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

type CategoryInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Accented characters fold to their base letter so French names keep
// readable slugs.
var slugFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c", "œ", "oe",
)

func slugify(name string) string {
	slug := slugFolder.Replace(strings.ToLower(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	slug := slugify(input.Name)

	if _, err := uc.categoryRepo.GetBySlug(ctx, slug); err == nil {
		return nil, errors.Conflict("A category with this name already exists")
	}

	category := &entity.Category{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

func (uc *CategoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return uc.categoryRepo.GetBySlug(ctx, slug)
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != category.Name {
		slug := slugify(input.Name)
		if existing, err := uc.categoryRepo.GetBySlug(ctx, slug); err == nil && existing.ID != id {
			return nil, errors.Conflict("A category with this name already exists")
		}
		category.Slug = slug
	}

	category.Name = input.Name
	category.Description = input.Description
	category.DisplayOrder = input.DisplayOrder

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	_, count, err := uc.productRepo.List(ctx, map[string]interface{}{"categoryId": id}, 1, 0)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.Conflict("Category still has products assigned to it")
	}

	return uc.categoryRepo.Delete(ctx, id)
}
