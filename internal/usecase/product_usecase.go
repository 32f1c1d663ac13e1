package usecase

import (
	"context"
	"io"

	"creacakes/internal/domain/entity"
	"creacakes/internal/domain/repository"
	"creacakes/pkg/errors"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	uploader     FileUploader
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	uploader FileUploader,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
	}
}

type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	CategoryID  string  `json:"category_id" validate:"required"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
	Active      bool    `json:"active"`
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, errors.BadRequest("Invalid category", err)
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Featured:    input.Featured,
		Active:      input.Active,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts serves the public catalog. Without includeInactive only
// active products are returned.
func (uc *ProductUseCase) ListProducts(ctx context.Context, categoryID string, featuredOnly, includeInactive bool, limit, offset int) ([]*entity.Product, int64, error) {
	filter := map[string]interface{}{}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	if featuredOnly {
		filter["featured"] = true
	}
	if !includeInactive {
		filter["active"] = true
	}

	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != product.CategoryID {
		if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	product.ImageURL = input.ImageURL
	product.Featured = input.Featured
	product.Active = input.Active

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UploadImage stores a product photo and records its URL on the product.
func (uc *ProductUseCase) UploadImage(ctx context.Context, id, contentType, fileName string, file io.Reader) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.UploadFile(ctx, file, contentType, "products", fileName)
	if err != nil {
		return nil, errors.Internal("Failed to upload product image", err)
	}

	product.ImageURL = url
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, id)
}
