package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/catalog"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/domain/sales"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	itemRepo     repository.TransactionItemRepository
	storage      ports.ImageStorage // opcional: nil = sin subida de imágenes
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	itemRepo repository.TransactionItemRepository,
	storage ports.ImageStorage,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, itemRepo: itemRepo, storage: storage}
}

// Create crea un producto. La categoría debe existir y el nombre ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	name, err := uc.validate(ctx, in, "")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if image != nil {
		if p.ImageURL, err = uc.upload(ctx, p.ID, image); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene un producto con el nombre de su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos del producto. Sin imagen nueva se conserva la anterior.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	name, err := uc.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Stock = in.Stock
	p.CategoryID = in.CategoryID
	if image != nil {
		if p.ImageURL, err = uc.upload(ctx, p.ID, image); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page = page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  page.Response(),
	}, nil
}

// ListByCategory lista los productos de una categoría existente.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto que no aparece en ninguna venta.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	used, err := uc.itemRepo.ExistsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el producto tiene ítems de venta", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest, selfID string) (string, error) {
	name := strings.TrimSpace(in.Name)
	if err := catalog.ValidateProductName(name); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := sales.ValidateMoney("price", in.Price); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Stock < 0 {
		return "", fmt.Errorf("%w: stock debe ser >= 0", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return "", fmt.Errorf("%w: id_categories es obligatorio", domain.ErrInvalidInput)
	}
	c, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.ErrCategoryNotFound
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", fmt.Errorf("%w: ya existe el producto %q", domain.ErrConflict, name)
	}
	return name, nil
}

func (uc *ProductUseCase) upload(ctx context.Context, productID string, image *dto.ImageUpload) (string, error) {
	if uc.storage == nil {
		return "", fmt.Errorf("%w: almacenamiento de imágenes no configurado", domain.ErrInvalidInput)
	}
	if len(image.Data) == 0 {
		return "", fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return "", fmt.Errorf("%w: el archivo debe ser una imagen", domain.ErrInvalidInput)
	}
	object := fmt.Sprintf("products/%s-%d%s", productID, time.Now().UnixNano(), strings.ToLower(path.Ext(image.FileName)))
	url, err := uc.storage.Upload(ctx, object, image.ContentType, image.Data)
	if err != nil {
		return "", fmt.Errorf("subir imagen: %w", err)
	}
	return url, nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
