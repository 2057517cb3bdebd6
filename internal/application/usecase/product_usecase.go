package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// ProductUseCase catálogo: productos, variantes y sus selecciones.
// El motor de inventario trata este catálogo como datos de referencia.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, variantRepo: variantRepo}
}

// CreateProduct crea un producto del catálogo.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	unitMeasure := in.UnitMeasure
	if unitMeasure == "" {
		unitMeasure = "und"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		UnitMeasure: unitMeasure,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct devuelve un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts lista el catálogo paginado.
func (uc *ProductUseCase) ListProducts(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// CreateVariant crea una variante (SKU único) con sus selecciones.
func (uc *ProductUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if in.SKU == "" || in.MinimumStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		SKU:          in.SKU,
		MinimumStock: in.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	for _, sel := range in.Selections {
		if sel.VariationName == "" || sel.OptionValue == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.variantRepo.AddSelection(&entity.VariantSelection{
			VariantID:     variant.ID,
			VariationName: sel.VariationName,
			OptionValue:   sel.OptionValue,
		}); err != nil {
			return nil, err
		}
	}
	return uc.variantResponse(variant)
}

// ListVariants lista las variantes de un producto con sus selecciones.
func (uc *ProductUseCase) ListVariants(ctx context.Context, productID string) ([]*dto.VariantResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variants, err := uc.variantRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		resp, err := uc.variantResponse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *ProductUseCase) variantResponse(v *entity.ProductVariant) (*dto.VariantResponse, error) {
	selections, err := uc.variantRepo.ListSelections(v.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.VariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		SKU:          v.SKU,
		MinimumStock: v.MinimumStock,
	}
	for _, sel := range selections {
		resp.Selections = append(resp.Selections, dto.VariantSelectionRequest{
			VariationName: sel.VariationName,
			OptionValue:   sel.OptionValue,
		})
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		UnitMeasure: p.UnitMeasure,
		CreatedAt:   p.CreatedAt,
	}
}
