package usecase

import (
	"context"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/internal/domain"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
)

// ProductUseCase casos de uso del catálogo. Las lecturas disparan primero el
// barrido de vencimientos del producto para que el total de stock refleje el
// día corriente.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	stockUC     *stock.UseCase
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso de catálogo.
func NewProductUseCase(productRepo repository.ProductRepository, stockUC *stock.UseCase, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, stockUC: stockUC, log: log}
}

// CreateProduct da de alta una variante del catálogo. El payload debe
// corresponder con el tipo: comida con FoodDetails, bebida con DrinkDetails,
// accesorio con AccessoryDetails.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		IsAvailable: true,
		IsFeatured:  in.IsFeatured,
		Food:        toFoodEntity(in.Food),
		Drink:       toDrinkEntity(in.Drink),
		Accessory:   toAccessoryEntity(in.Accessory),
	}
	if !p.ValidDetails() {
		return nil, domain.ErrInvalidInput
	}
	if p.Type == entity.ProductFood && !validFoodType(p.Food.FoodType) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	id, err := uc.productRepo.Create(p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	uc.log.Info().Int64("product_id", id).Str("type", p.Type).Msg("producto creado")
	return uc.toProductDTO(ctx, p), nil
}

// GetProduct devuelve un producto con su stock activo al día.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductDTO, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	uc.stockUC.RefreshProductWarnings(ctx, p.ID, systemUserID)
	return uc.toProductDTO(ctx, p), nil
}

// ListProducts listado paginado del catálogo con stock al día. Con
// onlyAvailable en true se filtran las variantes dadas de baja.
func (uc *ProductUseCase) ListProducts(ctx context.Context, onlyAvailable bool, limit, offset int) ([]dto.ProductDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	products, err := uc.productRepo.List(onlyAvailable, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		uc.stockUC.RefreshProductWarnings(ctx, p.ID, systemUserID)
		out = append(out, *uc.toProductDTO(ctx, p))
	}
	return out, nil
}

// UpdateProduct modifica la base común de una variante; el payload de tipo no
// se cambia después del alta. Campos nil del request se conservan.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Discount != nil {
		if in.Discount.IsNegative() || in.Discount.GreaterThan(hundred) {
			return nil, domain.ErrInvalidInput
		}
		p.Discount = *in.Discount
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if _, err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.toProductDTO(ctx, p), nil
}

func (uc *ProductUseCase) toProductDTO(ctx context.Context, p *entity.Product) *dto.ProductDTO {
	total := uc.stockUC.TotalQuantity(p.ID)
	out := &dto.ProductDTO{
		ID:          p.ID,
		Type:        p.Type,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		FinalPrice:  p.FinalPrice(),
		IsAvailable: p.IsAvailable,
		IsFeatured:  p.IsFeatured,
		TotalStock:  total,
		CreatedDate: p.CreatedDate,
	}
	if p.Food != nil {
		out.Food = &dto.FoodDetailsDTO{
			FoodType:     p.Food.FoodType,
			Weight:       p.Food.Weight,
			IsPerishable: p.Food.IsPerishable,
			Calories:     p.Food.Calories,
		}
	}
	if p.Drink != nil {
		out.Drink = &dto.DrinkDetailsDTO{
			Volume:      p.Drink.Volume,
			IsAlcoholic: p.Drink.IsAlcoholic,
		}
	}
	if p.Accessory != nil {
		out.Accessory = &dto.AccessoryDetailsDTO{
			Material:   p.Accessory.Material,
			Dimensions: p.Accessory.Dimensions,
			IsReusable: p.Accessory.IsReusable,
		}
	}
	return out
}

func toFoodEntity(d *dto.FoodDetailsDTO) *entity.FoodDetails {
	if d == nil {
		return nil
	}
	return &entity.FoodDetails{
		FoodType:     d.FoodType,
		Weight:       d.Weight,
		IsPerishable: d.IsPerishable,
		Calories:     d.Calories,
	}
}

func toDrinkEntity(d *dto.DrinkDetailsDTO) *entity.DrinkDetails {
	if d == nil {
		return nil
	}
	return &entity.DrinkDetails{Volume: d.Volume, IsAlcoholic: d.IsAlcoholic}
}

func toAccessoryEntity(d *dto.AccessoryDetailsDTO) *entity.AccessoryDetails {
	if d == nil {
		return nil
	}
	return &entity.AccessoryDetails{
		Material:   d.Material,
		Dimensions: d.Dimensions,
		IsReusable: d.IsReusable,
	}
}

func validFoodType(t string) bool {
	switch t {
	case entity.FoodCake, entity.FoodPastry, entity.FoodSweet, entity.FoodBakery:
		return true
	}
	return false
}
