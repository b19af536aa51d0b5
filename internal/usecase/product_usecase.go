package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
	"pos_service/internal/state"
)

type ProductUseCase struct {
	products *collection[domain.Product]
	ids      idgen.Generator
	now      func() time.Time
	log      *logrus.Logger
}

func NewProductUseCase(deps Deps) *ProductUseCase {
	deps = deps.withDefaults()
	return &ProductUseCase{
		products: newCollection[domain.Product](domain.KeyProducts, "products", deps),
		ids:      deps.IDs,
		now:      deps.Now,
		log:      deps.Log,
	}
}

func (uc *ProductUseCase) Load(ctx context.Context) error {
	return uc.products.load(ctx, latency.ProductsLoad)
}

func (uc *ProductUseCase) Refresh(ctx context.Context) error {
	return uc.Load(ctx)
}

func (uc *ProductUseCase) Snapshot() state.Collection[domain.Product] {
	return uc.products.snapshot()
}

func (uc *ProductUseCase) Products() []domain.Product {
	return uc.products.snapshot().Items
}

func (uc *ProductUseCase) AddProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	uc.log.Infof("Use Case: Attempting to create product '%s'", in.Name)

	var created domain.Product
	err := uc.products.commit(ctx, latency.Mutation, func([]domain.Product) (state.Action[domain.Product], error) {
		now := uc.now()
		created = domain.Product{
			ID:          uc.ids.NewID(),
			Name:        in.Name,
			Category:    in.Category,
			Description: in.Description,
			Image:       in.Image,
			Variants:    slices.Clone(in.Variants),
			CreatedAt:   now,
			UpdatedAt:   now,
			IsActive:    in.IsActive,
		}
		return state.Add(created), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to create product '%s': %v", in.Name, err)
		return domain.Product{}, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	uc.log.Infof("Use Case: Attempting to update product ID %s", id)

	var updated domain.Product
	err := uc.products.commit(ctx, latency.Mutation, func(current []domain.Product) (state.Action[domain.Product], error) {
		existing, ok := state.Find(current, id)
		if !ok {
			return state.Action[domain.Product]{}, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
		}
		updated = patch.Apply(existing)
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = uc.now()
		return state.Update(updated), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update product ID %s: %v", id, err)
		return domain.Product{}, err
	}

	uc.log.Infof("Use Case: Product ID %s updated successfully", id)
	return updated, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	uc.log.Infof("Use Case: Attempting to delete product ID %s", id)

	err := uc.products.commit(ctx, latency.Mutation, func(current []domain.Product) (state.Action[domain.Product], error) {
		if _, ok := state.Find(current, id); !ok {
			return state.Action[domain.Product]{}, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
		}
		return state.Delete[domain.Product](id), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to delete product ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Product ID %s deleted successfully", id)
	return nil
}

// ToggleProductStatus flips isActive through the regular update path, so
// updatedAt is refreshed as for any other edit.
func (uc *ProductUseCase) ToggleProductStatus(ctx context.Context, id string) (domain.Product, error) {
	uc.log.Infof("Use Case: Attempting to toggle status of product ID %s", id)

	var updated domain.Product
	err := uc.products.commit(ctx, latency.Mutation, func(current []domain.Product) (state.Action[domain.Product], error) {
		existing, ok := state.Find(current, id)
		if !ok {
			return state.Action[domain.Product]{}, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
		}
		active := !existing.IsActive
		updated = domain.ProductPatch{IsActive: &active}.Apply(existing)
		updated.UpdatedAt = uc.now()
		return state.Update(updated), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to toggle status of product ID %s: %v", id, err)
		return domain.Product{}, err
	}

	uc.log.Infof("Use Case: Product ID %s is now active=%t", id, updated.IsActive)
	return updated, nil
}

func (uc *ProductUseCase) GetProductByID(id string) (domain.Product, bool) {
	return state.Find(uc.Products(), id)
}

func (uc *ProductUseCase) ActiveProducts() []domain.Product {
	var active []domain.Product
	for _, p := range uc.Products() {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

func (uc *ProductUseCase) ProductsByCategory(category string) []domain.Product {
	var matched []domain.Product
	for _, p := range uc.Products() {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}
