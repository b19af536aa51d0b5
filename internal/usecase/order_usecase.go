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

type OrderUseCase struct {
	orders *collection[domain.Order]
	ids    idgen.Generator
	now    func() time.Time
	log    *logrus.Logger
}

func NewOrderUseCase(deps Deps) *OrderUseCase {
	deps = deps.withDefaults()
	return &OrderUseCase{
		orders: newCollection[domain.Order](domain.KeyOrders, "orders", deps),
		ids:    deps.IDs,
		now:    deps.Now,
		log:    deps.Log,
	}
}

func (uc *OrderUseCase) Load(ctx context.Context) error {
	return uc.orders.load(ctx, latency.OrdersLoad)
}

func (uc *OrderUseCase) Refresh(ctx context.Context) error {
	return uc.Load(ctx)
}

func (uc *OrderUseCase) Snapshot() state.Collection[domain.Order] {
	return uc.orders.snapshot()
}

func (uc *OrderUseCase) Orders() []domain.Order {
	return uc.orders.snapshot().Items
}

func (uc *OrderUseCase) AddOrder(ctx context.Context, in domain.OrderInput) (domain.Order, error) {
	uc.log.Infof("Use Case: Attempting to create order with %d items for %s", len(in.Items), in.CreatedBy)

	var created domain.Order
	err := uc.orders.commit(ctx, latency.Mutation, func([]domain.Order) (state.Action[domain.Order], error) {
		now := uc.now()
		created = domain.Order{
			ID:            uc.ids.NewID(),
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			Items:         slices.Clone(in.Items),
			Total:         in.Total,
			Tax:           in.Tax,
			Discount:      in.Discount,
			Status:        in.Status,
			PaymentMethod: in.PaymentMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
			CreatedBy:     in.CreatedBy,
		}
		return state.Add(created), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to create order: %v", err)
		return domain.Order{}, err
	}

	uc.log.Infof("Use Case: Order created successfully with ID %s (total %s)", created.ID, created.Total)
	return created, nil
}

func (uc *OrderUseCase) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (domain.Order, error) {
	uc.log.Infof("Use Case: Attempting to update order ID %s", id)

	var updated domain.Order
	err := uc.orders.commit(ctx, latency.Mutation, func(current []domain.Order) (state.Action[domain.Order], error) {
		existing, ok := state.Find(current, id)
		if !ok {
			return state.Action[domain.Order]{}, fmt.Errorf("order with id %s: %w", id, domain.ErrNotFound)
		}
		updated = patch.Apply(existing)
		updated.UpdatedAt = uc.now()
		return state.Update(updated), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to update order ID %s: %v", id, err)
		return domain.Order{}, err
	}

	uc.log.Infof("Use Case: Order ID %s updated successfully (status %s)", id, updated.Status)
	return updated, nil
}

func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return domain.Order{}, fmt.Errorf("%w: invalid target order status: %s", domain.ErrInvalidInput, status)
	}
	return uc.UpdateOrder(ctx, id, domain.OrderPatch{Status: &status})
}

func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	uc.log.Infof("Use Case: Attempting to delete order ID %s", id)

	err := uc.orders.commit(ctx, latency.Mutation, func(current []domain.Order) (state.Action[domain.Order], error) {
		if _, ok := state.Find(current, id); !ok {
			return state.Action[domain.Order]{}, fmt.Errorf("order with id %s: %w", id, domain.ErrNotFound)
		}
		return state.Delete[domain.Order](id), nil
	})
	if err != nil {
		uc.log.Warnf("Use Case: Failed to delete order ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Order ID %s deleted successfully", id)
	return nil
}

func (uc *OrderUseCase) GetOrderByID(id string) (domain.Order, bool) {
	return state.Find(uc.Orders(), id)
}

func (uc *OrderUseCase) GetOrdersByStatus(status domain.OrderStatus) []domain.Order {
	var matched []domain.Order
	for _, o := range uc.Orders() {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched
}

// GetOrdersByDateRange returns orders created between start and end inclusive.
func (uc *OrderUseCase) GetOrdersByDateRange(start, end time.Time) []domain.Order {
	r := domain.DateRange{Start: start, End: end}
	var matched []domain.Order
	for _, o := range uc.Orders() {
		if r.Contains(o.CreatedAt) {
			matched = append(matched, o)
		}
	}
	return matched
}
