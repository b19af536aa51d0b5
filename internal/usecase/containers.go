package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"pos_service/internal/auth"
)

// Containers groups every state container of the service.
type Containers struct {
	Products *ProductUseCase
	Orders   *OrderUseCase
	Reports  *ReportUseCase
	Auth     *AuthUseCase
	Settings *SettingsUseCase
	Carts    *Carts
	Checkout *CheckoutUseCase
}

func NewContainers(deps Deps, authn auth.Authenticator, tokens *auth.TokenIssuer) *Containers {
	deps = deps.withDefaults()
	products := NewProductUseCase(deps)
	orders := NewOrderUseCase(deps)
	settings := NewSettingsUseCase(deps)
	return &Containers{
		Products: products,
		Orders:   orders,
		Reports:  NewReportUseCase(deps),
		Auth:     NewAuthUseCase(deps, authn, tokens),
		Settings: settings,
		Carts:    NewCarts(deps.Log),
		Checkout: NewCheckoutUseCase(orders, products, settings, deps.Log),
	}
}

// Load restores every persisted container concurrently.
func (c *Containers) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Products.Load(ctx) })
	g.Go(func() error { return c.Orders.Load(ctx) })
	g.Go(func() error { return c.Reports.Load(ctx) })
	g.Go(func() error { return c.Auth.Load(ctx) })
	return g.Wait()
}
