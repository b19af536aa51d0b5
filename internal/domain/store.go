package domain

import "context"

// Reserved storage keys. One JSON value per key.
const (
	KeyUser     = "pos_user"
	KeyProducts = "pos_products"
	KeyOrders   = "pos_orders"
	KeyReports  = "pos_reports"
	KeySettings = "pos_settings"
)

// Store is the persistent key-value store the state containers synchronize to.
// Implementations never return errors: failures are logged and reported as false.
type Store interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any) bool
	Remove(ctx context.Context, key string) bool
	Clear(ctx context.Context) bool
}
