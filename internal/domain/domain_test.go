package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderReconciles(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			NewOrderItem("p1", "Fried rice", "v1", "Large", 2, decimal.RequireFromString("12.50")),
			NewOrderItem("p2", "Banku", "v2", "Regular", 1, decimal.RequireFromString("8")),
		},
		Tax:      decimal.RequireFromString("1.65"),
		Discount: decimal.RequireFromString("2"),
	}
	assert.True(t, order.Subtotal().Equal(decimal.RequireFromString("33")))

	order.Total = decimal.RequireFromString("32.65")
	assert.True(t, order.Reconciles())

	order.Total = decimal.RequireFromString("33")
	assert.False(t, order.Reconciles())
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: end}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.False(t, r.Contains(end.Add(time.Nanosecond)))
	assert.False(t, r.Contains(start.Add(-time.Nanosecond)))

	require.ErrorIs(t, DateRange{Start: end, End: start}.Validate(), ErrInvalidInput)
	require.NoError(t, r.Validate())
}

func TestProductPatchApply(t *testing.T) {
	name := "Jollof"
	active := false
	prod := Product{ID: "1", Name: "Rice", Category: "Main Course", IsActive: true}

	got := ProductPatch{Name: &name, IsActive: &active}.Apply(prod)

	assert.Equal(t, "Jollof", got.Name)
	assert.Equal(t, "Main Course", got.Category)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Rice", prod.Name)
}

func TestOrderInputValidate(t *testing.T) {
	valid := OrderInput{
		Items:         []OrderItem{NewOrderItem("p1", "Fufu", "v1", "Small", 1, decimal.NewFromInt(5))},
		Status:        StatusPending,
		PaymentMethod: PaymentCash,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(in *OrderInput)
	}{
		{"no items", func(in *OrderInput) { in.Items = nil }},
		{"zero quantity", func(in *OrderInput) { in.Items = []OrderItem{{ProductID: "p1"}} }},
		{"bad status", func(in *OrderInput) { in.Status = "shipped" }},
		{"bad payment", func(in *OrderInput) { in.PaymentMethod = "cheque" }},
		{"negative discount", func(in *OrderInput) { in.Discount = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.ErrorIs(t, in.Validate(), ErrInvalidInput)
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.TaxRate = decimal.RequireFromString("1.5")
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)

	s = DefaultSettings()
	s.Currency = ""
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
}

func TestUserPatchApply(t *testing.T) {
	name := "Ama"
	u := User{ID: "1", Name: "Admin User", Role: RoleAdmin, IsAuthenticated: true}

	got := UserPatch{Name: &name}.Apply(u)

	assert.Equal(t, "Ama", got.Name)
	assert.Equal(t, RoleAdmin, got.Role)
	assert.True(t, got.IsAuthenticated)
}
