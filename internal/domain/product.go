package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type ProductVariant struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Size  string          `json:"size,omitempty"`
	Stock int             `json:"stock"`
	SKU   string          `json:"sku,omitempty"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Image       string           `json:"image,omitempty"`
	Variants    []ProductVariant `json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	IsActive    bool             `json:"isActive"`
}

func (p Product) Key() string { return p.ID }

// Clone returns a copy that shares no variant storage with p.
func (p Product) Clone() Product {
	p.Variants = slices.Clone(p.Variants)
	return p
}

// ProductInput carries everything but the identity and timestamps, which the
// products container assigns.
type ProductInput struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Image       string           `json:"image,omitempty"`
	Variants    []ProductVariant `json:"variants"`
	IsActive    bool             `json:"isActive"`
}

func (in ProductInput) Validate() error {
	if in.Name == "" {
		return fmtInvalid("product name cannot be empty")
	}
	return validateVariants(in.Variants)
}

type ProductPatch struct {
	Name        *string           `json:"name,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Description *string           `json:"description,omitempty"`
	Image       *string           `json:"image,omitempty"`
	Variants    *[]ProductVariant `json:"variants,omitempty"`
	IsActive    *bool             `json:"isActive,omitempty"`
}

func (p ProductPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmtInvalid("product name cannot be empty if provided for update")
	}
	if p.Variants != nil {
		return validateVariants(*p.Variants)
	}
	return nil
}

// Apply merges the patch into p. updatedAt is left to the caller.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Image != nil {
		prod.Image = *p.Image
	}
	if p.Variants != nil {
		prod.Variants = append([]ProductVariant(nil), (*p.Variants)...)
	}
	if p.IsActive != nil {
		prod.IsActive = *p.IsActive
	}
	return prod
}

func validateVariants(variants []ProductVariant) error {
	for i, v := range variants {
		if v.Price.IsNegative() {
			return fmtInvalid("variant %d: price cannot be negative", i)
		}
		if v.Stock < 0 {
			return fmtInvalid("variant %d: stock cannot be negative", i)
		}
	}
	return nil
}
