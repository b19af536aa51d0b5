// Package seed loads product catalogs and shop settings from YAML files.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pos_service/internal/domain"
)

// Catalog is the on-disk seed format:
//
//	settings:
//	  taxRate: "0.125"
//	  currency: GHS
//	  businessName: Corner Shop
//	products:
//	  - name: Jollof Rice
//	    category: Mains
//	    active: true
//	    variants:
//	      - name: Regular
//	        size: regular
//	        price: "25.00"
//	        stock: 40
type Catalog struct {
	Settings *SettingsEntry `yaml:"settings"`
	Products []ProductEntry `yaml:"products"`
}

type SettingsEntry struct {
	TaxRate         string `yaml:"taxRate"`
	Currency        string `yaml:"currency"`
	BusinessName    string `yaml:"businessName"`
	BusinessAddress string `yaml:"businessAddress"`
	ReceiptFooter   string `yaml:"receiptFooter"`
}

type ProductEntry struct {
	Name        string         `yaml:"name"`
	Category    string         `yaml:"category"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"image"`
	Active      *bool          `yaml:"active"`
	Variants    []VariantEntry `yaml:"variants"`
}

type VariantEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Size  string `yaml:"size"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
	SKU   string `yaml:"sku"`
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// ProductInputs converts the catalog entries, validating each one. Variants
// without an id get "v<n>" in file order.
func (c *Catalog) ProductInputs() ([]domain.ProductInput, error) {
	inputs := make([]domain.ProductInput, 0, len(c.Products))
	for i, p := range c.Products {
		in := domain.ProductInput{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
			IsActive:    p.Active == nil || *p.Active,
			Variants:    make([]domain.ProductVariant, 0, len(p.Variants)),
		}
		for j, v := range p.Variants {
			price, err := decimal.NewFromString(v.Price)
			if err != nil {
				return nil, fmt.Errorf("%w: product %d (%s) variant %d: bad price %q", domain.ErrInvalidInput, i, p.Name, j, v.Price)
			}
			id := v.ID
			if id == "" {
				id = fmt.Sprintf("v%d", j+1)
			}
			in.Variants = append(in.Variants, domain.ProductVariant{
				ID:    id,
				Name:  v.Name,
				Price: price,
				Size:  v.Size,
				Stock: v.Stock,
				SKU:   v.SKU,
			})
		}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// ShopSettings returns the catalog settings on top of the defaults, or false
// when the catalog carries none.
func (c *Catalog) ShopSettings() (domain.Settings, bool, error) {
	if c.Settings == nil {
		return domain.Settings{}, false, nil
	}
	s := domain.DefaultSettings()
	if c.Settings.TaxRate != "" {
		rate, err := decimal.NewFromString(c.Settings.TaxRate)
		if err != nil {
			return domain.Settings{}, false, fmt.Errorf("%w: bad tax rate %q", domain.ErrInvalidInput, c.Settings.TaxRate)
		}
		s.TaxRate = rate
	}
	if c.Settings.Currency != "" {
		s.Currency = c.Settings.Currency
	}
	if c.Settings.BusinessName != "" {
		s.BusinessName = c.Settings.BusinessName
	}
	s.BusinessAddress = c.Settings.BusinessAddress
	s.ReceiptFooter = c.Settings.ReceiptFooter
	if err := s.Validate(); err != nil {
		return domain.Settings{}, false, err
	}
	return s, true, nil
}

// ProductAdder is the slice of the products container used for seeding.
type ProductAdder interface {
	AddProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
}

// Apply adds every catalog product through the products container and returns
// the created products.
func Apply(ctx context.Context, products ProductAdder, inputs []domain.ProductInput) ([]domain.Product, error) {
	created := make([]domain.Product, 0, len(inputs))
	for _, in := range inputs {
		p, err := products.AddProduct(ctx, in)
		if err != nil {
			return created, fmt.Errorf("failed to add product %s: %w", in.Name, err)
		}
		created = append(created, p)
	}
	return created, nil
}
