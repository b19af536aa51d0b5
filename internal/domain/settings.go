package domain

import "github.com/shopspring/decimal"

type Settings struct {
	TaxRate         decimal.Decimal `json:"taxRate"`
	Currency        string          `json:"currency"`
	BusinessName    string          `json:"businessName"`
	BusinessAddress string          `json:"businessAddress,omitempty"`
	ReceiptFooter   string          `json:"receiptFooter,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		TaxRate:      decimal.Zero,
		Currency:     "GHS",
		BusinessName: "POS",
	}
}

func (s Settings) Validate() error {
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmtInvalid("tax rate must be between 0 and 1")
	}
	if s.Currency == "" {
		return fmtInvalid("currency cannot be empty")
	}
	return nil
}
