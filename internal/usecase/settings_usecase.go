package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
)

type SettingsUseCase struct {
	store domain.Store
	log   *logrus.Logger
}

func NewSettingsUseCase(deps Deps) *SettingsUseCase {
	deps = deps.withDefaults()
	return &SettingsUseCase{store: deps.Store, log: deps.Log}
}

// Get returns the stored settings, or the defaults when none are stored.
func (uc *SettingsUseCase) Get(ctx context.Context) domain.Settings {
	var s domain.Settings
	if !uc.store.Get(ctx, domain.KeySettings, &s) {
		return domain.DefaultSettings()
	}
	return s
}

func (uc *SettingsUseCase) Save(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	if err := s.Validate(); err != nil {
		uc.log.Warnf("Use Case: Rejected settings update: %v", err)
		return domain.Settings{}, err
	}
	if !uc.store.Set(ctx, domain.KeySettings, s) {
		uc.log.Errorf("Use Case: Settings could not be persisted")
		return domain.Settings{}, domain.ErrNotSaved
	}
	uc.log.Infof("Use Case: Settings saved (currency %s, tax rate %s)", s.Currency, s.TaxRate)
	return s, nil
}
