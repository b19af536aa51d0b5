package usecase

import (
	"time"

	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
)

// Deps are the collaborators shared by every container.
type Deps struct {
	Store domain.Store
	Delay latency.Simulator
	IDs   idgen.Generator
	Now   func() time.Time
	Log   *logrus.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Delay == nil {
		d.Delay = latency.None{}
	}
	if d.IDs == nil {
		d.IDs = idgen.NewTimestamp(d.Now)
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return d
}
