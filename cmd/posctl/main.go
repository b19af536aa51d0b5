// Command posctl inspects and prepares the POS store offline.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"pos_service/config"
	"pos_service/internal/idgen"
	"pos_service/internal/repository"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	a := &app{log: logger, backend: cfg.StoreBackend}
	a.openStore = func(ctx context.Context) (*repository.KVStore, error) {
		opts := cfg.StoreOptions()
		opts.Backend = a.backend
		backend, err := repository.Open(ctx, opts, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewKVStore(backend, logger), nil
	}
	a.newIDs = func() (idgen.Generator, error) { return idgen.New(cfg.IDStrategy, nil) }

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
