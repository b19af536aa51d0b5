package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pos_service/internal/auth"
	"pos_service/internal/domain"
	"pos_service/internal/idgen"
	"pos_service/internal/latency"
	"pos_service/internal/repository"
	"pos_service/internal/seed"
	"pos_service/internal/usecase"
)

type app struct {
	log       *logrus.Logger
	backend   string
	openStore func(ctx context.Context) (*repository.KVStore, error)
	newIDs    func() (idgen.Generator, error)
	now       func() time.Time
}

func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(*repository.KVStore) error) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.log.Warnf("Error closing store: %v", err)
		}
	}()
	return fn(store)
}

// withContainers loads every container from the store without simulated latency.
func (a *app) withContainers(ctx context.Context, fn func(*usecase.Containers) error) error {
	return a.withStore(ctx, func(store *repository.KVStore) error {
		ids, err := a.newIDs()
		if err != nil {
			return err
		}
		c := usecase.NewContainers(usecase.Deps{
			Store: store,
			Delay: latency.None{},
			IDs:   ids,
			Now:   a.clock,
			Log:   a.log,
		}, nil, nil)
		if err := c.Load(ctx); err != nil {
			return err
		}
		return fn(c)
	})
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Inspect and prepare the POS store",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&a.backend, "backend", a.backend, "store backend (sqlite, postgres, redis, memory, none)")

	root.AddCommand(newStoreCmd(a), newSeedCmd(a), newReportCmd(a), newHashPasswordCmd())
	return root
}

func newStoreCmd(a *app) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Read or reset persisted keys",
		Long: `Read or reset persisted keys.

Reserved keys: ` + fmt.Sprintf("%s, %s, %s, %s, %s", domain.KeyUser, domain.KeyProducts, domain.KeyOrders, domain.KeyReports, domain.KeySettings),
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the JSON stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *repository.KVStore) error {
				var raw json.RawMessage
				if !store.Get(cmd.Context(), args[0], &raw) {
					return fmt.Errorf("key %s: %w", args[0], domain.ErrNotFound)
				}
				return printJSON(cmd.OutOrStdout(), raw)
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <key>",
		Short: "Delete one key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *repository.KVStore) error {
				if !store.Remove(cmd.Context(), args[0]) {
					return fmt.Errorf("failed to remove %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	var confirmed bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear the store without --yes")
			}
			return a.withStore(cmd.Context(), func(store *repository.KVStore) error {
				if !store.Clear(cmd.Context()) {
					return fmt.Errorf("failed to clear store")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "store cleared")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting every key")

	storeCmd.AddCommand(getCmd, removeCmd, clearCmd)
	return storeCmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog.yaml>",
		Short: "Add the products (and settings) of a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			inputs, err := catalog.ProductInputs()
			if err != nil {
				return err
			}
			settings, hasSettings, err := catalog.ShopSettings()
			if err != nil {
				return err
			}

			return a.withContainers(cmd.Context(), func(c *usecase.Containers) error {
				created, err := seed.Apply(cmd.Context(), c.Products, inputs)
				if err != nil {
					return err
				}
				if msg := c.Products.Snapshot().Error; msg != "" {
					return fmt.Errorf("%s", msg)
				}
				if hasSettings {
					if _, err := c.Settings.Save(cmd.Context(), settings); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(created))
				return nil
			})
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var (
		typ      string
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and store a sales report from the persisted orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reportRange(a.clock(), from, to)
			if err != nil {
				return err
			}
			return a.withContainers(cmd.Context(), func(c *usecase.Containers) error {
				rep, err := c.Reports.GenerateReport(cmd.Context(), domain.ReportType(typ), r, c.Orders.Orders(), c.Products.Products())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rep)
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(domain.ReportDaily), "report type (daily, weekly, monthly, yearly)")
	cmd.Flags().StringVar(&from, "from", "", "range start, RFC 3339 (default start of today)")
	cmd.Flags().StringVar(&to, "to", "", "range end, RFC 3339 (default now)")
	return cmd
}

func reportRange(now time.Time, from, to string) (domain.DateRange, error) {
	r := domain.DateRange{
		Start: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		End:   now,
	}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: --from: %v", domain.ErrInvalidInput, err)
		}
		r.Start = t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: --to: %v", domain.ErrInvalidInput, err)
		}
		r.End = t
	}
	return r, nil
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for a users file entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
