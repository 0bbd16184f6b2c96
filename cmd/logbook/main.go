package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"pilotbase-logbook/internal/domain/entity"
	"pilotbase-logbook/internal/infrastructure/codec"
	"pilotbase-logbook/internal/infrastructure/config"
	kvRepo "pilotbase-logbook/internal/interface/repository"
	"pilotbase-logbook/internal/usecase"
	"pilotbase-logbook/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := cmdRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdRoot() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "logbook",
		Short: "Pilotbase logbook admin utility",
		Long:  `Inspect and maintain the saved flight collection in the configured backing store`,
	}
	cmd.PersistentFlags().String("backend", "", "backing store: file, sqlite, badger, mongo, postgres, memory (default from STORE_BACKEND)")
	cmd.PersistentFlags().String("data-dir", "", "data directory for file, sqlite and badger backends (default from DATA_DIR)")
	cmd.PersistentFlags().String("namespace", "", "backing store namespace (default from STORE_NAMESPACE)")
	cmd.PersistentFlags().String("codec", "", "blob codec: json or msgpack (default from STORE_CODEC)")
	cmd.PersistentFlags().String("log-level", "warn", "log level")

	cmd.AddCommand(cmdList())
	cmd.AddCommand(cmdAdd())
	cmd.AddCommand(cmdRemove())
	cmd.AddCommand(cmdClear())
	cmd.AddCommand(cmdReset())
	cmd.AddCommand(cmdSearch())
	return cmd
}

// withStore opens the configured store, runs fn, then flushes and closes it
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *usecase.FlightStore) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.StoreBackend = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("namespace"); v != "" {
		cfg.StoreNamespace = v
	}
	if v, _ := cmd.Flags().GetString("codec"); v != "" {
		cfg.StoreCodec = v
	}
	level, _ := cmd.Flags().GetString("log-level")
	log := logger.NewLoggerWithLevel(level)
	defer log.Sync()

	blobCodec, err := codec.ByName(cfg.StoreCodec)
	if err != nil {
		return err
	}
	kv, err := kvRepo.NewKeyValueStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.StoreBackend, err)
	}
	defer kv.Close()

	store := usecase.NewFlightStore(kv, log,
		usecase.WithCodec(blobCodec),
		usecase.WithKey(cfg.StoreKey),
		usecase.WithPersistTimeout(cfg.PersistTimeout),
	)
	defer store.Close()

	if err := store.Initialize(ctx); err != nil {
		return err
	}
	return fn(ctx, store)
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func cmdList() *cobra.Command {
	var role, reservation string
	var cmd = &cobra.Command{
		Use:          "list",
		Short:        "list saved flights",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				switch {
				case reservation != "":
					return printJSON(cmd.OutOrStdout(), store.GetByReservation(reservation))
				case role != "":
					r, err := entity.ParseRole(role)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), store.GetByRole(r))
				}
				return printJSON(cmd.OutOrStdout(), store.GetAll())
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", role, "only flights added by this role")
	cmd.Flags().StringVar(&reservation, "reservation", reservation, "only flights linked to this reservation")
	return cmd
}

func cmdAdd() *cobra.Command {
	var identifier, role, reservation, status string
	var cmd = &cobra.Command{
		Use:          "add",
		Short:        "add a flight",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			record := entity.FlightRecord{Identifier: identifier, ReservationID: reservation}
			var r entity.Role
			if role != "" {
				parsed, err := entity.ParseRole(role)
				if err != nil {
					return err
				}
				r = parsed
			}
			if status != "" {
				parsed, err := entity.ParseStatus(status)
				if err != nil {
					return err
				}
				record.Status = parsed
			}
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				added, err := store.Add(ctx, record, r)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), added)
			})
		},
	}
	cmd.Flags().StringVar(&identifier, "identifier", identifier, "flight or tail number")
	cmd.Flags().StringVar(&role, "role", role, "role adding the flight")
	cmd.Flags().StringVar(&reservation, "reservation", reservation, "reservation id")
	cmd.Flags().StringVar(&status, "status", status, "scheduled, completed, draft or cancelled")
	cmd.MarkFlagRequired("identifier")
	return cmd
}

func cmdRemove() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "remove <id>",
		Short:        "remove a flight",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				found, err := store.Remove(ctx, args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("flight %q not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func cmdClear() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "clear",
		Short:        "delete every saved flight",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				return store.ClearAll(ctx)
			})
		},
	}
	return cmd
}

func cmdReset() *cobra.Command {
	var all bool
	var cmd = &cobra.Command{
		Use:          "reset",
		Short:        "restore the demo flights",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				if all {
					return store.ForceReset(ctx)
				}
				return store.Reset(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", all, "wipe the whole backing-store namespace first")
	return cmd
}

func cmdSearch() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "search <query>",
		Short:        "find flights by flight or tail number",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *usecase.FlightStore) error {
				return printJSON(cmd.OutOrStdout(), store.Search(args[0]))
			})
		},
	}
	return cmd
}
