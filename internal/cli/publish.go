package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"verse-quiz-points/internal/config"
	"verse-quiz-points/internal/domain"
	pgstore "verse-quiz-points/internal/infra/postgres"
	rediscache "verse-quiz-points/internal/infra/redis"
	"verse-quiz-points/internal/infra/yamlfile"
)

// NewPublishCmd validates a YAML point table and stores it in Postgres.
func NewPublishCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <name> <file>",
		Short: "Validate a YAML point table and publish it to Postgres",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, path := args[0], args[1]

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			table, err := yamlfile.ReadConfig(path)
			if err != nil {
				return err
			}
			if err := table.Validate(); err != nil {
				return fmt.Errorf("%w %q: %v", domain.ErrInvalidTable, name, err)
			}

			db := pgstore.OpenDB(cfg.Postgres.URL)
			defer db.Close()
			saved, err := pgstore.NewTableWriter(db).SaveTable(ctx, name, table)
			if err != nil {
				return err
			}

			if client := newRedisClient(cfg); client != nil {
				defer client.Close()
				if err := rediscache.NewTableRepository(client, nil, 0).Invalidate(ctx, name); err != nil {
					log.Printf("invalidate cached point table %q: %v", name, err)
				}
			}
			log.Printf("published point table %q at %s", saved.Name, saved.UpdatedAt.Format(time.RFC3339))
			return nil
		},
	}
}

// NewListTablesCmd lists the point tables published to Postgres.
func NewListTablesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List point tables published to Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			db := pgstore.OpenDB(cfg.Postgres.URL)
			defer db.Close()

			names, err := pgstore.NewTableWriter(db).ListTables(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
