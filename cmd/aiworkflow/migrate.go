package main

import (
	"fmt"

	"github.com/go-streamline/aiworkflow/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the record tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()

			tables, err := database.NewSchemaManager(env.db).CreateTables(cmd.Context())
			if err != nil {
				return err
			}
			env.log.WithField("tables", tables).Info("tables migrated")
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(tables))
			return nil
		},
	}
}

func newDropTablesCommand(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop-tables",
		Short: "Drop every record table (all data is lost)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop tables without --yes")
			}
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()

			if env.cfg.App.IsProduction() {
				return fmt.Errorf("refusing to drop tables in production")
			}
			tables, err := database.NewSchemaManager(env.db).DropTables(cmd.Context())
			if err != nil {
				return err
			}
			env.log.WithField("tables", tables).Warn("tables dropped")
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %d tables\n", len(tables))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that all data may be deleted")
	return cmd
}
