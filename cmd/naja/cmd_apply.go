package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/najadb/naja/internal/ui"
)

// applyCmd executes the generated CREATE TABLE DDL against the database.
func applyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create all schema-defined tables in the database",
		Long:  `Generate CREATE TABLE DDL for every schema file and execute it against the configured database. With --dry-run the script is printed instead of executed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return generate("", false)
			}

			client, err := newClient()
			if err != nil {
				if handleClientError(err) {
					os.Exit(1)
				}
				return err
			}
			defer client.Close()

			count, err := client.Check()
			if err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
				os.Exit(1)
			}

			if err := client.ApplyContext(cmd.Context()); err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
				os.Exit(1)
			}

			content := ui.FormatKeyValue("Tables", ui.FormatCount(count, "table", "tables")) + "\n" +
				ui.FormatKeyValue("Dialect", client.Dialect())
			fmt.Println(ui.RenderSuccessPanel("Schema applied", content))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the DDL instead of executing it")

	return cmd
}
