package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/najadb/naja/internal/ui"
)

// dropCmd drops every schema-defined table from the database.
func dropCmd() *cobra.Command {
	var (
		yes    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop all schema-defined tables from the database",
		Long:  `Generate DROP TABLE DDL for every schema file and execute it against the configured database. Tables are dropped in reverse definition order so dependents go first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return generate("", true)
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

			if !yes && !confirm(fmt.Sprintf("Drop %s?", ui.FormatCount(count, "table", "tables"))) {
				fmt.Println(ui.Dim("aborted"))
				return nil
			}

			if err := client.DropContext(cmd.Context()); err != nil {
				fmt.Fprint(os.Stderr, ui.FormatError(err))
				os.Exit(1)
			}

			fmt.Println(ui.Done(ui.FormatCount(count, "table dropped", "tables dropped")))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the DDL instead of executing it")

	return cmd
}

// confirm asks the user a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", ui.Warning(question))
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
