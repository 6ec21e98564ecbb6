package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/najadb/naja/internal/ui"
)

// checkCmd validates schema files without touching a database.
func checkCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate schema files",
		Long:  `Load every YAML schema file in the schemas directory and report the first validation error, if any.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSchemaOnlyClient()
			if err != nil {
				return err
			}

			count, err := client.Check()
			if err != nil {
				if jsonOutput {
					outputJSON(map[string]any{
						"valid": false,
						"error": err.Error(),
					})
				} else {
					fmt.Fprint(os.Stderr, ui.FormatError(err))
				}
				os.Exit(1)
			}

			if jsonOutput {
				outputJSON(map[string]any{
					"valid":   true,
					"tables":  count,
					"dialect": client.Dialect(),
				})
			} else {
				content := ui.FormatKeyValue("Tables", ui.FormatCount(count, "table", "tables")) + "\n" +
					ui.FormatKeyValue("Dialect", client.Dialect())
				fmt.Println(ui.RenderSuccessPanel("Schema check passed", content))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// outputJSON writes a JSON object to stdout.
func outputJSON(data map[string]any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
