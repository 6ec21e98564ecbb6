package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/najadb/naja/internal/ui"
	"github.com/najadb/naja/pkg/naja"
)

// FilePerm is the permission used for generated SQL files.
const FilePerm = 0o644

// genCmd generates DDL for all schema files.
func genCmd() *cobra.Command {
	var (
		outputFile string
		dropScript bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "gen [table]",
		Short: "Generate SQL DDL from schema files",
		Long:  `Generate CREATE TABLE statements (or DROP TABLE statements with --drop) for every schema file, or for a single named table, in the configured dialect.`,
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Print postgres DDL to stdout
  naja gen --dialect postgres

  # Generate a single table
  naja gen customer

  # Write to a file and regenerate on schema changes
  naja gen -o schema.sql --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tableName string
			if len(args) == 1 {
				tableName = args[0]
			}
			if err := generateTable(outputFile, dropScript, tableName); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndGenerate(outputFile, dropScript)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write DDL to a file instead of stdout")
	cmd.Flags().BoolVar(&dropScript, "drop", false, "Generate DROP TABLE statements instead of CREATE TABLE")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate whenever a schema file changes")

	return cmd
}

// generate produces the DDL script once and writes it to the
// configured destination.
func generate(outputFile string, dropScript bool) error {
	return generateTable(outputFile, dropScript, "")
}

// generateTable is generate restricted to one table when tableName is
// non-empty.
func generateTable(outputFile string, dropScript bool, tableName string) error {
	client, err := newSchemaOnlyClient()
	if err != nil {
		return err
	}

	var script string
	switch {
	case dropScript:
		script, err = client.GenerateDrop()
	case tableName != "":
		script, err = client.GenerateTable(tableName)
	default:
		script, err = client.Generate()
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Print(script)
		return nil
	}

	if err := os.WriteFile(outputFile, []byte(script), FilePerm); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("%s → %s\n", ui.Dim("gen"), ui.Primary(outputFile))
	return nil
}

// watchAndGenerate blocks, regenerating the script whenever a schema
// file changes. Events are debounced so editors that write in several
// steps trigger a single regeneration.
func watchAndGenerate(outputFile string, dropScript bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file watcher failed: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.SchemasDir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", cfg.SchemasDir, err)
	}

	fmt.Println(ui.Info("Watching " + cfg.SchemasDir + " (Ctrl-C to stop)"))

	var (
		debounce  = 250 * time.Millisecond
		timer     = time.NewTimer(debounce)
		regenAt   time.Time
		haveRegen bool
	)
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSchemaFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			regenAt = time.Now().Add(debounce)
			if !haveRegen {
				timer.Reset(debounce)
				haveRegen = true
			}
		case <-timer.C:
			if remaining := time.Until(regenAt); remaining > 0 {
				timer.Reset(remaining)
				continue
			}
			haveRegen = false
			if err := generate(outputFile, dropScript); err != nil {
				// Keep watching; schema errors are expected mid-edit.
				fmt.Fprint(os.Stderr, ui.FormatError(err))
			} else {
				fmt.Println(ui.Done("regenerated " + time.Now().Format("15:04:05")))
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, ui.Warning("watch error: "+werr.Error()))
		}
	}
}

// isSchemaFile reports whether path looks like a schema definition.
func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// handleClientError prints connection-phase errors in a friendly form.
// Returns true if the error was handled and the process should exit.
func handleClientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, naja.ErrMissingDatabaseURL) {
		fmt.Fprintln(os.Stderr, ui.Failed("no database URL configured"))
		fmt.Fprintln(os.Stderr, ui.Dim("  set database_url in naja.yaml, DATABASE_URL in the environment, or pass --database-url"))
		return true
	}
	return false
}
