// Package main provides the CLI for the naja DDL generation tool.
// Naja turns YAML table definitions into dialect-specific SQL DDL and
// can apply the generated statements directly to a live database.
//
// Usage:
//
//	naja check                   # Validate all schema files
//	naja gen                     # Print CREATE TABLE DDL for the schemas
//	naja gen -o schema.sql       # Write DDL to a file
//	naja gen --watch             # Regenerate whenever a schema file changes
//	naja apply                   # Execute the generated DDL against the database
//	naja drop                    # Drop all schema-defined tables
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	databaseURL string
	configFile  string
	schemasDir  string
	dialectName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "naja",
		Short:   "Generate and apply SQL DDL from YAML schemas",
		Long:    `Naja generates dialect-specific SQL DDL (MySQL, PostgreSQL, SQLite) from YAML table definitions and can apply it directly to a database.`,
		Version: version,
	}

	// Accept snake_case spellings of flags, matching config file keys.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "naja.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&schemasDir, "schemas", "s", "", "Directory containing schema YAML files")
	rootCmd.PersistentFlags().StringVar(&dialectName, "dialect", "", "SQL dialect (mysql, postgres, sqlite)")

	rootCmd.AddCommand(
		checkCmd(),
		genCmd(),
		applyCmd(),
		dropCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
