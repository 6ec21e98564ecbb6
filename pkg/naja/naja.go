// Package naja is the public API for the naja DDL generator.
//
// A Client loads YAML model files, generates dialect-correct CREATE
// TABLE / DROP TABLE scripts, and optionally applies them to a live
// database.
package naja

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/najadb/naja/internal/apply"
	"github.com/najadb/naja/internal/dialect"
	"github.com/najadb/naja/internal/loader"
	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
)

// Sentinel errors returned by New and the database-backed operations.
var (
	// ErrMissingDatabaseURL is returned when no database URL is
	// configured outside schema-only mode.
	ErrMissingDatabaseURL = errors.New("naja: database URL is required")

	// ErrUnsupportedDialect is returned for unknown dialect names.
	ErrUnsupportedDialect = errors.New("naja: unsupported dialect")

	// ErrSchemaOnly is returned when a database operation is invoked
	// on a schema-only client.
	ErrSchemaOnly = errors.New("naja: operation requires a database connection")
)

// Client is the main entry point for naja.
//
// Create a new client with New() and close it with Close() when done.
//
// Example:
//
//	client, err := naja.New(
//	    naja.WithDatabaseURL("postgres://localhost/mydb"),
//	    naja.WithSchemasDir("./schemas"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Apply(); err != nil {
//	    log.Fatal(err)
//	}
type Client struct {
	db      *sql.DB
	dialect dialect.Dialect
	config  *Config
	applier *apply.Applier
}

// New creates a new Client with the given options.
//
// Outside schema-only mode, WithDatabaseURL must be provided; the
// dialect is auto-detected from the URL when not explicitly set.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		SchemasDir: "./schemas",
		DDL:        model.DefaultDDLConfig(),
		Timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Schema-only mode: generation without a database. A dialect is
	// still needed to pick the output syntax.
	if cfg.SchemaOnly {
		d := dialect.Get(dialectOrDefault(cfg))
		if d == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, cfg.Dialect)
		}
		return &Client{dialect: d, config: cfg}, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.Dialect == "" {
		cfg.Dialect = detectDialect(cfg.DatabaseURL)
	}

	d := dialect.Get(cfg.Dialect)
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, cfg.Dialect)
	}

	db, err := openDatabase(cfg.DatabaseURL, d.Name())
	if err != nil {
		return nil, naerr.Wrap(naerr.ErrSQLConnection, err, "cannot open database").
			With("url", redactURL(cfg.DatabaseURL)).
			With("dialect", d.Name())
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, naerr.Wrap(naerr.ErrSQLConnection, err, "cannot reach database").
			With("url", redactURL(cfg.DatabaseURL)).
			With("dialect", d.Name())
	}

	return &Client{
		db:      db,
		dialect: d,
		config:  cfg,
		applier: apply.New(db, d),
	}, nil
}

// Close closes the database connection and releases resources.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection, or nil in schema-only
// mode. Use with caution - prefer the high-level methods when possible.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Dialect returns the database dialect name.
func (c *Client) Dialect() string {
	return c.dialect.Name()
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// Tables loads and validates all model files from the schemas directory.
func (c *Client) Tables() ([]*model.TableDef, error) {
	return loader.LoadDir(c.config.SchemasDir)
}

// Check loads and validates the model files without generating output.
// Returns the number of valid tables.
func (c *Client) Check() (int, error) {
	tables, err := c.Tables()
	if err != nil {
		return 0, err
	}
	return len(tables), nil
}

// Generate returns the full creation script for every table: enum-type
// declarations where the dialect requires them, the CREATE TABLE
// statements, and trailing constraint statements. Tables render in
// lexical file order; statements are newline-separated.
func (c *Client) Generate() (string, error) {
	tables, err := c.Tables()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, table := range tables {
		script, err := c.dialect.CreateTable(table, c.config.DDL)
		if err != nil {
			return "", err
		}
		b.WriteString(script)
	}
	return b.String(), nil
}

// GenerateTable returns the creation script for a single table by name.
func (c *Client) GenerateTable(name string) (string, error) {
	tables, err := c.Tables()
	if err != nil {
		return "", err
	}
	for _, table := range tables {
		if table.Name == name {
			return c.dialect.CreateTable(table, c.config.DDL)
		}
	}
	return "", naerr.Newf(naerr.ErrModelInvalid, "no schema defines table %q", name).
		WithTable(name)
}

// GenerateDrop returns the drop script for every table in reverse
// order, one statement per line.
func (c *Client) GenerateDrop() (string, error) {
	tables, err := c.Tables()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := len(tables) - 1; i >= 0; i-- {
		stmt, err := c.dialect.DropTable(tables[i], c.config.DDL)
		if err != nil {
			return "", err
		}
		b.WriteString(stmt)
		b.WriteString(";\n")
	}
	return b.String(), nil
}

// Apply generates the creation script and executes it against the
// configured database.
func (c *Client) Apply() error {
	ctx, cancel := c.context()
	defer cancel()
	return c.ApplyContext(ctx)
}

// ApplyContext is Apply with a caller-supplied context.
func (c *Client) ApplyContext(ctx context.Context) error {
	if c.applier == nil {
		return ErrSchemaOnly
	}
	tables, err := c.Tables()
	if err != nil {
		return err
	}
	c.log("applying %d table(s) to %s", len(tables), c.dialect.Name())
	return c.applier.CreateTables(ctx, tables, c.config.DDL)
}

// Drop generates the drop script and executes it against the
// configured database.
func (c *Client) Drop() error {
	ctx, cancel := c.context()
	defer cancel()
	return c.DropContext(ctx)
}

// DropContext is Drop with a caller-supplied context.
func (c *Client) DropContext(ctx context.Context) error {
	if c.applier == nil {
		return ErrSchemaOnly
	}
	tables, err := c.Tables()
	if err != nil {
		return err
	}
	c.log("dropping %d table(s) on %s", len(tables), c.dialect.Name())
	return c.applier.DropTables(ctx, tables, c.config.DDL)
}

// log logs a message if a logger is configured.
func (c *Client) log(format string, v ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Printf(format, v...)
	}
}

// context returns a context with the configured timeout.
func (c *Client) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.config.Timeout)
}

func dialectOrDefault(cfg *Config) string {
	if cfg.Dialect != "" {
		return cfg.Dialect
	}
	if cfg.DatabaseURL != "" {
		return detectDialect(cfg.DatabaseURL)
	}
	return "postgres"
}

// detectDialect auto-detects the database dialect from the connection URL.
//
// Detection rules:
//   - mysql:// -> mysql
//   - postgres:// or postgresql:// -> postgres
//   - sqlite:// or file: or path ending with .db/.sqlite/.sqlite3 -> sqlite
func detectDialect(url string) string {
	url = strings.ToLower(url)

	switch {
	case strings.HasPrefix(url, "mysql://"):
		return "mysql"

	case strings.HasPrefix(url, "postgres://"),
		strings.HasPrefix(url, "postgresql://"):
		return "postgres"

	case strings.HasPrefix(url, "sqlite://"),
		strings.HasPrefix(url, "sqlite3://"),
		strings.HasPrefix(url, "file:"):
		return "sqlite"

	case strings.HasSuffix(url, ".db"),
		strings.HasSuffix(url, ".sqlite"),
		strings.HasSuffix(url, ".sqlite3"):
		return "sqlite"
	}

	// Default to postgres if no match
	return "postgres"
}

// openDatabase opens a database connection based on the dialect.
func openDatabase(url, dialectName string) (*sql.DB, error) {
	switch dialectName {
	case "mysql":
		return sql.Open("mysql", convertMySQLURL(url))

	case "postgres":
		return sql.Open("postgres", url)

	case "sqlite":
		return sql.Open("sqlite", convertSQLiteURL(url))

	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialectName)
	}
}

// convertMySQLURL converts a mysql:// URL into the driver's DSN form,
// user:pass@tcp(host:port)/dbname. DSNs already in driver form pass
// through unchanged.
func convertMySQLURL(url string) string {
	dsn := strings.TrimPrefix(url, "mysql://")

	at := strings.LastIndex(dsn, "@")
	if at == -1 {
		return dsn
	}
	rest := dsn[at+1:]
	if strings.HasPrefix(rest, "tcp(") || strings.HasPrefix(rest, "unix(") {
		return dsn
	}
	slash := strings.Index(rest, "/")
	if slash == -1 {
		return dsn
	}
	return dsn[:at+1] + "tcp(" + rest[:slash] + ")" + rest[slash:]
}

// convertSQLiteURL converts a sqlite:// URL to a file path, or returns
// the path as-is.
func convertSQLiteURL(url string) string {
	url = strings.TrimPrefix(url, "sqlite://")
	url = strings.TrimPrefix(url, "sqlite3://")
	url = strings.TrimPrefix(url, "file:")
	return url
}

// redactURL removes credentials from a database URL for logging.
func redactURL(url string) string {
	start := strings.Index(url, "://")
	if start == -1 {
		return url
	}
	start += 3

	end := strings.Index(url[start:], "@")
	if end == -1 {
		return url
	}
	end += start

	credentials := url[start:end]
	if colonIdx := strings.Index(credentials, ":"); colonIdx != -1 {
		user := credentials[:colonIdx]
		return url[:start] + user + ":***@" + url[end+1:]
	}

	return url
}
