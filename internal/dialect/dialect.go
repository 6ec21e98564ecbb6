// Package dialect provides database-specific DDL generation.
// Each dialect implements the type mapping from column kinds to SQL,
// default-value and constraint rendering, and full CREATE TABLE /
// DROP TABLE statement synthesis. Generation is a pure transformation
// from descriptors to strings: identical inputs yield identical output.
package dialect

import (
	"github.com/najadb/naja/internal/model"
)

// Dialect defines the interface for database-specific DDL generation.
// Implementations exist for MySQL, PostgreSQL, and SQLite.
type Dialect interface {
	// Name returns the dialect name (mysql, postgres, sqlite).
	Name() string

	// QuoteIdent quotes an identifier (table/column name) for the dialect.
	// MySQL: `name`. PostgreSQL/SQLite: bare (names are validated snake_case).
	QuoteIdent(name string) string

	// -------------------------------------------------------------------------
	// Feature support
	// -------------------------------------------------------------------------

	// SupportsConstraints reports whether the given storage engine supports
	// referential constraints. Relationship generation is skipped entirely
	// when it returns false.
	// MySQL: only InnoDB. PostgreSQL/SQLite: always true.
	SupportsConstraints(engine string) bool

	// SupportsArrays reports whether the dialect has array columns.
	// PostgreSQL: true. MySQL/SQLite: false.
	SupportsArrays() bool

	// SupportsDropModifiers reports whether DROP TABLE accepts
	// RESTRICT/CASCADE. PostgreSQL: true. MySQL/SQLite: false.
	SupportsDropModifiers() bool

	// SupportsTransactionalDDL reports whether DDL can run inside a
	// transaction. PostgreSQL/SQLite: true. MySQL: false (implicit commit).
	SupportsTransactionalDDL() bool

	// -------------------------------------------------------------------------
	// Column translation
	// -------------------------------------------------------------------------

	// ColumnType translates a column descriptor to its dialect type fragment.
	// Unrecognized kinds fall back to the dialect's generic text type; the
	// only failures are missing array definitions and malformed decimal sizes.
	ColumnType(col *model.ColumnDef) (string, error)

	// EnumType renders the native-enum representation for a column:
	// the inline type fragment on MySQL, the CREATE TYPE statement on
	// PostgreSQL. Fails with ErrNotEnumColumn when the column is not
	// backed by the native-enum representation.
	EnumType(col *model.ColumnDef) (string, error)

	// DefaultValue renders the column's default as a dialect literal.
	// The second return is false when no default is configured; the caller
	// prefixes the literal with " default ".
	DefaultValue(col *model.ColumnDef) (string, bool)

	// -------------------------------------------------------------------------
	// Table-level fragments
	// -------------------------------------------------------------------------

	// PrimaryKey renders the table's primary-key clause, resolving the
	// single flagged column or the explicit compound specification.
	// Fails with ErrMissingPrimaryKey when neither exists.
	PrimaryKey(table *model.TableDef) (string, error)

	// References renders one constraint fragment per relationship:
	// an inline INDEX + FOREIGN KEY clause on MySQL, a standalone
	// ALTER TABLE ... ADD CONSTRAINT statement on PostgreSQL, an inline
	// FOREIGN KEY clause on SQLite. Returns nil when the table's storage
	// engine does not support constraints.
	References(table *model.TableDef) ([]string, error)

	// -------------------------------------------------------------------------
	// Statement synthesis
	// -------------------------------------------------------------------------

	// CreateTable returns the full creation script for the table:
	// preceding enum-type declarations where the dialect requires them,
	// the CREATE TABLE statement with columns in declaration order, and
	// trailing constraint statements where the dialect emits them
	// separately. Honors cfg.CreateIfNotExists and cfg.DropBeforeCreate.
	CreateTable(table *model.TableDef, cfg model.DDLConfig) (string, error)

	// DropTable returns the DROP TABLE statement for the table, honoring
	// cfg.DropIfExists and, where supported, cfg.Restrict/cfg.Cascade.
	DropTable(table *model.TableDef, cfg model.DDLConfig) (string, error)
}

// Get returns the dialect implementation for the given name.
// Valid names: "mysql", "postgres", "postgresql", "sqlite", "sqlite3".
// Returns nil if the dialect is not supported.
func Get(name string) Dialect {
	switch name {
	case "mysql":
		return MySQL()
	case "postgres", "postgresql":
		return Postgres()
	case "sqlite", "sqlite3":
		return SQLite()
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"mysql", "postgres", "sqlite"}
}
