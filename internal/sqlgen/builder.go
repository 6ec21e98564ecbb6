// Package sqlgen provides dialect-agnostic SQL building helpers to reduce string concatenation.
package sqlgen

import (
	"strings"
)

// Dialect represents a supported SQL database dialect.
type Dialect int

const (
	// MySQL represents the MySQL dialect.
	MySQL Dialect = iota
	// Postgres represents the PostgreSQL dialect.
	Postgres
	// SQLite represents the SQLite dialect.
	SQLite
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Builder provides fluent SQL construction with dialect awareness.
type Builder struct {
	dialect Dialect
	buf     strings.Builder
}

// New creates a new Builder for the specified dialect.
func New(dialect Dialect) *Builder {
	return &Builder{
		dialect: dialect,
	}
}

// Dialect returns the dialect of this builder.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// ----------------------------------------------------------------------------
// DDL Helpers
// ----------------------------------------------------------------------------

// CreateTable appends "CREATE TABLE <name>" to the buffer.
// When ifNotExists is set, the existence guard precedes the name.
func (b *Builder) CreateTable(name string, ifNotExists bool) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.buf.WriteString("IF NOT EXISTS ")
	}
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	return b
}

// DropTable appends "DROP TABLE <name>" to the buffer.
// When ifExists is set, the existence guard precedes the name.
func (b *Builder) DropTable(name string, ifExists bool) *Builder {
	b.buf.WriteString("DROP TABLE ")
	if ifExists {
		b.buf.WriteString("IF EXISTS ")
	}
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	return b
}

// AlterTable appends "ALTER TABLE <name>" to the buffer.
func (b *Builder) AlterTable(name string) *Builder {
	b.buf.WriteString("ALTER TABLE ")
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	return b
}

// Column appends "<name> <typ>" to the buffer (for use inside CREATE TABLE).
func (b *Builder) Column(name, typ string) *Builder {
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	b.buf.WriteString(" ")
	b.buf.WriteString(typ)
	return b
}

// ----------------------------------------------------------------------------
// Column Modifiers
// ----------------------------------------------------------------------------

// NotNull appends " NOT NULL" to the buffer.
func (b *Builder) NotNull() *Builder {
	b.buf.WriteString(" NOT NULL")
	return b
}

// Default appends " default <expr>" to the buffer.
// The expression is written as-is (not quoted).
func (b *Builder) Default(expr string) *Builder {
	b.buf.WriteString(" default ")
	b.buf.WriteString(expr)
	return b
}

// ----------------------------------------------------------------------------
// Constraints
// ----------------------------------------------------------------------------

// Constraint appends "CONSTRAINT <name>" to the buffer.
func (b *Builder) Constraint(name string) *Builder {
	b.buf.WriteString("CONSTRAINT ")
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	return b
}

// ForeignKey appends "FOREIGN KEY (<cols>)" to the buffer.
func (b *Builder) ForeignKey(cols ...string) *Builder {
	b.buf.WriteString("FOREIGN KEY (")
	b.buf.WriteString(Columns(b.dialect, cols...))
	b.buf.WriteString(")")
	return b
}

// References appends " REFERENCES <table>(<column>)" to the buffer.
func (b *Builder) References(table, column string) *Builder {
	b.buf.WriteString(" REFERENCES ")
	b.buf.WriteString(QuoteIdent(b.dialect, table))
	b.buf.WriteString("(")
	b.buf.WriteString(QuoteIdent(b.dialect, column))
	b.buf.WriteString(")")
	return b
}

// OnUpdate appends " ON UPDATE <action>" to the buffer.
// Common actions: CASCADE, SET NULL, SET DEFAULT, RESTRICT, NO ACTION.
func (b *Builder) OnUpdate(action string) *Builder {
	b.buf.WriteString(" ON UPDATE ")
	b.buf.WriteString(action)
	return b
}

// OnDelete appends " ON DELETE <action>" to the buffer.
func (b *Builder) OnDelete(action string) *Builder {
	b.buf.WriteString(" ON DELETE ")
	b.buf.WriteString(action)
	return b
}

// Check appends " CHECK (<expr>)" to the buffer.
func (b *Builder) Check(expr string) *Builder {
	b.buf.WriteString(" CHECK (")
	b.buf.WriteString(expr)
	b.buf.WriteString(")")
	return b
}

// ----------------------------------------------------------------------------
// Utilities
// ----------------------------------------------------------------------------

// Raw appends raw SQL to the buffer without any modification.
func (b *Builder) Raw(sql string) *Builder {
	b.buf.WriteString(sql)
	return b
}

// Ident appends a quoted identifier to the buffer.
func (b *Builder) Ident(name string) *Builder {
	b.buf.WriteString(QuoteIdent(b.dialect, name))
	return b
}

// Comma appends "," to the buffer.
func (b *Builder) Comma() *Builder {
	b.buf.WriteString(",")
	return b
}

// Newline appends a newline character to the buffer.
func (b *Builder) Newline() *Builder {
	b.buf.WriteString("\n")
	return b
}

// Space appends a space character to the buffer.
func (b *Builder) Space() *Builder {
	b.buf.WriteString(" ")
	return b
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// ----------------------------------------------------------------------------
// Standalone Helpers
// ----------------------------------------------------------------------------

// QuoteIdent returns the identifier quoted according to the dialect.
// MySQL uses backticks: `name`. PostgreSQL and SQLite identifiers are
// emitted bare; the model layer validates them as lowercase snake_case,
// so quoting would only add noise to the generated scripts.
func QuoteIdent(dialect Dialect, s string) string {
	if dialect == MySQL {
		escaped := strings.ReplaceAll(s, "`", "``")
		return "`" + escaped + "`"
	}
	return s
}

// Columns returns a comma-separated list of quoted column names.
// Example: Columns(MySQL, "a", "b") -> "`a`, `b`"
func Columns(dialect Dialect, cols ...string) string {
	if len(cols) == 0 {
		return ""
	}
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = QuoteIdent(dialect, col)
	}
	return strings.Join(parts, ", ")
}

// QuoteLiterals returns a comma-joined (no space), single-quoted label list.
// Example: QuoteLiterals("a", "b") -> "'a','b'". Embedded quotes are doubled.
func QuoteLiterals(labels ...string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = "'" + strings.ReplaceAll(l, "'", "''") + "'"
	}
	return strings.Join(parts, ",")
}
