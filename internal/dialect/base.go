// Package dialect provides database-specific DDL generation.
// This file contains shared helpers used by all dialect implementations.
package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
	"github.com/najadb/naja/internal/sqlgen"
)

// tagTable attaches the table name to structured generation errors.
func tagTable(err error, table string) error {
	var ne *naerr.Error
	if errors.As(err, &ne) {
		return ne.WithTable(table)
	}
	return err
}

// tagColumn attaches the column name to structured generation errors.
func tagColumn(err error, column string) error {
	var ne *naerr.Error
	if errors.As(err, &ne) {
		return ne.WithColumn(column)
	}
	return err
}

// BooleanLiterals holds the literal forms a dialect uses for boolean
// default values.
type BooleanLiterals struct {
	True  string
	False string
}

// PostgresBooleans renders booleans as keyword literals.
var PostgresBooleans = BooleanLiterals{True: "TRUE", False: "FALSE"}

// NumericBooleans renders booleans as 0/1 integer literals.
var NumericBooleans = BooleanLiterals{True: "1", False: "0"}

// typeMap is a static kind -> type token mapping with a text fallback.
type typeMap map[model.Kind]string

// lookup returns the type token for the kind, falling back to the
// dialect's generic text type for unrecognized kinds.
func (m typeMap) lookup(kind model.Kind, fallback string) string {
	if t, ok := m[kind]; ok {
		return t
	}
	return fallback
}

// encodeDefault renders a column's default value as a dialect literal.
// Booleans use the dialect's boolean literals, temporal values are
// single-quoted, everything else renders in its natural string form.
// The second return is false when no default is configured.
func encodeDefault(col *model.ColumnDef, bools BooleanLiterals) (string, bool) {
	if !col.HasDefault() {
		return "", false
	}
	if b, ok := col.Default.(bool); ok {
		if b {
			return bools.True, true
		}
		return bools.False, true
	}
	if col.Kind.IsTemporal() {
		return fmt.Sprintf("'%v'", col.Default), true
	}
	return fmt.Sprintf("%v", col.Default), true
}

// columnLine renders one column definition line: quoted name, type
// fragment, nullability clause, and default clause.
func columnLine(d Dialect, col *model.ColumnDef) (string, error) {
	typ, err := d.ColumnType(col)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(d.QuoteIdent(col.Name))
	b.WriteString(" ")
	b.WriteString(typ)
	if col.NotNull {
		b.WriteString(" NOT NULL")
	}
	if lit, ok := d.DefaultValue(col); ok {
		b.WriteString(" default ")
		b.WriteString(lit)
	}
	return b.String(), nil
}

// enumLabels renders a column's value mapping as a single-quoted,
// comma-joined label list ordered by ascending numeric key.
func enumLabels(col *model.ColumnDef) string {
	return sqlgen.QuoteLiterals(col.EnumLabels()...)
}

// requireNativeEnum guards enum rendering against columns that are not
// backed by the dialect's native enum representation.
func requireNativeEnum(col *model.ColumnDef) error {
	if col.Kind != model.KindNativeEnum {
		return naerr.New(naerr.ErrNotEnumColumn,
			"column is not backed by a native enum type").
			WithColumn(col.Name).
			With("kind", col.Kind.String())
	}
	return nil
}

// primaryKeyColumns resolves the table's key columns and joins them as
// a quoted, comma-separated list.
func primaryKeyColumns(d Dialect, table *model.TableDef) (string, error) {
	cols, err := table.ResolvePrimaryKey()
	if err != nil {
		return "", err
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	return strings.Join(quoted, ", "), nil
}

// dropStatement assembles a DROP TABLE statement. The modifier is empty
// for dialects without RESTRICT/CASCADE support.
func dropStatement(d Dialect, table *model.TableDef, cfg model.DDLConfig) string {
	var b strings.Builder
	b.WriteString("DROP TABLE ")
	if cfg.DropIfExists {
		b.WriteString("IF EXISTS ")
	}
	b.WriteString(d.QuoteIdent(table.Name))
	if d.SupportsDropModifiers() {
		if cfg.Cascade {
			b.WriteString(" CASCADE")
		} else if cfg.Restrict {
			b.WriteString(" RESTRICT")
		}
	}
	return b.String()
}

// createHeader renders the "CREATE TABLE [IF NOT EXISTS] <name> (\n" line.
func createHeader(d Dialect, table *model.TableDef, cfg model.DDLConfig) string {
	if cfg.CreateIfNotExists {
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n", d.QuoteIdent(table.Name))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n", d.QuoteIdent(table.Name))
}

// prependDrop prefixes the create script with a drop statement when
// drop-before-create is configured and create-if-not-exists is not.
func prependDrop(d Dialect, table *model.TableDef, cfg model.DDLConfig, create string) string {
	if cfg.DropBeforeCreate && !cfg.CreateIfNotExists {
		drop, err := d.DropTable(table, cfg)
		if err == nil {
			return drop + ";\n" + create
		}
	}
	return create
}
