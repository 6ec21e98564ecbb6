package dialect

import (
	"fmt"
	"strings"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
	"github.com/najadb/naja/internal/sqlgen"
)

// sqliteDialect implements Dialect for SQLite.
//
// SQLite uses type affinities rather than strict types: integer kinds
// collapse to integer, decimals and enums are stored as text, and enum
// membership is enforced with an inline CHECK constraint. Display
// width, unsigned, and autoincrement markers are ignored; rowid
// aliasing handles autoincrement for integer primary keys.
type sqliteDialect struct {
	types typeMap
}

// SQLite returns the SQLite dialect.
func SQLite() Dialect {
	return &sqliteDialect{
		types: typeMap{
			model.KindBool:     "tinyint",
			model.KindUUID:     "blob",
			model.KindRawBytes: "blob",
			model.KindPickle:   "blob",
			model.KindJSON:     "blob",
			model.KindDateTime: "datetime",
			model.KindDate:     "date",
			model.KindTime:     "time",
			model.KindEnum:     "integer",
		},
	}
}

func (d *sqliteDialect) Name() string { return "sqlite" }

func (d *sqliteDialect) QuoteIdent(name string) string {
	return sqlgen.QuoteIdent(sqlgen.SQLite, name)
}

func (d *sqliteDialect) SupportsConstraints(engine string) bool { return true }

func (d *sqliteDialect) SupportsArrays() bool { return false }

func (d *sqliteDialect) SupportsDropModifiers() bool { return false }

func (d *sqliteDialect) SupportsTransactionalDDL() bool { return true }

func (d *sqliteDialect) ColumnType(col *model.ColumnDef) (string, error) {
	switch {
	case col.Kind.IsInteger():
		return "integer", nil
	case col.Kind == model.KindDecimal:
		return "text", nil
	case col.Kind == model.KindUnicode:
		return sizedType("varchar", col.DisplayWidth()), nil
	case col.Kind == model.KindFloat:
		return "real", nil
	case col.Kind == model.KindNativeEnum:
		return d.EnumType(col)
	case col.Kind == model.KindList:
		return "", naerr.New(naerr.ErrMissingArrayDef,
			"array columns are not supported by sqlite").
			WithColumn(col.Name)
	default:
		return d.types.lookup(col.Kind, "text"), nil
	}
}

// EnumType renders enums as text with an inline membership check,
// e.g. text CHECK (status IN ('a','b','c')).
func (d *sqliteDialect) EnumType(col *model.ColumnDef) (string, error) {
	if err := requireNativeEnum(col); err != nil {
		return "", err
	}
	return fmt.Sprintf("text CHECK (%s IN (%s))",
		d.QuoteIdent(col.Name), enumLabels(col)), nil
}

func (d *sqliteDialect) DefaultValue(col *model.ColumnDef) (string, bool) {
	return encodeDefault(col, NumericBooleans)
}

// PrimaryKey renders the unnamed primary key clause.
func (d *sqliteDialect) PrimaryKey(table *model.TableDef) (string, error) {
	cols, err := primaryKeyColumns(d, table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PRIMARY KEY(%s)", cols), nil
}

// References renders one inline FOREIGN KEY clause per relationship.
func (d *sqliteDialect) References(table *model.TableDef) ([]string, error) {
	var refs []string
	for _, rel := range table.Relationships {
		if err := rel.Validate(); err != nil {
			return nil, err
		}
		onUpdate, onDelete := rel.Actions()
		refs = append(refs, fmt.Sprintf(
			"FOREIGN KEY (%s) REFERENCES %s(%s) ON UPDATE %s ON DELETE %s",
			d.QuoteIdent(rel.LocalColumn),
			d.QuoteIdent(rel.RemoteTable),
			d.QuoteIdent(rel.TargetColumn()),
			onUpdate, onDelete,
		))
	}
	return refs, nil
}

func (d *sqliteDialect) CreateTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
	var b strings.Builder
	b.WriteString(createHeader(d, table, cfg))

	for _, col := range table.Columns {
		line, err := columnLine(d, col)
		if err != nil {
			return "", tagTable(err, table.Name)
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString(",\n")
	}

	pk, err := d.PrimaryKey(table)
	if err != nil {
		return "", err
	}
	b.WriteString("  ")
	b.WriteString(pk)

	refs, err := d.References(table)
	if err != nil {
		return "", err
	}
	if len(refs) > 0 {
		b.WriteString(",\n  ")
		b.WriteString(strings.Join(refs, ",\n  "))
	}

	b.WriteString("\n);\n")

	return prependDrop(d, table, cfg, b.String()), nil
}

func (d *sqliteDialect) DropTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
	return dropStatement(d, table, cfg), nil
}
