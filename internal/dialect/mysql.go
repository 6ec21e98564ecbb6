package dialect

import (
	"fmt"
	"strings"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
	"github.com/najadb/naja/internal/sqlgen"
	"github.com/najadb/naja/internal/strutil"
)

// mysqlEngineConstraints is the only MySQL storage engine that enforces
// referential constraints. Tables without an explicit engine default to it.
const mysqlEngineConstraints = "InnoDB"

// mysqlDialect implements Dialect for MySQL.
//
// Enum columns embed the label list inline in the column type, foreign
// keys ride inside the CREATE TABLE body as INDEX + FOREIGN KEY clauses,
// and the create statement carries the ENGINE/CHARSET trailer.
type mysqlDialect struct {
	types typeMap
}

// MySQL returns the MySQL dialect.
func MySQL() Dialect {
	return &mysqlDialect{
		types: typeMap{
			model.KindBool:     "tinyint",
			model.KindUUID:     "blob",
			model.KindRawBytes: "blob",
			model.KindPickle:   "varbinary",
			model.KindJSON:     "blob",
			model.KindDateTime: "datetime",
			model.KindDate:     "date",
			model.KindTime:     "time",
			model.KindEnum:     "integer",
		},
	}
}

func (d *mysqlDialect) Name() string { return "mysql" }

func (d *mysqlDialect) QuoteIdent(name string) string {
	return sqlgen.QuoteIdent(sqlgen.MySQL, name)
}

func (d *mysqlDialect) SupportsConstraints(engine string) bool {
	return tableEngine(engine) == mysqlEngineConstraints
}

func (d *mysqlDialect) SupportsArrays() bool { return false }

func (d *mysqlDialect) SupportsDropModifiers() bool { return false }

func (d *mysqlDialect) SupportsTransactionalDDL() bool { return false }

// tableEngine resolves the effective storage engine for a table.
func tableEngine(engine string) string {
	if engine == "" {
		return mysqlEngineConstraints
	}
	return engine
}

func (d *mysqlDialect) ColumnType(col *model.ColumnDef) (string, error) {
	switch {
	case col.Kind.IsInteger():
		return d.intType(col), nil
	case col.Kind == model.KindDecimal:
		return d.decimalType(col)
	case col.Kind == model.KindUnicode:
		return sizedType("varchar", col.DisplayWidth()), nil
	case col.Kind == model.KindFloat:
		return "float", nil
	case col.Kind == model.KindNativeEnum:
		return d.EnumType(col)
	case col.Kind == model.KindList:
		return "", naerr.New(naerr.ErrMissingArrayDef,
			"array columns are not supported by mysql").
			WithColumn(col.Name)
	default:
		return d.types.lookup(col.Kind, "text"), nil
	}
}

// intType renders a sized integer: lowercased base type, optional display
// width, optional UNSIGNED and AUTO_INCREMENT markers.
func (d *mysqlDialect) intType(col *model.ColumnDef) string {
	var b strings.Builder
	b.WriteString(sizedType(integerBase(col.Kind), col.DisplayWidth()))
	if col.Unsigned {
		b.WriteString(" UNSIGNED")
	}
	if col.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	return b.String()
}

func (d *mysqlDialect) decimalType(col *model.ColumnDef) (string, error) {
	size, err := model.ParseDecimalSize(col.Size)
	if err != nil {
		return "", naerr.Wrap(naerr.ErrInvalidDecimalSize, err,
			"mysql decimal columns require a (precision, scale) size").
			WithColumn(col.Name)
	}
	return fmt.Sprintf("decimal(%s)", size), nil
}

// EnumType renders the inline enum type fragment, e.g. enum('a','b','c').
func (d *mysqlDialect) EnumType(col *model.ColumnDef) (string, error) {
	if err := requireNativeEnum(col); err != nil {
		return "", err
	}
	return fmt.Sprintf("enum(%s)", enumLabels(col)), nil
}

func (d *mysqlDialect) DefaultValue(col *model.ColumnDef) (string, bool) {
	return encodeDefault(col, NumericBooleans)
}

// PrimaryKey renders the unnamed primary key clause, e.g. PRIMARY KEY(`id`).
func (d *mysqlDialect) PrimaryKey(table *model.TableDef) (string, error) {
	cols, err := primaryKeyColumns(d, table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PRIMARY KEY(%s)", cols), nil
}

// References renders one inline INDEX + FOREIGN KEY clause per
// relationship. Returns nil when the table's storage engine does not
// enforce referential constraints.
func (d *mysqlDialect) References(table *model.TableDef) ([]string, error) {
	if !d.SupportsConstraints(table.Engine) {
		return nil, nil
	}
	var refs []string
	for _, rel := range table.Relationships {
		if err := rel.Validate(); err != nil {
			return nil, err
		}
		onUpdate, onDelete := rel.Actions()
		refs = append(refs, fmt.Sprintf(
			"INDEX %s (%s), FOREIGN KEY (%s) REFERENCES %s(%s) ON UPDATE %s ON DELETE %s",
			d.QuoteIdent(strutil.ConstraintName(rel.RemoteTable)),
			d.QuoteIdent(rel.LocalColumn),
			d.QuoteIdent(rel.LocalColumn),
			d.QuoteIdent(rel.RemoteTable),
			d.QuoteIdent(rel.TargetColumn()),
			onUpdate, onDelete,
		))
	}
	return refs, nil
}

func (d *mysqlDialect) CreateTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
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
		b.WriteString(strings.Join(refs, ", "))
	}

	b.WriteString(fmt.Sprintf("\n) ENGINE=%s DEFAULT CHARSET=utf8;\n", tableEngine(table.Engine)))

	return prependDrop(d, table, cfg, b.String()), nil
}

func (d *mysqlDialect) DropTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
	return dropStatement(d, table, cfg), nil
}

// integerBase maps a sized integer kind to its lowercased type token.
func integerBase(k model.Kind) string {
	switch k {
	case model.KindSmallInt:
		return "smallint"
	case model.KindBigInt:
		return "bigint"
	default:
		return "int"
	}
}

// sizedType appends a parenthesized display width when one was declared.
func sizedType(base string, width int) string {
	if width > 0 {
		return fmt.Sprintf("%s(%d)", base, width)
	}
	return base
}
