package dialect

import (
	"fmt"
	"strings"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
	"github.com/najadb/naja/internal/sqlgen"
	"github.com/najadb/naja/internal/strutil"
)

// postgresDialect implements Dialect for PostgreSQL.
//
// Enum columns require a named CREATE TYPE declaration emitted before
// the table statement, autoincrement is expressed through the serial
// type family, foreign keys are standalone ALTER TABLE statements
// appended after table creation, and the primary key is a named
// constraint (<table>_pkey).
type postgresDialect struct {
	types typeMap
}

// Postgres returns the PostgreSQL dialect.
func Postgres() Dialect {
	return &postgresDialect{
		types: typeMap{
			model.KindBool:      "bool",
			model.KindUUID:      "uuid",
			model.KindRawBytes:  "bytea",
			model.KindPickle:    "bytea",
			model.KindJSON:      "json",
			model.KindDateTime:  "timestamp",
			model.KindDate:      "date",
			model.KindTime:      "time",
			model.KindTimeDelta: "interval",
			model.KindEnum:      "integer",
		},
	}
}

func (d *postgresDialect) Name() string { return "postgres" }

func (d *postgresDialect) QuoteIdent(name string) string {
	return sqlgen.QuoteIdent(sqlgen.Postgres, name)
}

func (d *postgresDialect) SupportsConstraints(engine string) bool { return true }

func (d *postgresDialect) SupportsArrays() bool { return true }

func (d *postgresDialect) SupportsDropModifiers() bool { return true }

func (d *postgresDialect) SupportsTransactionalDDL() bool { return true }

func (d *postgresDialect) ColumnType(col *model.ColumnDef) (string, error) {
	switch {
	case col.Kind.IsInteger():
		return d.intType(col), nil
	case col.Kind == model.KindDecimal:
		return d.decimalType(col)
	case col.Kind == model.KindUnicode:
		return sizedType("varchar", col.DisplayWidth()), nil
	case col.Kind == model.KindFloat:
		return "real", nil
	case col.Kind == model.KindNativeEnum:
		return enumTypeName(col), nil
	case col.Kind == model.KindList:
		return d.arrayType(col)
	default:
		return d.types.lookup(col.Kind, "text"), nil
	}
}

// intType renders an integer type token. Display width and the unsigned
// marker are silently ignored; autoincrement substitutes the serial
// family type matching the declared integer width.
func (d *postgresDialect) intType(col *model.ColumnDef) string {
	if col.AutoIncrement {
		switch col.Kind {
		case model.KindSmallInt:
			return "smallserial"
		case model.KindBigInt:
			return "bigserial"
		default:
			return "serial"
		}
	}
	return integerBase(col.Kind)
}

// decimalType renders decimal(p,s) when a size was declared, or the
// bare decimal type when none was.
func (d *postgresDialect) decimalType(col *model.ColumnDef) (string, error) {
	if col.Size == nil {
		return "decimal", nil
	}
	size, err := model.ParseDecimalSize(col.Size)
	if err != nil {
		return "", tagColumn(err, col.Name)
	}
	return fmt.Sprintf("decimal(%s)", size), nil
}

// arrayType returns the explicit array syntax declared on the column,
// e.g. "integer[3][3]" or "integer ARRAY".
func (d *postgresDialect) arrayType(col *model.ColumnDef) (string, error) {
	if col.Array == "" {
		return "", naerr.New(naerr.ErrMissingArrayDef,
			"array column is missing its array syntax definition").
			WithColumn(col.Name).
			WithHelp(`declare the array shape, e.g. "integer[3][3]" or "integer ARRAY"`)
	}
	return col.Array, nil
}

// EnumType renders the standalone enum type declaration emitted before
// the table statement, e.g. CREATE TYPE enum_status AS ENUM ('a','b');
func (d *postgresDialect) EnumType(col *model.ColumnDef) (string, error) {
	if err := requireNativeEnum(col); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);\n",
		enumTypeName(col), enumLabels(col)), nil
}

// enumTypeName is the declared type name referenced in the column slot.
func enumTypeName(col *model.ColumnDef) string {
	return strutil.EnumTypeName(col.Name)
}

func (d *postgresDialect) DefaultValue(col *model.ColumnDef) (string, bool) {
	return encodeDefault(col, PostgresBooleans)
}

// PrimaryKey renders the named constraint form,
// e.g. CONSTRAINT user_pkey PRIMARY KEY(id).
func (d *postgresDialect) PrimaryKey(table *model.TableDef) (string, error) {
	cols, err := primaryKeyColumns(d, table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CONSTRAINT %s PRIMARY KEY(%s)", strutil.PrimaryKeyName(table.Name), cols), nil
}

// References renders one standalone ALTER TABLE ... ADD CONSTRAINT
// statement per relationship, emitted after the table statement.
func (d *postgresDialect) References(table *model.TableDef) ([]string, error) {
	var refs []string
	for _, rel := range table.Relationships {
		if err := rel.Validate(); err != nil {
			return nil, err
		}
		onUpdate, onDelete := rel.Actions()
		refs = append(refs, fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s) ON UPDATE %s ON DELETE %s;\n",
			d.QuoteIdent(table.Name),
			strutil.ConstraintName(rel.RemoteTable),
			d.QuoteIdent(rel.LocalColumn),
			d.QuoteIdent(rel.RemoteTable),
			d.QuoteIdent(rel.TargetColumn()),
			onUpdate, onDelete,
		))
	}
	return refs, nil
}

func (d *postgresDialect) CreateTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
	var enums []string
	var b strings.Builder
	b.WriteString(createHeader(d, table, cfg))

	for _, col := range table.Columns {
		if col.Kind == model.KindNativeEnum {
			decl, err := d.EnumType(col)
			if err != nil {
				return "", tagTable(err, table.Name)
			}
			enums = append(enums, decl)
		}
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
	b.WriteString("\n);\n")

	query := strings.Join(enums, "") + b.String()

	refs, err := d.References(table)
	if err != nil {
		return "", err
	}
	query += strings.Join(refs, "")

	return prependDrop(d, table, cfg, query), nil
}

func (d *postgresDialect) DropTable(table *model.TableDef, cfg model.DDLConfig) (string, error) {
	return dropStatement(d, table, cfg), nil
}
