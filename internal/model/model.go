// Package model defines the descriptors fed to the DDL generators:
// tables, columns, relationships, and the generation configuration.
// Descriptors are built once by the model layer (or the YAML loader)
// and are read-only inputs to the dialect builders.
package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/najadb/naja/internal/naerr"
)

// Validation messages shared across TableDef, ColumnDef, and RelationshipDef.
const (
	msgTableNameRequired  = "table name is required"
	msgColumnNameRequired = "column name is required"
	msgTableNeedsColumn   = "table must have at least one column"
	msgRelNeedsColumn     = "relationship must name a local column"
	msgRelNeedsTable      = "relationship must reference a table"
	msgEnumNeedsValues    = "enum column must carry a non-empty value mapping"
)

// validIdentifierPattern matches safe SQL identifiers (lowercase snake_case).
var validIdentifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidateIdentifier checks that a name is a safe SQL identifier (lowercase snake_case).
func ValidateIdentifier(name string) error {
	if !validIdentifierPattern.MatchString(name) {
		return naerr.New(naerr.ErrModelInvalid,
			fmt.Sprintf("invalid identifier %q; must match [a-z_][a-z0-9_]*", name))
	}
	return nil
}

// -----------------------------------------------------------------------------
// Kind - closed set of column kinds
// -----------------------------------------------------------------------------

// Kind is the semantic kind of a column. The set is closed: translators
// switch over it exhaustively, and anything outside the set falls back to
// the dialect's generic text type.
type Kind int

const (
	// KindUnknown is the zero value; translators map it to the text fallback.
	KindUnknown Kind = iota
	KindBool
	KindSmallInt
	KindInt
	KindBigInt
	KindFloat
	KindDecimal
	KindUnicode
	KindRawBytes
	KindPickle
	KindJSON
	KindDateTime
	KindDate
	KindTime
	KindTimeDelta
	KindUUID
	// KindEnum is an integer-coded enumeration (stored as an integer column).
	KindEnum
	// KindNativeEnum is backed by the database's built-in enumerated type.
	KindNativeEnum
	// KindList is a backend array column (PostgreSQL only).
	KindList
)

// kindNames maps kinds to their canonical schema-file spelling.
var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindBool:       "bool",
	KindSmallInt:   "smallint",
	KindInt:        "int",
	KindBigInt:     "bigint",
	KindFloat:      "float",
	KindDecimal:    "decimal",
	KindUnicode:    "unicode",
	KindRawBytes:   "raw_bytes",
	KindPickle:     "pickle",
	KindJSON:       "json",
	KindDateTime:   "datetime",
	KindDate:       "date",
	KindTime:       "time",
	KindTimeDelta:  "timedelta",
	KindUUID:       "uuid",
	KindEnum:       "enum",
	KindNativeEnum: "native_enum",
	KindList:       "list",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// kindAliases maps schema-file spellings (including aliases) to kinds.
var kindAliases = map[string]Kind{
	"bool":        KindBool,
	"boolean":     KindBool,
	"smallint":    KindSmallInt,
	"int":         KindInt,
	"integer":     KindInt,
	"bigint":      KindBigInt,
	"float":       KindFloat,
	"decimal":     KindDecimal,
	"unicode":     KindUnicode,
	"string":      KindUnicode,
	"raw_bytes":   KindRawBytes,
	"rawbytes":    KindRawBytes,
	"bytes":       KindRawBytes,
	"pickle":      KindPickle,
	"json":        KindJSON,
	"datetime":    KindDateTime,
	"date_time":   KindDateTime,
	"date":        KindDate,
	"time":        KindTime,
	"timedelta":   KindTimeDelta,
	"interval":    KindTimeDelta,
	"uuid":        KindUUID,
	"enum":        KindEnum,
	"native_enum": KindNativeEnum,
	"nativeenum":  KindNativeEnum,
	"list":        KindList,
	"array":       KindList,
}

// ParseKind resolves a schema-file kind spelling to a Kind.
// The second return is false when the spelling is not recognized.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// IsInteger reports whether the kind is one of the sized integer kinds.
func (k Kind) IsInteger() bool {
	return k == KindSmallInt || k == KindInt || k == KindBigInt
}

// IsTemporal reports whether default literals of this kind are quoted.
func (k Kind) IsTemporal() bool {
	return k == KindDateTime || k == KindDate || k == KindTime
}

// -----------------------------------------------------------------------------
// ColumnDef - column descriptor
// -----------------------------------------------------------------------------

// ColumnDef describes a single column. Immutable once built.
type ColumnDef struct {
	Name string // Column name (snake_case)
	Kind Kind   // Semantic kind

	// Nullability and key flags
	NotNull    bool // Emit NOT NULL; columns allow NULL unless set
	PrimaryKey bool // Column is (part of) the primary key

	// Integer parameters
	Size          any  // Display width (int) or decimal size in one of its encodings
	Unsigned      bool // UNSIGNED marker (ignored by dialects without unsigned integers)
	AutoIncrement bool // Autoincrement marker (serial family on PostgreSQL)

	// Array parameter: backend syntax for KindList columns,
	// e.g. "integer[3][3]" or "integer ARRAY". Required on array backends.
	Array string

	// Enum value mapping, ordered by ascending numeric key starting at 1.
	Enum map[int]string

	// Default value. DefaultSet distinguishes "no default" from a zero default.
	Default    any
	DefaultSet bool
}

// Validate checks that the column definition is well-formed.
func (c *ColumnDef) Validate() error {
	if c.Name == "" {
		return naerr.New(naerr.ErrModelInvalid, msgColumnNameRequired)
	}
	if err := ValidateIdentifier(c.Name); err != nil {
		return err
	}
	if (c.Kind == KindEnum || c.Kind == KindNativeEnum) && len(c.Enum) == 0 {
		return naerr.New(naerr.ErrModelInvalid, msgEnumNeedsValues).
			WithColumn(c.Name)
	}
	return nil
}

// DisplayWidth returns the integer display width for sized integer columns.
// Returns 0 when no width was specified or the size is not an integer.
func (c *ColumnDef) DisplayWidth() int {
	switch v := c.Size.(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

// EnumLabels returns the enum labels ordered by ascending numeric key
// starting at 1. Missing keys render as empty labels, matching the
// mapping's declared 1..N invariant.
func (c *ColumnDef) EnumLabels() []string {
	if len(c.Enum) == 0 {
		return nil
	}
	labels := make([]string, 0, len(c.Enum))
	for i := 1; i <= len(c.Enum); i++ {
		labels = append(labels, c.Enum[i])
	}
	return labels
}

// HasDefault reports whether a default value is configured.
func (c *ColumnDef) HasDefault() bool {
	return c.DefaultSet
}

// -----------------------------------------------------------------------------
// RelationshipDef - many-to-one foreign-key link
// -----------------------------------------------------------------------------

// DefaultFKAction is applied when a relationship leaves an action unset.
const DefaultFKAction = "RESTRICT"

// ValidFKActions is the set of valid ON DELETE / ON UPDATE actions.
var ValidFKActions = map[string]bool{
	"":            true, // empty = default action (RESTRICT)
	"CASCADE":     true,
	"SET NULL":    true,
	"SET DEFAULT": true,
	"RESTRICT":    true,
	"NO ACTION":   true,
}

// NormalizeFKAction normalizes and validates an FK action string.
// Returns the uppercased action, or DefaultFKAction for the empty string.
func NormalizeFKAction(action string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(action))
	if !ValidFKActions[upper] {
		return "", naerr.New(naerr.ErrModelInvalid,
			fmt.Sprintf("invalid foreign key action %q; must be one of: CASCADE, SET NULL, SET DEFAULT, RESTRICT, NO ACTION", action))
	}
	if upper == "" {
		return DefaultFKAction, nil
	}
	return upper, nil
}

// RelationshipDef describes a many-to-one link from a local column to a
// remote table's key column. Only the local (many) side generates a
// foreign key; the remote side's inverse collection has no DDL form.
type RelationshipDef struct {
	LocalColumn  string // Local foreign-key column
	RemoteTable  string // Referenced table name
	RemoteColumn string // Referenced key column (default: "id")
	OnUpdate     string // CASCADE, SET NULL, SET DEFAULT, RESTRICT, NO ACTION
	OnDelete     string // CASCADE, SET NULL, SET DEFAULT, RESTRICT, NO ACTION
}

// TargetColumn returns the referenced column, defaulting to "id".
func (r *RelationshipDef) TargetColumn() string {
	if r.RemoteColumn != "" {
		return r.RemoteColumn
	}
	return "id"
}

// Actions returns the normalized (on_update, on_delete) pair,
// with RESTRICT substituted for unset actions.
func (r *RelationshipDef) Actions() (onUpdate, onDelete string) {
	onUpdate = strings.ToUpper(strings.TrimSpace(r.OnUpdate))
	if onUpdate == "" {
		onUpdate = DefaultFKAction
	}
	onDelete = strings.ToUpper(strings.TrimSpace(r.OnDelete))
	if onDelete == "" {
		onDelete = DefaultFKAction
	}
	return onUpdate, onDelete
}

// Validate checks that the relationship is well-formed.
func (r *RelationshipDef) Validate() error {
	if r.LocalColumn == "" {
		return naerr.New(naerr.ErrModelInvalid, msgRelNeedsColumn)
	}
	if err := ValidateIdentifier(r.LocalColumn); err != nil {
		return err
	}
	if r.RemoteTable == "" {
		return naerr.New(naerr.ErrModelInvalid, msgRelNeedsTable)
	}
	if err := ValidateIdentifier(r.RemoteTable); err != nil {
		return err
	}
	if r.RemoteColumn != "" {
		if err := ValidateIdentifier(r.RemoteColumn); err != nil {
			return err
		}
	}
	if _, err := NormalizeFKAction(r.OnUpdate); err != nil {
		return err
	}
	if _, err := NormalizeFKAction(r.OnDelete); err != nil {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// TableDef - table descriptor
// -----------------------------------------------------------------------------

// TableDef describes a table: ordered columns, primary-key specification,
// storage engine, and relationships. Column order is significant and is
// preserved in the generated statement.
type TableDef struct {
	Name string // Table name (snake_case)

	// Columns in declaration order.
	Columns []*ColumnDef

	// PrimaryKey is the explicit compound-key specification. When empty,
	// the primary key is the first column flagged PrimaryKey.
	PrimaryKey []string

	// Engine is the storage engine (MySQL only; default InnoDB).
	// Engines other than InnoDB do not support referential constraints.
	Engine string

	// Relationships in declaration order.
	Relationships []*RelationshipDef
}

// GetColumn returns the column with the given name, or nil if not found.
func (t *TableDef) GetColumn(name string) *ColumnDef {
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// HasColumn returns true if the table has a column with the given name.
func (t *TableDef) HasColumn(name string) bool {
	return t.GetColumn(name) != nil
}

// ResolvePrimaryKey returns the ordered primary-key column names:
// the explicit compound specification when one is declared, otherwise the
// first column flagged PrimaryKey. Fails with ErrMissingPrimaryKey when
// neither exists.
func (t *TableDef) ResolvePrimaryKey() ([]string, error) {
	if len(t.PrimaryKey) > 0 {
		return t.PrimaryKey, nil
	}
	for _, col := range t.Columns {
		if col.PrimaryKey {
			return []string{col.Name}, nil
		}
	}
	return nil, naerr.Newf(naerr.ErrMissingPrimaryKey,
		"model %s is missing a primary key column", t.Name).
		WithTable(t.Name)
}

// checkDuplicateColumns returns an error if any column name appears more than once.
func (t *TableDef) checkDuplicateColumns() error {
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		if seen[col.Name] {
			return naerr.New(naerr.ErrModelDuplicate, "duplicate column name").
				WithTable(t.Name).
				WithColumn(col.Name)
		}
		seen[col.Name] = true
	}
	return nil
}

// Validate checks that the table definition is well-formed.
func (t *TableDef) Validate() error {
	if t.Name == "" {
		return naerr.New(naerr.ErrModelInvalid, msgTableNameRequired)
	}
	if err := ValidateIdentifier(t.Name); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return naerr.New(naerr.ErrModelInvalid, msgTableNeedsColumn).
			WithTable(t.Name)
	}
	if err := t.checkDuplicateColumns(); err != nil {
		return err
	}
	for _, col := range t.Columns {
		if err := col.Validate(); err != nil {
			return naerr.Wrap(naerr.ErrModelInvalid, err, "invalid column").
				WithTable(t.Name).
				WithColumn(col.Name)
		}
	}
	for _, name := range t.PrimaryKey {
		if !t.HasColumn(name) {
			return naerr.New(naerr.ErrModelInvalid, "primary key names an unknown column").
				WithTable(t.Name).
				WithColumn(name)
		}
	}
	for _, rel := range t.Relationships {
		if err := rel.Validate(); err != nil {
			return naerr.Wrap(naerr.ErrModelInvalid, err, "invalid relationship").
				WithTable(t.Name)
		}
		if !t.HasColumn(rel.LocalColumn) {
			return naerr.New(naerr.ErrModelInvalid, "relationship names an unknown local column").
				WithTable(t.Name).
				WithColumn(rel.LocalColumn)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// DDLConfig - generation configuration
// -----------------------------------------------------------------------------

// DDLConfig controls statement shape. It is read-only during generation and
// passed explicitly to builder entry points; no component mutates it.
type DDLConfig struct {
	// CreateIfNotExists emits CREATE TABLE IF NOT EXISTS.
	CreateIfNotExists bool

	// DropIfExists emits DROP TABLE IF EXISTS.
	DropIfExists bool

	// DropBeforeCreate prefixes the create statement with a drop.
	// Ignored when CreateIfNotExists is set.
	DropBeforeCreate bool

	// Restrict and Cascade qualify DROP TABLE on dialects that support
	// the modifiers (PostgreSQL).
	Restrict bool
	Cascade  bool
}

// DefaultDDLConfig returns the default generation configuration:
// plain creates and restricted drops.
func DefaultDDLConfig() DDLConfig {
	return DDLConfig{Restrict: true}
}
