// Package loader reads YAML model files into table descriptors.
//
// Each file describes one table: a model name (underscored into the
// table name unless an explicit table name is given), ordered column
// specs, and optional relationships. Loaded descriptors are validated
// before they are handed to the generation layer.
package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
	"github.com/najadb/naja/internal/strutil"
)

// schemaFile is the YAML shape of a model file.
type schemaFile struct {
	Model         string        `yaml:"model"`
	Table         string        `yaml:"table"`
	Engine        string        `yaml:"engine"`
	PrimaryKey    []string      `yaml:"primary_key"`
	Columns       []columnSpec  `yaml:"columns"`
	Relationships []relSpec     `yaml:"relationships"`
}

type columnSpec struct {
	Name          string         `yaml:"name"`
	Kind          string         `yaml:"kind"`
	NotNull       bool           `yaml:"not_null"`
	Primary       bool           `yaml:"primary"`
	Size          any            `yaml:"size"`
	Unsigned      bool           `yaml:"unsigned"`
	AutoIncrement bool           `yaml:"auto_increment"`
	Array         string         `yaml:"array"`
	Enum          map[int]string `yaml:"enum"`
	Default       yaml.Node      `yaml:"default"`
}

type relSpec struct {
	Column       string `yaml:"column"`
	Table        string `yaml:"table"`
	RemoteColumn string `yaml:"remote_column"`
	OnUpdate     string `yaml:"on_update"`
	OnDelete     string `yaml:"on_delete"`
}

// LoadDir loads every .yaml/.yml file in dir, in lexical order.
// Duplicate table names across files are rejected.
func LoadDir(dir string) ([]*model.TableDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, naerr.Wrap(naerr.ErrSchemaRead, err, "cannot read schema directory").
			WithFile(dir)
	}

	var tables []*model.TableDef
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		table, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[table.Name]; ok {
			return nil, naerr.Newf(naerr.ErrModelDuplicate,
				"table %q is defined in both %s and %s", table.Name, prev, path).
				WithTable(table.Name)
		}
		seen[table.Name] = path
		tables = append(tables, table)
	}
	return tables, nil
}

func isSchemaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFile loads a single YAML model file.
func LoadFile(path string) (*model.TableDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, naerr.Wrap(naerr.ErrSchemaRead, err, "cannot read schema file").
			WithFile(path)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, tagFile(err, path)
	}
	return table, nil
}

// Parse decodes one YAML model document into a validated table descriptor.
func Parse(data []byte) (*model.TableDef, error) {
	var spec schemaFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, naerr.Wrap(naerr.ErrSchemaParse, err, "invalid schema file")
	}

	name, err := tableName(&spec)
	if err != nil {
		return nil, err
	}

	table := &model.TableDef{
		Name:       name,
		Engine:     spec.Engine,
		PrimaryKey: spec.PrimaryKey,
	}

	for _, cs := range spec.Columns {
		col, err := buildColumn(cs)
		if err != nil {
			return nil, tagTable(err, name)
		}
		table.Columns = append(table.Columns, col)
	}

	for _, rs := range spec.Relationships {
		table.Relationships = append(table.Relationships, buildRelationship(rs))
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// tableName resolves the table name: an explicit table wins, otherwise
// the model name is underscored (User -> user, OrderItem -> order_item).
func tableName(spec *schemaFile) (string, error) {
	if spec.Table != "" {
		return spec.Table, nil
	}
	if spec.Model != "" {
		return inflect.Underscore(spec.Model), nil
	}
	return "", naerr.New(naerr.ErrSchemaParse, "schema file names neither a model nor a table")
}

func buildColumn(cs columnSpec) (*model.ColumnDef, error) {
	kind, ok := model.ParseKind(cs.Kind)
	if !ok {
		return nil, naerr.Newf(naerr.ErrUnsupportedKind, "unknown column kind %q", cs.Kind).
			WithColumn(cs.Name).
			WithHelp("valid kinds: bool, smallint, int, bigint, float, decimal, unicode, raw_bytes, pickle, json, datetime, date, time, timedelta, uuid, enum, native_enum, list")
	}

	col := &model.ColumnDef{
		Name:          cs.Name,
		Kind:          kind,
		NotNull:       cs.NotNull,
		PrimaryKey:    cs.Primary,
		Size:          cs.Size,
		Unsigned:      cs.Unsigned,
		AutoIncrement: cs.AutoIncrement,
		Array:         cs.Array,
		Enum:          cs.Enum,
	}

	if !cs.Default.IsZero() {
		var v any
		if err := cs.Default.Decode(&v); err != nil {
			return nil, naerr.Wrap(naerr.ErrSchemaParse, err, "invalid default value").
				WithColumn(cs.Name)
		}
		col.Default = v
		col.DefaultSet = true
	}

	return col, nil
}

// buildRelationship fills in conventional names: the local column
// defaults to <remote>_id, the remote column to the remote primary key.
func buildRelationship(rs relSpec) *model.RelationshipDef {
	local := rs.Column
	if local == "" {
		local = strutil.FKColumn(rs.Table)
	}
	return &model.RelationshipDef{
		LocalColumn:  local,
		RemoteTable:  rs.Table,
		RemoteColumn: rs.RemoteColumn,
		OnUpdate:     rs.OnUpdate,
		OnDelete:     rs.OnDelete,
	}
}

func tagFile(err error, path string) error {
	var ne *naerr.Error
	if errors.As(err, &ne) {
		return ne.WithFile(path)
	}
	return err
}

func tagTable(err error, table string) error {
	var ne *naerr.Error
	if errors.As(err, &ne) {
		return ne.WithTable(table)
	}
	return err
}
