package dialect

import (
	"strings"
	"testing"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
)

// -----------------------------------------------------------------------------
// Column types
// -----------------------------------------------------------------------------

func TestMySQLColumnTypes(t *testing.T) {
	d := MySQL()

	tests := []struct {
		name string
		col  *model.ColumnDef
		want string
	}{
		{"bool", &model.ColumnDef{Name: "active", Kind: model.KindBool}, "tinyint"},
		{"uuid", &model.ColumnDef{Name: "token", Kind: model.KindUUID}, "blob"},
		{"raw bytes", &model.ColumnDef{Name: "payload", Kind: model.KindRawBytes}, "blob"},
		{"pickle", &model.ColumnDef{Name: "blob_col", Kind: model.KindPickle}, "varbinary"},
		{"json", &model.ColumnDef{Name: "meta", Kind: model.KindJSON}, "blob"},
		{"datetime", &model.ColumnDef{Name: "created", Kind: model.KindDateTime}, "datetime"},
		{"date", &model.ColumnDef{Name: "born", Kind: model.KindDate}, "date"},
		{"time", &model.ColumnDef{Name: "at", Kind: model.KindTime}, "time"},
		{"integer-coded enum", &model.ColumnDef{Name: "level", Kind: model.KindEnum, Enum: map[int]string{1: "a"}}, "integer"},
		{"plain int", &model.ColumnDef{Name: "count", Kind: model.KindInt}, "int"},
		{"sized int", &model.ColumnDef{Name: "count", Kind: model.KindInt, Size: 11}, "int(11)"},
		{"smallint", &model.ColumnDef{Name: "count", Kind: model.KindSmallInt}, "smallint"},
		{"bigint unsigned", &model.ColumnDef{Name: "count", Kind: model.KindBigInt, Unsigned: true}, "bigint UNSIGNED"},
		{"autoincrement", &model.ColumnDef{Name: "id", Kind: model.KindInt, AutoIncrement: true}, "int AUTO_INCREMENT"},
		{"sized unsigned autoincrement", &model.ColumnDef{Name: "id", Kind: model.KindInt, Size: 10, Unsigned: true, AutoIncrement: true}, "int(10) UNSIGNED AUTO_INCREMENT"},
		{"unicode", &model.ColumnDef{Name: "email", Kind: model.KindUnicode}, "varchar"},
		{"sized unicode", &model.ColumnDef{Name: "email", Kind: model.KindUnicode, Size: 64}, "varchar(64)"},
		{"float", &model.ColumnDef{Name: "ratio", Kind: model.KindFloat}, "float"},
		{"decimal pair", &model.ColumnDef{Name: "price", Kind: model.KindDecimal, Size: [2]int{10, 2}}, "decimal(10,2)"},
		{"unknown kind falls back to text", &model.ColumnDef{Name: "misc", Kind: model.KindTimeDelta}, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ColumnType(tt.col)
			if err != nil {
				t.Fatalf("ColumnType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ColumnType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMySQLDecimalRequiresSize(t *testing.T) {
	d := MySQL()
	col := &model.ColumnDef{Name: "price", Kind: model.KindDecimal}

	_, err := d.ColumnType(col)
	if err == nil {
		t.Fatal("expected error for decimal without size")
	}
	if !naerr.Is(err, naerr.ErrInvalidDecimalSize) {
		t.Errorf("error code = %v, want %v", naerr.GetErrorCode(err), naerr.ErrInvalidDecimalSize)
	}
}

func TestMySQLArrayColumnsRejected(t *testing.T) {
	d := MySQL()
	col := &model.ColumnDef{Name: "squares", Kind: model.KindList, Array: "integer[3][3]"}

	_, err := d.ColumnType(col)
	if err == nil {
		t.Fatal("expected error for array column on mysql")
	}
	if !naerr.Is(err, naerr.ErrMissingArrayDef) {
		t.Errorf("error code = %v, want %v", naerr.GetErrorCode(err), naerr.ErrMissingArrayDef)
	}
}

// -----------------------------------------------------------------------------
// Enums
// -----------------------------------------------------------------------------

func TestMySQLEnumType(t *testing.T) {
	d := MySQL()
	col := &model.ColumnDef{
		Name: "status",
		Kind: model.KindNativeEnum,
		Enum: map[int]string{1: "a", 2: "b", 3: "c"},
	}

	got, err := d.EnumType(col)
	if err != nil {
		t.Fatalf("EnumType() error = %v", err)
	}
	want := "enum('a','b','c')"
	if got != want {
		t.Errorf("EnumType() = %q, want %q", got, want)
	}
}

func TestMySQLEnumTypeRejectsNonEnum(t *testing.T) {
	d := MySQL()
	col := &model.ColumnDef{Name: "count", Kind: model.KindInt}

	_, err := d.EnumType(col)
	if err == nil {
		t.Fatal("expected error for non-enum column")
	}
	if !naerr.Is(err, naerr.ErrNotEnumColumn) {
		t.Errorf("error code = %v, want %v", naerr.GetErrorCode(err), naerr.ErrNotEnumColumn)
	}
}

// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

func TestMySQLDefaultValue(t *testing.T) {
	d := MySQL()

	tests := []struct {
		name   string
		col    *model.ColumnDef
		want   string
		wantOK bool
	}{
		{"no default", &model.ColumnDef{Name: "a", Kind: model.KindInt}, "", false},
		{"bool true coerces to 1", &model.ColumnDef{Name: "a", Kind: model.KindBool, Default: true, DefaultSet: true}, "1", true},
		{"bool false coerces to 0", &model.ColumnDef{Name: "a", Kind: model.KindBool, Default: false, DefaultSet: true}, "0", true},
		{"datetime quoted", &model.ColumnDef{Name: "a", Kind: model.KindDateTime, Default: "2024-01-01 00:00:00", DefaultSet: true}, "'2024-01-01 00:00:00'", true},
		{"date quoted", &model.ColumnDef{Name: "a", Kind: model.KindDate, Default: "2024-01-01", DefaultSet: true}, "'2024-01-01'", true},
		{"time quoted", &model.ColumnDef{Name: "a", Kind: model.KindTime, Default: "12:00:00", DefaultSet: true}, "'12:00:00'", true},
		{"int natural form", &model.ColumnDef{Name: "a", Kind: model.KindInt, Default: 42, DefaultSet: true}, "42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.DefaultValue(tt.col)
			if ok != tt.wantOK {
				t.Fatalf("DefaultValue() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DefaultValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Primary keys and references
// -----------------------------------------------------------------------------

func TestMySQLPrimaryKey(t *testing.T) {
	d := MySQL()

	t.Run("flagged column", func(t *testing.T) {
		table := &model.TableDef{
			Name: "user",
			Columns: []*model.ColumnDef{
				{Name: "id", Kind: model.KindInt, PrimaryKey: true},
			},
		}
		got, err := d.PrimaryKey(table)
		if err != nil {
			t.Fatalf("PrimaryKey() error = %v", err)
		}
		if got != "PRIMARY KEY(`id`)" {
			t.Errorf("PrimaryKey() = %q", got)
		}
	})

	t.Run("explicit compound primary key", func(t *testing.T) {
		table := &model.TableDef{
			Name: "membership",
			Columns: []*model.ColumnDef{
				{Name: "user_id", Kind: model.KindInt},
				{Name: "group_id", Kind: model.KindInt},
			},
			PrimaryKey: []string{"user_id", "group_id"},
		}
		got, err := d.PrimaryKey(table)
		if err != nil {
			t.Fatalf("PrimaryKey() error = %v", err)
		}
		if got != "PRIMARY KEY(`user_id`, `group_id`)" {
			t.Errorf("PrimaryKey() = %q", got)
		}
	})

	t.Run("missing primary key", func(t *testing.T) {
		table := &model.TableDef{
			Name:    "orphan",
			Columns: []*model.ColumnDef{{Name: "a", Kind: model.KindInt}},
		}
		_, err := d.PrimaryKey(table)
		if !naerr.Is(err, naerr.ErrMissingPrimaryKey) {
			t.Errorf("error code = %v, want %v", naerr.GetErrorCode(err), naerr.ErrMissingPrimaryKey)
		}
	})
}

func TestMySQLReferences(t *testing.T) {
	table := &model.TableDef{
		Name: "address",
		Columns: []*model.ColumnDef{
			{Name: "id", Kind: model.KindInt, PrimaryKey: true},
			{Name: "customer_id", Kind: model.KindInt},
		},
		Relationships: []*model.RelationshipDef{
			{LocalColumn: "customer_id", RemoteTable: "customer"},
		},
	}

	d := MySQL()
	refs, err := d.References(table)
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("References() returned %d fragments, want 1", len(refs))
	}

	want := "INDEX `customer_ind` (`customer_id`), FOREIGN KEY (`customer_id`) " +
		"REFERENCES `customer`(`id`) ON UPDATE RESTRICT ON DELETE RESTRICT"
	if refs[0] != want {
		t.Errorf("References()[0] = %q\nwant %q", refs[0], want)
	}
}

func TestMySQLReferencesSkippedForNonInnoDB(t *testing.T) {
	table := &model.TableDef{
		Name:   "log_entry",
		Engine: "MyISAM",
		Columns: []*model.ColumnDef{
			{Name: "id", Kind: model.KindInt, PrimaryKey: true},
			{Name: "user_id", Kind: model.KindInt},
		},
		Relationships: []*model.RelationshipDef{
			{LocalColumn: "user_id", RemoteTable: "user"},
		},
	}

	d := MySQL()
	refs, err := d.References(table)
	if err != nil {
		t.Fatalf("References() error = %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("References() = %v, want none for MyISAM", refs)
	}

	sql, err := d.CreateTable(table, model.DefaultDDLConfig())
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	if strings.Contains(sql, "FOREIGN KEY") {
		t.Errorf("CreateTable() for MyISAM contains FOREIGN KEY:\n%s", sql)
	}
	if !strings.Contains(sql, "ENGINE=MyISAM") {
		t.Errorf("CreateTable() missing ENGINE=MyISAM:\n%s", sql)
	}
}

// -----------------------------------------------------------------------------
// Statement synthesis
// -----------------------------------------------------------------------------

func TestMySQLCreateTable(t *testing.T) {
	table := &model.TableDef{
		Name: "user",
		Columns: []*model.ColumnDef{
			{Name: "id", Kind: model.KindInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Kind: model.KindUnicode, NotNull: true},
		},
	}

	d := MySQL()
	got, err := d.CreateTable(table, model.DefaultDDLConfig())
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}

	want := "CREATE TABLE `user` (\n" +
		"  `id` int AUTO_INCREMENT,\n" +
		"  `email` varchar NOT NULL,\n" +
		"  PRIMARY KEY(`id`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8;\n"
	if got != want {
		t.Errorf("CreateTable() =\n%s\nwant:\n%s", got, want)
	}
}

func TestMySQLCreateTableWithReferences(t *testing.T) {
	table := &model.TableDef{
		Name: "address",
		Columns: []*model.ColumnDef{
			{Name: "id", Kind: model.KindInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "customer_id", Kind: model.KindInt},
		},
		Relationships: []*model.RelationshipDef{
			{LocalColumn: "customer_id", RemoteTable: "customer", OnDelete: "CASCADE"},
		},
	}

	d := MySQL()
	got, err := d.CreateTable(table, model.DefaultDDLConfig())
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}

	if !strings.Contains(got, "PRIMARY KEY(`id`),\n  INDEX `customer_ind`") {
		t.Errorf("references not emitted after primary key:\n%s", got)
	}
	if !strings.Contains(got, "ON UPDATE RESTRICT ON DELETE CASCADE") {
		t.Errorf("relationship actions not honored:\n%s", got)
	}
}

func TestMySQLCreateTableIfNotExists(t *testing.T) {
	table := &model.TableDef{
		Name:    "user",
		Columns: []*model.ColumnDef{{Name: "id", Kind: model.KindInt, PrimaryKey: true}},
	}

	d := MySQL()
	cfg := model.DDLConfig{CreateIfNotExists: true}
	got, err := d.CreateTable(table, cfg)
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	if !strings.HasPrefix(got, "CREATE TABLE IF NOT EXISTS `user` (") {
		t.Errorf("CreateTable() = %q", got)
	}
}

func TestMySQLDropBeforeCreate(t *testing.T) {
	table := &model.TableDef{
		Name:    "user",
		Columns: []*model.ColumnDef{{Name: "id", Kind: model.KindInt, PrimaryKey: true}},
	}
	d := MySQL()

	t.Run("drop precedes create", func(t *testing.T) {
		cfg := model.DDLConfig{DropBeforeCreate: true, DropIfExists: true}
		got, err := d.CreateTable(table, cfg)
		if err != nil {
			t.Fatalf("CreateTable() error = %v", err)
		}
		if !strings.HasPrefix(got, "DROP TABLE IF EXISTS `user`;\nCREATE TABLE") {
			t.Errorf("CreateTable() = %q", got)
		}
	})

	t.Run("suppressed by create-if-not-exists", func(t *testing.T) {
		cfg := model.DDLConfig{DropBeforeCreate: true, CreateIfNotExists: true}
		got, err := d.CreateTable(table, cfg)
		if err != nil {
			t.Fatalf("CreateTable() error = %v", err)
		}
		if strings.Contains(got, "DROP TABLE") {
			t.Errorf("drop emitted despite create-if-not-exists:\n%s", got)
		}
	})
}

func TestMySQLDropTable(t *testing.T) {
	table := &model.TableDef{Name: "user"}
	d := MySQL()

	tests := []struct {
		name string
		cfg  model.DDLConfig
		want string
	}{
		{"plain", model.DDLConfig{}, "DROP TABLE `user`"},
		{"if exists", model.DDLConfig{DropIfExists: true}, "DROP TABLE IF EXISTS `user`"},
		{"restrict ignored", model.DDLConfig{Restrict: true}, "DROP TABLE `user`"},
		{"cascade ignored", model.DDLConfig{Cascade: true}, "DROP TABLE `user`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.DropTable(table, tt.cfg)
			if err != nil {
				t.Fatalf("DropTable() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DropTable() = %q, want %q", got, tt.want)
			}
		})
	}
}
