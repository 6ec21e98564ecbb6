package dialect

import (
	"strings"
	"testing"

	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
)

func TestSQLiteColumnTypes(t *testing.T) {
	d := SQLite()

	tests := []struct {
		name string
		col  *model.ColumnDef
		want string
	}{
		{"bool", &model.ColumnDef{Name: "active", Kind: model.KindBool}, "tinyint"},
		{"plain int", &model.ColumnDef{Name: "count", Kind: model.KindInt}, "integer"},
		{"smallint collapses", &model.ColumnDef{Name: "count", Kind: model.KindSmallInt}, "integer"},
		{"bigint collapses", &model.ColumnDef{Name: "count", Kind: model.KindBigInt}, "integer"},
		{"width ignored", &model.ColumnDef{Name: "count", Kind: model.KindInt, Size: 11}, "integer"},
		{"autoincrement ignored", &model.ColumnDef{Name: "id", Kind: model.KindInt, AutoIncrement: true}, "integer"},
		{"decimal stored as text", &model.ColumnDef{Name: "price", Kind: model.KindDecimal, Size: [2]int{10, 2}}, "text"},
		{"unicode", &model.ColumnDef{Name: "email", Kind: model.KindUnicode, Size: 64}, "varchar(64)"},
		{"float", &model.ColumnDef{Name: "ratio", Kind: model.KindFloat}, "real"},
		{"unknown kind falls back to text", &model.ColumnDef{Name: "elapsed", Kind: model.KindTimeDelta}, "text"},
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

func TestSQLiteEnumRendersMembershipCheck(t *testing.T) {
	d := SQLite()
	col := &model.ColumnDef{
		Name: "status",
		Kind: model.KindNativeEnum,
		Enum: map[int]string{1: "open", 2: "closed"},
	}

	got, err := d.EnumType(col)
	if err != nil {
		t.Fatalf("EnumType() error = %v", err)
	}
	want := "text CHECK (status IN ('open','closed'))"
	if got != want {
		t.Errorf("EnumType() = %q, want %q", got, want)
	}
}

func TestSQLiteArrayColumnsRejected(t *testing.T) {
	d := SQLite()
	col := &model.ColumnDef{Name: "squares", Kind: model.KindList, Array: "integer[3][3]"}

	_, err := d.ColumnType(col)
	if !naerr.Is(err, naerr.ErrMissingArrayDef) {
		t.Errorf("error code = %v, want %v", naerr.GetErrorCode(err), naerr.ErrMissingArrayDef)
	}
}

func TestSQLiteCreateTable(t *testing.T) {
	table := &model.TableDef{
		Name: "user",
		Columns: []*model.ColumnDef{
			{Name: "id", Kind: model.KindInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Kind: model.KindUnicode, NotNull: true},
		},
		Relationships: []*model.RelationshipDef{
			{LocalColumn: "org_id", RemoteTable: "org"},
		},
	}

	d := SQLite()
	got, err := d.CreateTable(table, model.DefaultDDLConfig())
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}

	if !strings.HasPrefix(got, "CREATE TABLE user (\n  id integer,\n  email varchar NOT NULL,\n") {
		t.Errorf("unexpected create body:\n%s", got)
	}
	if !strings.Contains(got, "PRIMARY KEY(id)") {
		t.Errorf("missing primary key clause:\n%s", got)
	}
	if !strings.Contains(got, "FOREIGN KEY (org_id) REFERENCES org(id) ON UPDATE RESTRICT ON DELETE RESTRICT") {
		t.Errorf("missing inline foreign key clause:\n%s", got)
	}
	if !strings.HasSuffix(got, ");\n") {
		t.Errorf("missing closing trailer:\n%s", got)
	}
}

func TestSQLiteDropTableIgnoresModifiers(t *testing.T) {
	table := &model.TableDef{Name: "user"}
	d := SQLite()

	got, err := d.DropTable(table, model.DDLConfig{DropIfExists: true, Restrict: true, Cascade: true})
	if err != nil {
		t.Fatalf("DropTable() error = %v", err)
	}
	if got != "DROP TABLE IF EXISTS user" {
		t.Errorf("DropTable() = %q", got)
	}
}
