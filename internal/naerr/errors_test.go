package naerr

import (
	"errors"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		message string
	}{
		{
			name:    "model error",
			code:    ErrModelInvalid,
			message: "model is invalid",
		},
		{
			name:    "generation error",
			code:    ErrMissingPrimaryKey,
			message: "table is missing a primary key",
		},
		{
			name:    "loader error",
			code:    ErrSchemaParse,
			message: "schema file could not be parsed",
		},
		{
			name:    "SQL error",
			code:    ErrSQLExecution,
			message: "SQL statement failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err == nil {
				t.Fatal("expected non-nil error")
			}
			if err.GetCode() != tt.code {
				t.Errorf("code = %v, want %v", err.GetCode(), tt.code)
			}
			if err.GetMessage() != tt.message {
				t.Errorf("message = %v, want %v", err.GetMessage(), tt.message)
			}
			if err.GetCause() != nil {
				t.Error("expected nil cause for New()")
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrNotEnumColumn, "column %s is not an enum column", "status")
	if got := err.GetMessage(); got != "column status is not an enum column" {
		t.Errorf("message = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrSQLConnection, cause, "database unavailable")

	if err.GetCause() != cause {
		t.Errorf("cause = %v, want %v", err.GetCause(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(ErrSQLExecution, nil, "no cause")
	if err.GetCause() != nil {
		t.Error("expected nil cause")
	}
	if err.GetCode() != ErrSQLExecution {
		t.Errorf("code = %v", err.GetCode())
	}
}

// -----------------------------------------------------------------------------
// Formatting Tests
// -----------------------------------------------------------------------------

func TestErrorFormat(t *testing.T) {
	err := New(ErrMissingPrimaryKey, "table is missing a primary key column").
		WithTable("customer")

	got := err.Error()
	if !strings.Contains(got, "[E2001]") {
		t.Errorf("missing code in %q", got)
	}
	if !strings.Contains(got, "table: customer") {
		t.Errorf("missing table context in %q", got)
	}
}

func TestErrorFormatDeterministic(t *testing.T) {
	build := func() string {
		return New(ErrModelInvalid, "bad model").
			With("zeta", 1).
			With("alpha", 2).
			With("mid", 3).
			Error()
	}

	first := build()
	for i := 0; i < 10; i++ {
		if got := build(); got != first {
			t.Fatalf("non-deterministic output:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestWithHelpers(t *testing.T) {
	err := New(ErrMissingArrayDef, "array column needs a definition").
		WithTable("matrix").
		WithColumn("squares").
		WithSQL("CREATE TABLE matrix").
		WithHelp("set array: \"integer[3][3]\" on the column")

	ctx := err.GetContext()
	if ctx["table"] != "matrix" {
		t.Errorf("table = %v", ctx["table"])
	}
	if ctx["column"] != "squares" {
		t.Errorf("column = %v", ctx["column"])
	}
	if helps := err.Helps(); len(helps) != 1 {
		t.Errorf("helps = %v", helps)
	}
}

// -----------------------------------------------------------------------------
// Code Matching Tests
// -----------------------------------------------------------------------------

func TestIsByCode(t *testing.T) {
	err := New(ErrNotEnumColumn, "not an enum")

	if !Is(err, ErrNotEnumColumn) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrMissingPrimaryKey) {
		t.Error("Is should not match a different code")
	}
	if Is(nil, ErrNotEnumColumn) {
		t.Error("Is should not match nil")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrMissingArrayDef, "missing array definition")
	outer := Wrap(ErrModelInvalid, inner, "invalid model")

	// errors.Is walks the chain; the sentinel-style comparison matches by code.
	if !errors.Is(outer, New(ErrModelInvalid, "")) {
		t.Error("should match outer code")
	}
	if !errors.Is(outer, New(ErrMissingArrayDef, "")) {
		t.Error("should match inner code through chain")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q", got)
	}
	if got := GetErrorCode(New(ErrSQLExecution, "x")); got != ErrSQLExecution {
		t.Errorf("GetErrorCode = %q", got)
	}
	if HasCode(errors.New("plain")) {
		t.Error("plain error should not have a code")
	}
}

func TestWrapSQL(t *testing.T) {
	cause := errors.New("syntax error")
	err := WrapSQL(cause, "create table", "CREATE TABLE t")

	if err.GetCode() != ErrSQLExecution {
		t.Errorf("code = %v", err.GetCode())
	}
	if err.GetContext()["sql"] != "CREATE TABLE t" {
		t.Errorf("sql context = %v", err.GetContext()["sql"])
	}
}
