// Package apply executes generated DDL scripts against a live database.
package apply

import (
	"context"
	"database/sql"

	"github.com/najadb/naja/internal/dialect"
	"github.com/najadb/naja/internal/model"
	"github.com/najadb/naja/internal/naerr"
)

// Applier runs DDL scripts over a database/sql connection.
// Scripts run inside a single transaction on dialects with
// transactional DDL, statement by statement elsewhere.
type Applier struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// New creates an Applier. Returns nil if db or d is nil.
func New(db *sql.DB, d dialect.Dialect) *Applier {
	if db == nil || d == nil {
		return nil
	}
	return &Applier{db: db, dialect: d}
}

// CreateTables generates and executes the creation script for every
// table, in the given order. Generation errors abort before anything
// is executed.
func (a *Applier) CreateTables(ctx context.Context, tables []*model.TableDef, cfg model.DDLConfig) error {
	var stmts []string
	for _, table := range tables {
		script, err := a.dialect.CreateTable(table, cfg)
		if err != nil {
			return err
		}
		stmts = append(stmts, SplitStatements(script)...)
	}
	return a.exec(ctx, stmts)
}

// DropTables generates and executes the drop statement for every table,
// in reverse declaration order so dependent tables drop first.
func (a *Applier) DropTables(ctx context.Context, tables []*model.TableDef, cfg model.DDLConfig) error {
	var stmts []string
	for i := len(tables) - 1; i >= 0; i-- {
		stmt, err := a.dialect.DropTable(tables[i], cfg)
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}
	return a.exec(ctx, stmts)
}

// ExecScript splits a multi-statement SQL script and executes it.
func (a *Applier) ExecScript(ctx context.Context, script string) error {
	return a.exec(ctx, SplitStatements(script))
}

func (a *Applier) exec(ctx context.Context, stmts []string) error {
	if len(stmts) == 0 {
		return nil
	}
	if a.dialect.SupportsTransactionalDDL() {
		return a.execInTransaction(ctx, stmts)
	}
	for _, stmt := range stmts {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return naerr.WrapSQL(err, "exec", stmt)
		}
	}
	return nil
}

// execInTransaction runs every statement inside one transaction:
// all statements succeed or none apply.
func (a *Applier) execInTransaction(ctx context.Context, stmts []string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return naerr.Wrap(naerr.ErrSQLConnection, err, "cannot begin transaction")
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return naerr.WrapSQL(err, "exec", stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return naerr.Wrap(naerr.ErrSQLExecution, err, "cannot commit transaction")
	}
	committed = true
	return nil
}
