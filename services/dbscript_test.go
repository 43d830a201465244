package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type stmtKind int

const (
	stmtQuery stmtKind = iota
	stmtExec
)

// sqlStep is one expected statement. A nil args slice skips argument
// matching, which keeps steps carrying timestamps from being brittle.
type sqlStep struct {
	kind    stmtKind
	pattern *regexp.Regexp
	args    []driver.Value
	columns []string
	rows    [][]driver.Value
	err     error
	result  driver.Result
}

type sqlScript struct {
	mu    sync.Mutex
	steps []*sqlStep
}

func (s *sqlScript) take(kind stmtKind, query string, args []driver.NamedValue) (*sqlStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) == 0 {
		return nil, fmt.Errorf("unexpected statement: %s", query)
	}
	step := s.steps[0]
	if step.kind != kind {
		return nil, fmt.Errorf("unexpected kind for %s: got %v want %v", query, kind, step.kind)
	}
	if !step.pattern.MatchString(query) {
		return nil, fmt.Errorf("unexpected statement: %s", query)
	}
	if step.args != nil {
		if len(step.args) != len(args) {
			return nil, fmt.Errorf("unexpected arg count for %s: got %d want %d", query, len(args), len(step.args))
		}
		for i := range args {
			if args[i].Value != step.args[i] {
				return nil, fmt.Errorf("unexpected arg %d for %s: got %v want %v", i, query, args[i].Value, step.args[i])
			}
		}
	}
	s.steps = s.steps[1:]
	return step, nil
}

func (s *sqlScript) expectationsMet() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) != 0 {
		return fmt.Errorf("unmet expectations: %d", len(s.steps))
	}
	return nil
}

type scriptDriver struct {
	script *sqlScript
}

func (d *scriptDriver) Open(string) (driver.Conn, error) {
	return &scriptConn{script: d.script}, nil
}

type scriptConn struct {
	script *sqlScript
}

func (c *scriptConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *scriptConn) Close() error { return nil }

// Begin hands out a no-op transaction; commits and rollbacks are driver
// calls, not statements, so they never consume a step.
func (c *scriptConn) Begin() (driver.Tx, error) {
	return scriptTx{}, nil
}

type scriptTx struct{}

func (scriptTx) Commit() error   { return nil }
func (scriptTx) Rollback() error { return nil }

func (c *scriptConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.script.take(stmtQuery, query, args)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if step.err != nil {
		return nil, step.err
	}
	return &scriptRows{columns: step.columns, rows: step.rows}, nil
}

func (c *scriptConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.script.take(stmtExec, query, args)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	if step.result != nil {
		return step.result, nil
	}
	return execOutcome{}, nil
}

type execOutcome struct {
	insertID int64
	affected int64
}

func (r execOutcome) LastInsertId() (int64, error) { return r.insertID, nil }

func (r execOutcome) RowsAffected() (int64, error) { return r.affected, nil }

type scriptRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *scriptRows) Columns() []string { return r.columns }

func (r *scriptRows) Close() error { return nil }

func (r *scriptRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.idx]
	for i := range dest {
		dest[i] = nil
	}
	for i := range row {
		dest[i] = row[i]
	}
	r.idx++
	return nil
}

func openScriptedDB(t *testing.T, steps []*sqlStep) (*gorm.DB, *sqlScript, func()) {
	t.Helper()
	script := &sqlScript{steps: steps}
	driverName := fmt.Sprintf("sqlscript_%d", time.Now().UnixNano())
	sql.Register(driverName, &scriptDriver{script: script})

	sqlDB, err := sql.Open(driverName, "")
	if err != nil {
		t.Fatalf("failed to open sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create gorm db: %v", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return gormDB, script, cleanup
}
