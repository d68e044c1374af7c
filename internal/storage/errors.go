package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrFormFieldNotFound   = errors.New("form field not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already exists")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintKind names the kind of integrity rule a write broke.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintNotNull    ConstraintKind = "not null"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintForeignKey ConstraintKind = "foreign key"
	ConstraintPrimaryKey ConstraintKind = "primary key"
	ConstraintOther      ConstraintKind = "other"
)

// ConstraintError is a driver-independent description of a failed
// integrity constraint. It matches ErrConstraintViolation under errors.Is.
type ConstraintError struct {
	Kind   ConstraintKind
	Table  string
	Column string
}

func (e *ConstraintError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s constraint violation", e.Kind)
	}
	return fmt.Sprintf("%s constraint violation on %s.%s", e.Kind, e.Table, e.Column)
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// On reports whether the violation is of kind on table.column.
func (e *ConstraintError) On(kind ConstraintKind, table, column string) bool {
	return e.Kind == kind && e.Table == table && e.Column == column
}

// asConstraintError converts a SQLite constraint failure into a
// ConstraintError. Any other error is returned as nil.
func asConstraintError(err error) *ConstraintError {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return nil
	}

	ce := &ConstraintError{Kind: ConstraintOther}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		ce.Kind = ConstraintUnique
	case sqlite3.ErrConstraintNotNull:
		ce.Kind = ConstraintNotNull
	case sqlite3.ErrConstraintCheck:
		ce.Kind = ConstraintCheck
	case sqlite3.ErrConstraintForeignKey:
		ce.Kind = ConstraintForeignKey
	case sqlite3.ErrConstraintPrimaryKey:
		ce.Kind = ConstraintPrimaryKey
	}

	// messages look like "UNIQUE constraint failed: users.email"
	msg := sqliteErr.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		target := strings.TrimSpace(msg[i+2:])
		// composite constraints list several columns; keep the first
		target, _, _ = strings.Cut(target, ",")
		if table, column, ok := strings.Cut(target, "."); ok {
			ce.Table, ce.Column = table, column
		}
	}
	return ce
}
