package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/news-api/internal/apperror"
)

// PostgreSQL SQLSTATE codes the store can raise for client-caused problems.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgInvalidText         = "22P02"
	pgNumericOutOfRange   = "22003"
	pgUndefinedColumn     = "42703"
	pgSyntaxError         = "42601"
	pgQueryCanceled       = "57014"
)

type storeKind int

const (
	kindUnknown storeKind = iota
	kindForeignKey
	kindUnique
	kindInvalid
	kindCanceled
)

func classifyPostgres(e *pq.Error) storeKind {
	switch string(e.Code) {
	case pgForeignKeyViolation:
		return kindForeignKey
	case pgUniqueViolation:
		return kindUnique
	case pgNotNullViolation, pgInvalidText, pgNumericOutOfRange, pgUndefinedColumn, pgSyntaxError:
		return kindInvalid
	case pgQueryCanceled:
		return kindCanceled
	}
	return kindUnknown
}

func classifySQLite(e *sqlite.Error) storeKind {
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return kindForeignKey
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return kindUnique
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_MISMATCH:
		return kindInvalid
	}

	// Primary result codes, in case extended codes were not reported.
	msg := e.Error()
	switch e.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return kindForeignKey
		case strings.Contains(msg, "UNIQUE"):
			return kindUnique
		case strings.Contains(msg, "NOT NULL"):
			return kindInvalid
		}
	case sqlite3.SQLITE_ERROR:
		if strings.Contains(msg, "no such column") || strings.Contains(msg, "syntax error") {
			return kindInvalid
		}
	case sqlite3.SQLITE_INTERRUPT:
		return kindCanceled
	}
	return kindUnknown
}

// storeError maps a driver error onto the application taxonomy. Recognised
// constraint failures become *apperror.AppError; everything else is wrapped
// with op and treated as an internal error by the HTTP layer.
func storeError(op string, err error) error {
	kind := kindUnknown

	var pqErr *pq.Error
	var liteErr *sqlite.Error
	switch {
	case errors.As(err, &pqErr):
		kind = classifyPostgres(pqErr)
	case errors.As(err, &liteErr):
		kind = classifySQLite(liteErr)
	}

	switch kind {
	case kindForeignKey:
		return &apperror.AppError{Err: apperror.ErrNotFound, Message: "Not Found", Cause: err}
	case kindUnique:
		return &apperror.AppError{Err: apperror.ErrConflict, Message: "Conflict", Cause: err}
	case kindInvalid:
		return &apperror.AppError{Err: apperror.ErrValidation, Message: apperror.InvalidInputMessage, Cause: err}
	case kindCanceled:
		return fmt.Errorf("sqldb: %s: %w: %v", op, context.DeadlineExceeded, err)
	}
	return fmt.Errorf("sqldb: %s: %w", op, err)
}

func notFound(resource string, id int64) error {
	return apperror.NotFound(resource, strconv.FormatInt(id, 10))
}
