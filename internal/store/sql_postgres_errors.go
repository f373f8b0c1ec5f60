package store

import (
	"github.com/jackc/pgerrcode"
)

// ErrorClassification tells whether a failed statement may succeed when the
// caller repeats it.
type ErrorClassification int

const (
	// NonRetryable failures repeat on every attempt: constraint, syntax and
	// data errors, and anything unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable failures are transient: lost connections, serialization
	// failures, deadlocks, a busy database.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] from SQLSTATE codes.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports [Retryable] for SQLSTATE classes 08 (connection), 40
// (transaction rollback) and 57P03 (cannot connect now).
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	if code == "" {
		return NonRetryable
	}

	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}

// IsDuplicateRelation reports a CREATE that lost to a relation or type of the
// same name. Concurrent CREATE TABLE IF NOT EXISTS statements surface as
// 23505 on pg_type, the rest as 42P07 or 42710.
func (c *PostgresErrorClassifier) IsDuplicateRelation(err error) bool {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation, pgerrcode.DuplicateTable, pgerrcode.DuplicateObject:
		return true
	}
	return false
}
