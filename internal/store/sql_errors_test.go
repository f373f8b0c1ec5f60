package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name      string
		err       error
		retryable bool
		duplicate bool
	}{
		{name: "nil", err: nil},
		{name: "not a driver error", err: errors.New("boom")},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), retryable: true},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), retryable: true},
		{name: "deadlock", err: fmt.Errorf("wrapped: %w", pgError(pgerrcode.DeadlockDetected)), retryable: true},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), retryable: true},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError)},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), duplicate: true},
		{name: "duplicate table", err: pgError(pgerrcode.DuplicateTable), duplicate: true},
		{name: "duplicate object", err: pgError(pgerrcode.DuplicateObject), duplicate: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, c.Classify(tt.err) == Retryable)
			assert.Equal(t, tt.duplicate, c.IsDuplicateRelation(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("boom")))

	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, c.IsDuplicateRelation(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.False(t, c.IsDuplicateRelation(errors.New("table t already exists")))
}

func TestDB_ClassifierHelpers(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}
	assert.True(t, db.isRetryable(pgError(pgerrcode.SerializationFailure)))
	assert.False(t, db.isRetryable(pgError(pgerrcode.UniqueViolation)))
	assert.True(t, db.isDuplicateRelation(pgError(pgerrcode.DuplicateTable)))

	bare := &DB{}
	assert.False(t, bare.isRetryable(pgError(pgerrcode.SerializationFailure)))
	assert.False(t, bare.isDuplicateRelation(pgError(pgerrcode.DuplicateTable)))
}
