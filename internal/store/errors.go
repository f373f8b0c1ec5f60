package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateTableName is returned when a form is inserted with a
	// table_name that another form already holds. It is produced by the
	// storage-level UNIQUE constraint, so it also covers concurrent creates.
	ErrDuplicateTableName = errors.New("table name already exists")

	// ErrFormNotFound is returned when no form matches the id (and, for
	// owner-scoped operations, the owner).
	ErrFormNotFound = errors.New("form was not found")

	// ErrResponseNotSaved is returned when the response INSERT completes
	// without error but affects no rows.
	ErrResponseNotSaved = errors.New("response was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML or DDL
	// statement (INSERT, DELETE, CREATE TABLE, DROP TABLE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDocument is returned when a JSON document column cannot be
	// encoded or decoded.
	ErrEncodingDocument = errors.New("failed to encode json document")

	// ErrUnsupportedDriver is returned when no connector exists for the
	// configured driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
