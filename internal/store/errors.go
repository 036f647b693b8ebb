package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoCurrentIdentity is returned when nobody is signed in.
	ErrNoCurrentIdentity = errors.New("no current identity")

	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	// The record is left untouched so it can be inspected or reset.
	ErrCorruptRecord = errors.New("stored record is corrupt")

	// ErrRecordNotSaved is returned when a write completes without error but
	// affects no rows.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrEmptyIdentityID is returned when a repository is called with an
	// empty identity key.
	ErrEmptyIdentityID = errors.New("identity id is empty")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
