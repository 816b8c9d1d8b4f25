package types

import "errors"

// Store opens read-only transactions against an installed-package database.
type Store interface {
	// Begin opens a transaction. The caller owns the returned Tx and must
	// Close it exactly once.
	Begin() (Tx, error)
}

// Tx is one open transaction against the package database. A Tx is not safe
// for concurrent use; independent callers should begin their own.
type Tx interface {
	// Match returns a cursor over packages whose name equals name, in
	// database order. An empty name matches every package. The match is
	// exact and case-sensitive; no wildcard expansion is performed.
	Match(name string) (Cursor, error)

	// Count reports the total number of packages Match(name) would yield.
	Count(name string) (int, error)

	// Close releases the transaction. Idempotent: repeated calls succeed.
	Close() error
}

// Cursor iterates matched packages one at a time. Next returns ok=false once
// the cursor is exhausted. Close must be called to release the cursor even
// when iteration stops early.
type Cursor interface {
	Next() (Package, bool, error)
	Close() error
}

// Standard errors. The query layer and backends wrap these so callers can
// classify failures with errors.Is.
var (
	// ErrInvalidLimit reports a finite limit that is zero or negative.
	ErrInvalidLimit = errors.New("limit must be positive or unlimited")

	// ErrQueryClosed reports an operation on a closed query or transaction.
	ErrQueryClosed = errors.New("query is closed")

	// ErrQueryConsumed reports a second iteration over a single-use query.
	ErrQueryConsumed = errors.New("query results already consumed")

	// ErrQueryFailed reports a package database failure during match,
	// count, or iteration. Queries are not retried; the database is local
	// and cheap to re-issue.
	ErrQueryFailed = errors.New("package database query failed")

	// ErrStoreUnavailable reports that the package database or its driver
	// is missing. The wrapped message tells the operator what to install.
	ErrStoreUnavailable = errors.New("package database unavailable")
)
