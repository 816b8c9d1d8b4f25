// Package rpmdb reads installed-package records from the rpmdb SQLite file
// maintained by rpm. Access is strictly read-only; each transaction opens its
// own connection so independent queries do not share state.
package rpmdb

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/josevnz/rpmq/pkg/types"
)

// DefaultPath is where rpm keeps the package database on systems using the
// sqlite backend (the default since rpm 4.16).
const DefaultPath = "/var/lib/rpm/rpmdb.sqlite"

// Store locates the rpmdb file and opens transactions against it.
type Store struct {
	path string
}

// NewStore returns a Store reading the rpmdb at path. An empty path selects
// DefaultPath. No I/O happens until Begin.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the database file the store reads.
func (s *Store) Path() string {
	return s.path
}

// Begin opens a read-only connection to the rpmdb. A missing database file
// is reported as types.ErrStoreUnavailable with guidance for the operator.
func (s *Store) Begin() (types.Tx, error) {
	if err := Available(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"%w: %s does not exist; this host may not use rpm, or the database lives elsewhere (try --db)",
				types.ErrStoreUnavailable, s.path)
		}
		return nil, fmt.Errorf("stat rpmdb: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", s.path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open rpmdb: %w", err)
	}
	return &Tx{db: db}, nil
}

// Tx is one open read transaction. Not safe for concurrent use.
type Tx struct {
	db     *sql.DB
	closed bool
}

// Match returns a cursor over packages in hnum (insertion) order, filtered
// by exact name when name is non-empty. Header blobs are decoded lazily, one
// row per Next call.
func (t *Tx) Match(name string) (types.Cursor, error) {
	if t.closed {
		return nil, types.ErrQueryClosed
	}
	rows, err := t.db.Query("SELECT blob FROM Packages ORDER BY hnum")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	return &cursor{rows: rows, name: name}, nil
}

// Count reports the total number of packages Match(name) would yield. The
// unfiltered count comes straight from SQLite; filtered counts require
// decoding, since names live inside the header blobs.
func (t *Tx) Count(name string) (int, error) {
	if t.closed {
		return 0, types.ErrQueryClosed
	}

	if name == "" {
		var n int
		err := t.db.QueryRow("SELECT COUNT(*) FROM Packages").Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
		}
		return n, nil
	}

	cur, err := t.Match(name)
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	n := 0
	for {
		_, ok, err := cur.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Close releases the database connection. Idempotent.
func (t *Tx) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.db.Close()
}

// cursor decodes Packages rows on demand, skipping rows that do not match
// the name filter.
type cursor struct {
	rows *sql.Rows
	name string
}

func (c *cursor) Next() (types.Package, bool, error) {
	for c.rows.Next() {
		var blob []byte
		if err := c.rows.Scan(&blob); err != nil {
			return types.Package{}, false, fmt.Errorf("%w: scan package row: %v", types.ErrQueryFailed, err)
		}
		pkg, err := decodeHeader(blob)
		if err != nil {
			return types.Package{}, false, fmt.Errorf("%w: decode package header: %v", types.ErrQueryFailed, err)
		}
		if c.name != "" && pkg.Name != c.name {
			continue
		}
		return pkg, true, nil
	}
	if err := c.rows.Err(); err != nil {
		return types.Package{}, false, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	return types.Package{}, false, nil
}

func (c *cursor) Close() error {
	return c.rows.Close()
}
