package rpmdb

import (
	"database/sql"
	"fmt"
	"slices"
	"sync"

	"github.com/josevnz/rpmq/pkg/types"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

var (
	probeOnce sync.Once
	probeErr  error
)

// Available reports whether the SQLite driver needed to read the rpmdb is
// registered with database/sql. The probe runs once per process; every later
// call returns the cached result. A failure means the binary was built
// without the modernc.org/sqlite import and must be rebuilt.
func Available() error {
	probeOnce.Do(func() {
		if !slices.Contains(sql.Drivers(), driverName) {
			probeErr = fmt.Errorf(
				"%w: sql driver %q is not registered; rebuild rpmq with the modernc.org/sqlite import intact",
				types.ErrStoreUnavailable, driverName)
		}
	})
	return probeErr
}
