// Shared helpers for rpmq CLI commands.
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/josevnz/rpmq/internal/rpmdb"
	"github.com/josevnz/rpmq/pkg/query"
	"github.com/josevnz/rpmq/pkg/types"
)

// openQuery builds a query.Spec from the CLI flags, resolves the database
// path, and opens a query. The caller must defer q.Close().
func openQuery() (*query.Query, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve rpmdb path: %w", err)
	}

	spec := query.Spec{
		Limit:    flagLimit,
		Name:     flagName,
		Unsorted: !flagSort,
	}

	store := rpmdb.NewStore(dbPath)
	q, err := query.Open(store, spec)
	if err != nil {
		return nil, err
	}

	logger.Debug("opened package query",
		"id", q.ID(),
		"db", store.Path(),
		"limit", spec.Limit,
		"name", spec.Name,
		"sorted", !spec.Unsorted)
	return q, nil
}

// formatRow renders one package as "name-version: size" with a
// comma-grouped size, matching the plain-text output contract.
func formatRow(pkg types.Package) string {
	return fmt.Sprintf("%s: %s", pkg.Label(), humanize.Comma(pkg.Size))
}
