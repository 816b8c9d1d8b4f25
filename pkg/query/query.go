// Package query implements the scoped, filterable, optionally-sorted view
// over installed-package records. A Query owns exactly one store transaction
// from Open until Close and guarantees the handle is released exactly once,
// however iteration ends.
package query

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"

	"github.com/josevnz/rpmq/pkg/types"
)

// Unlimited is the sentinel Limit value that disables the result cap.
const Unlimited = -1

// Spec configures a query. The zero value is not valid: Limit must be either
// Unlimited or positive. An empty Name matches every package. Unsorted keeps
// the database's own ordering; by default results are sorted by size,
// largest first.
type Spec struct {
	Limit    int
	Name     string
	Unsorted bool
}

// DefaultSpec returns a Spec matching the CLI defaults: unlimited results,
// no name filter, sorted by size descending.
func DefaultSpec() Spec {
	return Spec{Limit: Unlimited}
}

// Validate checks that the Spec is well-formed. Finite limits must be
// positive; zero and negative finite values are caller errors.
func (s Spec) Validate() error {
	if s.Limit != Unlimited && s.Limit <= 0 {
		return fmt.Errorf("%w: %d", types.ErrInvalidLimit, s.Limit)
	}
	return nil
}

// Query is a live, single-use view over the package database. It is not safe
// for concurrent use; independent callers should Open their own.
type Query struct {
	id       string
	spec     Spec
	tx       types.Tx
	closed   bool
	consumed bool
	count    int
	counted  bool
}

// Open validates spec and begins a store transaction. Validation happens
// before any store interaction, so an invalid limit never touches the
// database. The caller must Close the returned Query.
func Open(store types.Store, spec Spec) (*Query, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	tx, err := store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin package query: %w", err)
	}
	return &Query{
		id:   uuid.Must(uuid.NewV7()).String(),
		spec: spec,
		tx:   tx,
	}, nil
}

// ID returns the query's correlation identifier. The query performs no
// logging of its own; callers use the ID to tie their diagnostics to one
// scoped use.
func (q *Query) ID() string {
	return q.id
}

// Records returns the result sequence. The sequence is lazy, finite, and
// single-use: it may be ranged over once, yields each package at most once,
// and stops after Limit packages for finite limits. When sorting is enabled
// the full match set is read and stable-sorted by size descending before the
// first package is yielded; ties keep database order. When sorting is
// disabled, packages stream through in database order with no buffering
// beyond the store's own.
//
// Errors during matching or iteration are yielded as the second value and
// terminate the sequence. Breaking out early is safe; the transaction is
// released by Close, not by the sequence.
func (q *Query) Records() iter.Seq2[types.Package, error] {
	return func(yield func(types.Package, error) bool) {
		if q.closed {
			yield(types.Package{}, types.ErrQueryClosed)
			return
		}
		if q.consumed {
			yield(types.Package{}, types.ErrQueryConsumed)
			return
		}
		q.consumed = true

		cur, err := q.tx.Match(q.spec.Name)
		if err != nil {
			yield(types.Package{}, fmt.Errorf("match packages: %w", err))
			return
		}
		defer cur.Close()

		if q.spec.Unsorted {
			q.stream(cur, yield)
			return
		}
		q.sorted(cur, yield)
	}
}

// stream yields packages in store order, stopping at the limit.
func (q *Query) stream(cur types.Cursor, yield func(types.Package, error) bool) {
	yielded := 0
	for q.spec.Limit == Unlimited || yielded < q.spec.Limit {
		pkg, ok, err := cur.Next()
		if err != nil {
			yield(types.Package{}, fmt.Errorf("scan packages: %w", err))
			return
		}
		if !ok {
			return
		}
		if !yield(pkg, nil) {
			return
		}
		yielded++
	}
}

// sorted materializes the full match set, sorts by size descending with
// stable ties, and yields up to the limit. Largest-first ordering requires
// seeing every candidate, so the first package is only available after the
// full scan.
func (q *Query) sorted(cur types.Cursor, yield func(types.Package, error) bool) {
	var all []types.Package
	for {
		pkg, ok, err := cur.Next()
		if err != nil {
			yield(types.Package{}, fmt.Errorf("scan packages: %w", err))
			return
		}
		if !ok {
			break
		}
		all = append(all, pkg)
	}

	slices.SortStableFunc(all, func(a, b types.Package) int {
		return cmp.Compare(b.Size, a.Size)
	})

	for i, pkg := range all {
		if q.spec.Limit != Unlimited && i >= q.spec.Limit {
			return
		}
		if !yield(pkg, nil) {
			return
		}
	}
}

// Count reports the total number of matches for the open query, independent
// of the limit. The value is computed once and cached, so repeated calls
// within the same scoped use are stable.
func (q *Query) Count() (int, error) {
	if q.closed {
		return 0, types.ErrQueryClosed
	}
	if q.counted {
		return q.count, nil
	}
	n, err := q.tx.Count(q.spec.Name)
	if err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	q.count = n
	q.counted = true
	return n, nil
}

// Close releases the store transaction. Idempotent: the handle is released
// exactly once no matter how many times Close is called or how iteration
// ended.
func (q *Query) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true
	return q.tx.Close()
}
