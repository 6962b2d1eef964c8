/*
Package memory implements the repositories and unit of work on plain
in-process maps. It backs the "memory" database type for local runs and
is the storage fixture the service tests run against.

Transactions are snapshots: BeginTransaction copies the store, rollback
restores the copy, commit discards it. That gives single-writer
atomicity, which is all the development backend promises.
*/
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ordermanagement/domain/shared"
)

// resolver extracts the comparable value behind a specification field
// key from an entity.
type resolver[T any] func(T) any

// table is one entity collection with the evaluation machinery the
// specification contract requires: filter, order, page, criteria-only.
type table[T shared.Entity] struct {
	rows     map[string]T
	clone    func(T) T
	resolves map[string]resolver[T]
}

func newTable[T shared.Entity](clone func(T) T, resolves map[string]resolver[T]) *table[T] {
	return &table[T]{
		rows:     make(map[string]T),
		clone:    clone,
		resolves: resolves,
	}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

func (t *table[T]) list() []T {
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, t.clone(row))
	}
	return rows
}

func (t *table[T]) put(entity T) {
	t.rows[entity.ID()] = t.clone(entity)
}

func (t *table[T]) delete(id string) {
	delete(t.rows, id)
}

// matches evaluates the criteria only.
func (t *table[T]) matches(entity T, spec shared.Specification[T]) (bool, error) {
	for _, cond := range spec.Conditions() {
		anyField := false
		for _, field := range cond.Fields {
			resolve, ok := t.resolves[field]
			if !ok {
				return false, fmt.Errorf("specification references unknown field %q", field)
			}
			match, err := matchValue(resolve(entity), cond.Op, cond.Value)
			if err != nil {
				return false, err
			}
			if match {
				anyField = true
				break
			}
		}
		if !anyField {
			return false, nil
		}
	}
	return true, nil
}

// query applies the full specification: filter, order, page. Includes
// are meaningless in memory; aggregates are stored whole.
func (t *table[T]) query(spec shared.Specification[T]) ([]T, error) {
	var result []T
	for _, row := range t.rows {
		match, err := t.matches(row, spec)
		if err != nil {
			return nil, err
		}
		if match {
			result = append(result, t.clone(row))
		}
	}

	if field, descending := spec.OrderKey(); field != "" {
		resolve, ok := t.resolves[field]
		if !ok {
			return nil, fmt.Errorf("specification orders by unknown field %q", field)
		}
		sort.SliceStable(result, func(i, j int) bool {
			cmp := compareValues(resolve(result[i]), resolve(result[j]))
			if descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if skip, take, enabled := spec.Paging(); enabled {
		if skip >= len(result) {
			return nil, nil
		}
		result = result[skip:]
		if take < len(result) {
			result = result[:take]
		}
	}

	return result, nil
}

func (t *table[T]) count(spec shared.Specification[T]) (int64, error) {
	var count int64
	for _, row := range t.rows {
		match, err := t.matches(row, spec)
		if err != nil {
			return 0, err
		}
		if match {
			count++
		}
	}
	return count, nil
}

func (t *table[T]) snapshot() map[string]T {
	snap := make(map[string]T, len(t.rows))
	for id, row := range t.rows {
		snap[id] = t.clone(row)
	}
	return snap
}

func (t *table[T]) restore(snap map[string]T) {
	t.rows = snap
}

func matchValue(value any, op shared.Operator, condValue any) (bool, error) {
	switch op {
	case shared.OpEqual:
		return compareValues(value, condValue) == 0, nil
	case shared.OpNotEqual:
		return compareValues(value, condValue) != 0, nil
	case shared.OpGreaterOrEqual:
		return compareValues(value, condValue) >= 0, nil
	case shared.OpLessOrEqual:
		return compareValues(value, condValue) <= 0, nil
	case shared.OpContainsFold:
		haystack := strings.ToLower(fmt.Sprint(value))
		needle := strings.ToLower(fmt.Sprint(condValue))
		return strings.Contains(haystack, needle), nil
	default:
		return false, fmt.Errorf("unsupported specification operator %q", op)
	}
}

// compareValues orders two resolved values of the same kind. Mixed or
// unknown kinds fall back to string comparison, which keeps equality
// checks on enum-like values working.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Store holds every collection behind one lock. txMu serializes whole
// units of work: a transaction owns the store from begin to
// commit/rollback, so a rollback restores exactly the state its own
// snapshot captured.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	customers *customerTable
	products  *productTable
	orders    *orderTable
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		customers: newCustomerTable(),
		products:  newProductTable(),
		orders:    newOrderTable(),
	}
}

// storeSnapshot captures the full store state for rollback.
type storeSnapshot struct {
	customers map[string]customerRow
	products  map[string]productRow
	orders    map[string]orderRow
}

// beginTx acquires the transaction lock and snapshots the store. The
// lock is held until commitTx or rollbackTx, so no other unit of work
// can commit state that a later rollback would wipe out.
func (s *Store) beginTx() *storeSnapshot {
	s.txMu.Lock()
	return s.snapshot()
}

// commitTx makes the mutations permanent by releasing the transaction
// lock without restoring.
func (s *Store) commitTx() {
	s.txMu.Unlock()
}

// rollbackTx restores the snapshot taken at begin and releases the
// transaction lock.
func (s *Store) rollbackTx(snap *storeSnapshot) {
	s.restore(snap)
	s.txMu.Unlock()
}

func (s *Store) snapshot() *storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &storeSnapshot{
		customers: s.customers.snapshot(),
		products:  s.products.snapshot(),
		orders:    s.orders.snapshot(),
	}
}

func (s *Store) restore(snap *storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.restore(snap.customers)
	s.products.restore(snap.products)
	s.orders.restore(snap.orders)
}
