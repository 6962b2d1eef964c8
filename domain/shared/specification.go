package shared

import (
	"errors"
	"slices"
)

// Operator is the comparison a condition applies.
type Operator string

const (
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpGreaterOrEqual Operator = "gte"
	OpLessOrEqual    Operator = "lte"

	// OpContainsFold matches a case-insensitive substring.
	OpContainsFold Operator = "contains_fold"
)

// ErrInvalidPaging rejects paging with a negative skip or a take below one.
var ErrInvalidPaging = errors.New("paging requires skip >= 0 and take >= 1")

// Condition is one conjunct of a specification's criteria. A condition
// carrying several fields is satisfied when ANY of them matches, which is
// how the cross-field search filters are expressed; conditions themselves
// always combine with AND.
type Condition struct {
	Fields []string
	Op     Operator
	Value  any
}

// Specification is a passive, composable description of a query over one
// entity type: filter conditions, eager-load paths, a single order key
// (ascending or descending, mutually exclusive) and optional paging.
// It is a plain value with copy-on-write builder methods, so derived
// specifications never mutate the one they were built from. Evaluators
// apply the pieces in a fixed order (filter, include, order, page) and
// may evaluate the criteria alone for Count/Exists.
type Specification[T any] struct {
	conditions []Condition
	includes   []string
	orderKey   string
	descending bool
	skip       int
	take       int
	paged      bool
}

// NewSpecification returns an empty specification matching everything.
func NewSpecification[T any]() Specification[T] {
	return Specification[T]{}
}

// Where appends a single-field condition.
func (s Specification[T]) Where(field string, op Operator, value any) Specification[T] {
	return s.withCondition(Condition{Fields: []string{field}, Op: op, Value: value})
}

// WhereAny appends a condition satisfied when any of the fields matches.
func (s Specification[T]) WhereAny(op Operator, value any, fields ...string) Specification[T] {
	return s.withCondition(Condition{Fields: slices.Clone(fields), Op: op, Value: value})
}

// Include adds eager-load paths. Nested paths use dots, e.g.
// "OrderItems.Product".
func (s Specification[T]) Include(paths ...string) Specification[T] {
	includes := make([]string, 0, len(s.includes)+len(paths))
	includes = append(includes, s.includes...)
	includes = append(includes, paths...)
	s.includes = includes
	return s
}

// OrderBy sets an ascending order key, clearing any descending one.
func (s Specification[T]) OrderBy(field string) Specification[T] {
	s.orderKey = field
	s.descending = false
	return s
}

// OrderByDescending sets a descending order key, clearing any ascending one.
func (s Specification[T]) OrderByDescending(field string) Specification[T] {
	s.orderKey = field
	s.descending = true
	return s
}

// Paginate enables paging. Skip must be non-negative and take at least one.
func (s Specification[T]) Paginate(skip, take int) (Specification[T], error) {
	if skip < 0 || take < 1 {
		return s, ErrInvalidPaging
	}
	s.skip = skip
	s.take = take
	s.paged = true
	return s, nil
}

// And merges the other specification's conditions into this one,
// combining conjunctively. Includes, ordering and paging of the receiver
// are kept unchanged.
func (s Specification[T]) And(other Specification[T]) Specification[T] {
	merged := s
	for _, c := range other.conditions {
		merged = merged.withCondition(c)
	}
	return merged
}

// Conditions returns a copy of the filter conditions.
func (s Specification[T]) Conditions() []Condition {
	return slices.Clone(s.conditions)
}

// Includes returns a copy of the eager-load paths.
func (s Specification[T]) Includes() []string {
	return slices.Clone(s.includes)
}

// OrderKey returns the order field and direction. An empty field means
// the specification imposes no ordering.
func (s Specification[T]) OrderKey() (field string, descending bool) {
	return s.orderKey, s.descending
}

// Paging returns the paging window; enabled is false when paging is off.
func (s Specification[T]) Paging() (skip, take int, enabled bool) {
	return s.skip, s.take, s.paged
}

func (s Specification[T]) withCondition(c Condition) Specification[T] {
	conditions := make([]Condition, 0, len(s.conditions)+1)
	conditions = append(conditions, s.conditions...)
	conditions = append(conditions, c)
	s.conditions = conditions
	return s
}
