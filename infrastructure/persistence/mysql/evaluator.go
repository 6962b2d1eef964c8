package mysql

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ordermanagement/domain/shared"
)

// columnMap whitelists the specification field keys an entity supports
// and maps them to SQL columns. Unknown keys fail the query instead of
// reaching the SQL string.
type columnMap map[string]string

// includeMap maps specification include paths to GORM preload paths.
// Includes the backend cannot serve (snapshotted data, cross-aggregate
// references) map to "" and are skipped.
type includeMap map[string]string

// applyCriteria translates the specification's conditions into WHERE
// clauses. Multi-field conditions become an OR group; conditions
// combine with AND, matching the specification contract.
func applyCriteria[T any](db *gorm.DB, spec shared.Specification[T], columns columnMap) (*gorm.DB, error) {
	for _, cond := range spec.Conditions() {
		exprs := make([]string, 0, len(cond.Fields))
		args := make([]any, 0, len(cond.Fields))
		for _, field := range cond.Fields {
			column, ok := columns[field]
			if !ok {
				return nil, fmt.Errorf("specification references unknown field %q", field)
			}
			expr, arg, err := conditionExpr(column, cond.Op, cond.Value)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			args = append(args, arg)
		}
		if len(exprs) == 1 {
			db = db.Where(exprs[0], args[0])
		} else {
			db = db.Where("("+strings.Join(exprs, " OR ")+")", args...)
		}
	}
	return db, nil
}

// applySpec translates the full specification: criteria, includes,
// ordering and paging, in that order.
func applySpec[T any](db *gorm.DB, spec shared.Specification[T], columns columnMap, includes includeMap) (*gorm.DB, error) {
	db, err := applyCriteria(db, spec, columns)
	if err != nil {
		return nil, err
	}

	for _, path := range spec.Includes() {
		if preload, ok := includes[path]; ok && preload != "" {
			db = db.Preload(preload)
		}
	}

	if field, descending := spec.OrderKey(); field != "" {
		column, ok := columns[field]
		if !ok {
			return nil, fmt.Errorf("specification orders by unknown field %q", field)
		}
		direction := " ASC"
		if descending {
			direction = " DESC"
		}
		db = db.Order(column + direction)
	}

	if skip, take, enabled := spec.Paging(); enabled {
		db = db.Offset(skip).Limit(take)
	}

	return db, nil
}

func conditionExpr(column string, op shared.Operator, value any) (string, any, error) {
	switch op {
	case shared.OpEqual:
		return column + " = ?", value, nil
	case shared.OpNotEqual:
		return column + " <> ?", value, nil
	case shared.OpGreaterOrEqual:
		return column + " >= ?", value, nil
	case shared.OpLessOrEqual:
		return column + " <= ?", value, nil
	case shared.OpContainsFold:
		pattern := "%" + strings.ToLower(fmt.Sprint(value)) + "%"
		return "LOWER(" + column + ") LIKE ?", pattern, nil
	default:
		return "", nil, fmt.Errorf("unsupported specification operator %q", op)
	}
}
