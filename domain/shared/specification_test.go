package shared

import (
	"errors"
	"testing"
)

type widget struct{}

func TestSpecificationBuilder(t *testing.T) {
	t.Run("empty specification matches everything", func(t *testing.T) {
		spec := NewSpecification[widget]()
		if len(spec.Conditions()) != 0 || len(spec.Includes()) != 0 {
			t.Error("empty specification should carry no conditions or includes")
		}
		if _, _, enabled := spec.Paging(); enabled {
			t.Error("empty specification should not be paged")
		}
	})

	t.Run("where appends conjuncts", func(t *testing.T) {
		spec := NewSpecification[widget]().
			Where("status", OpEqual, "Pending").
			Where("created_at", OpGreaterOrEqual, 42)

		conditions := spec.Conditions()
		if len(conditions) != 2 {
			t.Fatalf("len(conditions) = %d, want 2", len(conditions))
		}
		if conditions[0].Fields[0] != "status" || conditions[0].Op != OpEqual {
			t.Errorf("first condition = %+v", conditions[0])
		}
	})

	t.Run("where any groups fields disjunctively", func(t *testing.T) {
		spec := NewSpecification[widget]().WhereAny(OpContainsFold, "term", "name", "description")
		conditions := spec.Conditions()
		if len(conditions) != 1 {
			t.Fatalf("len(conditions) = %d, want 1", len(conditions))
		}
		if len(conditions[0].Fields) != 2 {
			t.Errorf("len(fields) = %d, want 2", len(conditions[0].Fields))
		}
	})

	t.Run("order by descending replaces ascending", func(t *testing.T) {
		spec := NewSpecification[widget]().OrderBy("name").OrderByDescending("created_at")
		field, descending := spec.OrderKey()
		if field != "created_at" || !descending {
			t.Errorf("OrderKey() = (%s, %v), want (created_at, true)", field, descending)
		}
	})

	t.Run("paginate validates the window", func(t *testing.T) {
		if _, err := NewSpecification[widget]().Paginate(-1, 10); !errors.Is(err, ErrInvalidPaging) {
			t.Errorf("negative skip: err = %v, want ErrInvalidPaging", err)
		}
		if _, err := NewSpecification[widget]().Paginate(0, 0); !errors.Is(err, ErrInvalidPaging) {
			t.Errorf("zero take: err = %v, want ErrInvalidPaging", err)
		}

		spec, err := NewSpecification[widget]().Paginate(20, 10)
		if err != nil {
			t.Fatalf("Paginate: %v", err)
		}
		skip, take, enabled := spec.Paging()
		if skip != 20 || take != 10 || !enabled {
			t.Errorf("Paging() = (%d, %d, %v), want (20, 10, true)", skip, take, enabled)
		}
	})

	t.Run("builder does not mutate the receiver", func(t *testing.T) {
		base := NewSpecification[widget]().Where("status", OpEqual, "Pending")
		derived := base.Where("customer_id", OpEqual, "c1")

		if len(base.Conditions()) != 1 {
			t.Errorf("base grew to %d conditions after deriving", len(base.Conditions()))
		}
		if len(derived.Conditions()) != 2 {
			t.Errorf("derived has %d conditions, want 2", len(derived.Conditions()))
		}
	})

	t.Run("and merges conditions only", func(t *testing.T) {
		a := NewSpecification[widget]().Where("status", OpEqual, "Pending").OrderBy("name")
		b := NewSpecification[widget]().Where("customer_id", OpEqual, "c1").OrderBy("created_at")

		merged := a.And(b)
		if len(merged.Conditions()) != 2 {
			t.Errorf("merged has %d conditions, want 2", len(merged.Conditions()))
		}
		if field, _ := merged.OrderKey(); field != "name" {
			t.Errorf("merged order key = %s, want the receiver's", field)
		}
	})
}
