package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"ordermanagement/domain/shared"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			number := GenerateOrderNumber()
			if !orderNumberPattern.MatchString(number) {
				t.Fatalf("number %q does not match ORD-YYYYMMDD-NNNN", number)
			}
		}
	})

	t.Run("uses the given date", func(t *testing.T) {
		at := time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC)
		number := GenerateOrderNumberAt(at)
		if number[:12] != "ORD-20260815" {
			t.Errorf("number = %q, want the 20260815 date portion", number)
		}
	})
}

func TestUniqueOrderNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first free number", func(t *testing.T) {
		calls := 0
		number, err := UniqueOrderNumber(ctx, func(ctx context.Context, number string) (bool, error) {
			calls++
			return false, nil
		})
		if err != nil {
			t.Fatalf("UniqueOrderNumber: %v", err)
		}
		if calls != 1 {
			t.Errorf("taken called %d times, want 1", calls)
		}
		if !orderNumberPattern.MatchString(number) {
			t.Errorf("number = %q", number)
		}
	})

	t.Run("retries past collisions", func(t *testing.T) {
		calls := 0
		_, err := UniqueOrderNumber(ctx, func(ctx context.Context, number string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		if err != nil {
			t.Fatalf("UniqueOrderNumber: %v", err)
		}
		if calls != 3 {
			t.Errorf("taken called %d times, want 3", calls)
		}
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		calls := 0
		_, err := UniqueOrderNumber(ctx, func(ctx context.Context, number string) (bool, error) {
			calls++
			return true, nil
		})
		if !errors.Is(err, shared.ErrConflict) {
			t.Errorf("err = %v, want ErrConflict", err)
		}
		if calls != maxNumberAttempts {
			t.Errorf("taken called %d times, want %d", calls, maxNumberAttempts)
		}
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		boom := errors.New("store down")
		_, err := UniqueOrderNumber(ctx, func(ctx context.Context, number string) (bool, error) {
			return false, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want the lookup error", err)
		}
	})
}
