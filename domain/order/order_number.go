package order

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"ordermanagement/domain/shared"
)

// maxNumberAttempts bounds the uniqueness retry loop; collisions are rare
// with 9000 suffixes per day, and the unique index backstops a miss anyway.
const maxNumberAttempts = 5

// GenerateOrderNumber produces a human-readable order number of the form
// ORD-YYYYMMDD-NNNN with a random four digit suffix.
func GenerateOrderNumber() string {
	return GenerateOrderNumberAt(time.Now().UTC())
}

// GenerateOrderNumberAt is GenerateOrderNumber with an explicit date,
// which keeps tests deterministic about the date portion.
func GenerateOrderNumberAt(t time.Time) string {
	suffix := 1000 + rand.IntN(9000)
	return fmt.Sprintf("ORD-%s-%04d", t.Format("20060102"), suffix)
}

// UniqueOrderNumber generates order numbers until taken reports the candidate
// as unused. It fails after a bounded number of attempts rather than loop
// forever on a pathological store.
func UniqueOrderNumber(ctx context.Context, taken func(ctx context.Context, number string) (bool, error)) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		number := GenerateOrderNumber()
		used, err := taken(ctx, number)
		if err != nil {
			return "", err
		}
		if !used {
			return number, nil
		}
	}
	return "", shared.NewConflictError("order", "could not allocate a unique order number")
}
