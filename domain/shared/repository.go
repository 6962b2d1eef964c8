package shared

import "context"

// Repository is the generic data-access contract the core consumes. The
// core depends only on this interface; the storage engine behind it is a
// collaborator. Implementations evaluate specifications with a generic
// evaluator (filter, include, order, page) and use the criteria-only mode
// for Count and Exists.
//
// Repositories participate in a transaction when the context carries one
// (see UnitOfWork.BeginTransaction) and run standalone otherwise.
type Repository[T Entity] interface {
	GetByID(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, spec Specification[T]) ([]T, error)

	// FindOne returns the first match or a not-found error.
	FindOne(ctx context.Context, spec Specification[T]) (T, error)

	Count(ctx context.Context, spec Specification[T]) (int64, error)
	Exists(ctx context.Context, spec Specification[T]) (bool, error)

	Add(ctx context.Context, entity T) error
	AddRange(ctx context.Context, entities []T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, entity T) error
}
