package memory

import (
	"context"

	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

type (
	productRow   = *product.Product
	productTable = table[*product.Product]
)

func newProductTable() *productTable {
	return newTable[*product.Product](cloneProduct, map[string]resolver[*product.Product]{
		product.FieldName:        func(p *product.Product) any { return p.Name() },
		product.FieldDescription: func(p *product.Product) any { return p.Description() },
		product.FieldCategory:    func(p *product.Product) any { return p.Category() },
		product.FieldIsActive:    func(p *product.Product) any { return p.IsActive() },
		product.FieldPriceAmount: func(p *product.Product) any { return p.Price().Amount() },
	})
}

func cloneProduct(p *product.Product) *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		IsActive:      p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	})
}

// ProductRepository is the in-memory product store.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a product repository over the store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products.get(id)
	if !ok {
		return nil, product.NewNotFoundError(id)
	}
	return p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.products.list(), nil
}

func (r *ProductRepository) Find(ctx context.Context, spec shared.Specification[*product.Product]) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.products.query(spec)
}

func (r *ProductRepository) FindOne(ctx context.Context, spec shared.Specification[*product.Product]) (*product.Product, error) {
	products, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, product.ErrProductNotFound
	}
	return products[0], nil
}

func (r *ProductRepository) Count(ctx context.Context, spec shared.Specification[*product.Product]) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.products.count(spec)
}

func (r *ProductRepository) Exists(ctx context.Context, spec shared.Specification[*product.Product]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) Add(ctx context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products.put(p)
	return nil
}

func (r *ProductRepository) AddRange(ctx context.Context, products []*product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range products {
		r.store.products.put(p)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products.get(p.ID()); !ok {
		return product.NewNotFoundError(p.ID())
	}
	r.store.products.put(p)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products.delete(p.ID())
	return nil
}

var _ product.Repository = (*ProductRepository)(nil)
