// Package product orchestrates catalog use cases: creating products,
// stock and availability management, and the paged product listing.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// Service coordinates product business processes.
type Service struct {
	products   product.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewService creates a product application service.
func NewService(products product.Repository, uowFactory shared.UnitOfWorkFactory) *Service {
	return &Service{products: products, uowFactory: uowFactory}
}

// CreateProduct adds a product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := shared.NewMoneyFromString(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	p, err := product.NewProduct(req.Name, price, req.StockQuantity, req.Description, req.Category)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.products.Add(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(p), nil
}

// UpdateStock replaces the stock level of a product.
func (s *Service) UpdateStock(ctx context.Context, productID string, req UpdateStockRequest) (*ProductResponse, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateStock(req.StockQuantity); err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(p), nil
}

// SetActive activates or deactivates a product.
func (s *Service) SetActive(ctx context.Context, productID string, active bool) (*ProductResponse, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if active {
		p.Activate()
	} else {
		p.Deactivate()
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(p), nil
}

// GetProduct returns a single product by id.
func (s *Service) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// SearchProducts returns one page of products matching the filters,
// ordered by name.
func (s *Service) SearchProducts(ctx context.Context, req SearchProductsRequest) (*shared.PaginatedList[*ProductResponse], error) {
	if err := checkPaging(req.PageNumber, req.PageSize); err != nil {
		return nil, err
	}

	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	spec, err := product.SearchPage(filter, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, err
	}

	products, err := s.products.Find(ctx, spec)
	if err != nil {
		return nil, err
	}

	totalCount, err := s.products.Count(ctx, product.Filtered(filter))
	if err != nil {
		return nil, err
	}

	items := make([]*ProductResponse, len(products))
	for i, p := range products {
		items[i] = toResponse(p)
	}

	page := shared.NewPaginatedList(items, totalCount, req.PageNumber, req.PageSize)
	return &page, nil
}

func buildFilter(req SearchProductsRequest) (product.Filter, error) {
	filter := product.Filter{
		SearchTerm: req.SearchTerm,
		Category:   req.Category,
		IsActive:   req.IsActive,
	}
	if strings.TrimSpace(req.MinPrice) != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return product.Filter{}, shared.NewValidationError("product", "min_price", "Minimum price must be a decimal number")
		}
		filter.MinPrice = &min
	}
	if strings.TrimSpace(req.MaxPrice) != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return product.Filter{}, shared.NewValidationError("product", "max_price", "Maximum price must be a decimal number")
		}
		filter.MaxPrice = &max
	}
	return filter, nil
}

func checkPaging(pageNumber, pageSize int) error {
	if pageNumber < 1 {
		return shared.NewValidationError("product", "page_number", "Page number must be at least 1")
	}
	if pageSize < 1 || pageSize > 100 {
		return shared.NewValidationError("product", "page_size", "Page size must be between 1 and 100")
	}
	return nil
}

func toResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		Price:         p.Price().Amount().StringFixed(2),
		Currency:      p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		IsActive:      p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
