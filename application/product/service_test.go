package product

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence/memory"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, []shared.DomainEvent) {}

func newService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)
	factory := memory.NewUnitOfWorkFactory(store, noopDispatcher{}, zap.NewNop())
	return NewService(repo, factory)
}

func create(t *testing.T, svc *Service, name, price string, stock int) *ProductResponse {
	t.Helper()
	resp, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:          name,
		Price:         price,
		Currency:      "USD",
		StockQuantity: stock,
		Category:      "tools",
	})
	if err != nil {
		t.Fatalf("CreateProduct %s: %v", name, err)
	}
	return resp
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("adds an active product with a normalized price", func(t *testing.T) {
		svc := newService(t)
		resp := create(t, svc, "Widget", "19.999", 10)
		if resp.Price != "20.00" || resp.Currency != "USD" {
			t.Fatalf("price = %s %s, want 20.00 USD", resp.Price, resp.Currency)
		}
		if !resp.IsActive {
			t.Fatal("new products start active")
		}

		got, err := svc.GetProduct(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetProduct: %v", err)
		}
		if got.StockQuantity != 10 {
			t.Fatalf("stock = %d, want 10", got.StockQuantity)
		}
	})

	t.Run("rejects an unparseable price", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Widget", Price: "a lot", Currency: "USD"})
		if err == nil {
			t.Fatal("expected a price parse error")
		}
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Widget", Price: "-1.00", Currency: "USD"})
		if !errors.Is(err, shared.ErrNegativeAmount) {
			t.Fatalf("err = %v, want ErrNegativeAmount", err)
		}
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Widget", Price: "1.00", Currency: "USD", StockQuantity: -1})
		if !errors.Is(err, product.ErrNegativeStock) {
			t.Fatalf("err = %v, want ErrNegativeStock", err)
		}
	})
}

func TestUpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the stock level", func(t *testing.T) {
		svc := newService(t)
		resp := create(t, svc, "Widget", "19.99", 10)

		updated, err := svc.UpdateStock(ctx, resp.ID, UpdateStockRequest{StockQuantity: 3})
		if err != nil {
			t.Fatalf("UpdateStock: %v", err)
		}
		if updated.StockQuantity != 3 {
			t.Fatalf("stock = %d, want 3", updated.StockQuantity)
		}
	})

	t.Run("rejects a negative level", func(t *testing.T) {
		svc := newService(t)
		resp := create(t, svc, "Widget", "19.99", 10)

		_, err := svc.UpdateStock(ctx, resp.ID, UpdateStockRequest{StockQuantity: -1})
		if !errors.Is(err, product.ErrNegativeStock) {
			t.Fatalf("err = %v, want ErrNegativeStock", err)
		}
		got, err := svc.GetProduct(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetProduct: %v", err)
		}
		if got.StockQuantity != 10 {
			t.Fatalf("stock after rejected update = %d, want 10", got.StockQuantity)
		}
	})

	t.Run("unknown product id", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.UpdateStock(ctx, "nope", UpdateStockRequest{StockQuantity: 1})
		if !errors.Is(err, product.ErrProductNotFound) {
			t.Fatalf("err = %v, want ErrProductNotFound", err)
		}
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	resp := create(t, svc, "Widget", "19.99", 10)

	deactivated, err := svc.SetActive(ctx, resp.ID, false)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("product should be inactive")
	}

	activated, err := svc.SetActive(ctx, resp.ID, true)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !activated.IsActive {
		t.Fatal("product should be active again")
	}
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	create(t, svc, "Hammer", "25.00", 5)
	create(t, svc, "Screwdriver", "4.50", 20)
	drill := create(t, svc, "Drill", "129.00", 2)
	if _, err := svc.SetActive(ctx, drill.ID, false); err != nil {
		t.Fatalf("deactivate drill: %v", err)
	}

	t.Run("price window", func(t *testing.T) {
		page, err := svc.SearchProducts(ctx, SearchProductsRequest{
			MinPrice: "5.00", MaxPrice: "50.00", PageNumber: 1, PageSize: 10,
		})
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if page.TotalCount != 1 || page.Items[0].Name != "Hammer" {
			t.Fatalf("got %d items, want only Hammer", page.TotalCount)
		}
	})

	t.Run("active filter", func(t *testing.T) {
		active := true
		page, err := svc.SearchProducts(ctx, SearchProductsRequest{
			IsActive: &active, PageNumber: 1, PageSize: 10,
		})
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if page.TotalCount != 2 {
			t.Fatalf("active count = %d, want 2", page.TotalCount)
		}
	})

	t.Run("malformed price filter", func(t *testing.T) {
		_, err := svc.SearchProducts(ctx, SearchProductsRequest{MinPrice: "cheap", PageNumber: 1, PageSize: 10})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("err = %v, want a validation error", err)
		}
	})

	t.Run("rejects bad paging", func(t *testing.T) {
		if _, err := svc.SearchProducts(ctx, SearchProductsRequest{PageNumber: 1, PageSize: 0}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("size 0: %v", err)
		}
	})
}
