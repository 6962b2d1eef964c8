package product

import (
	"errors"
	"testing"

	"ordermanagement/domain/shared"
)

func testPrice(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoneyFromString(amount, "USD")
	if err != nil {
		t.Fatalf("NewMoneyFromString: %v", err)
	}
	return m
}

func TestNewProduct(t *testing.T) {
	t.Run("creates an active product", func(t *testing.T) {
		p, err := NewProduct("Widget", testPrice(t, "19.99"), 100, "A widget", "gadgets")
		if err != nil {
			t.Fatalf("NewProduct: %v", err)
		}
		if !p.IsActive() {
			t.Error("new products should start active")
		}
		if p.StockQuantity() != 100 {
			t.Errorf("StockQuantity() = %d, want 100", p.StockQuantity())
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		if _, err := NewProduct("  ", testPrice(t, "1.00"), 1, "", ""); !errors.Is(err, ErrEmptyName) {
			t.Errorf("err = %v, want ErrEmptyName", err)
		}
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		if _, err := NewProduct("Widget", testPrice(t, "1.00"), -1, "", ""); !errors.Is(err, ErrNegativeStock) {
			t.Errorf("err = %v, want ErrNegativeStock", err)
		}
	})
}

func TestIsInStock(t *testing.T) {
	p, err := NewProduct("Widget", testPrice(t, "19.99"), 5, "", "")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	t.Run("within stock", func(t *testing.T) {
		if !p.IsInStock(5) {
			t.Error("5 of 5 should be in stock")
		}
	})

	t.Run("beyond stock", func(t *testing.T) {
		if p.IsInStock(6) {
			t.Error("6 of 5 should not be in stock")
		}
	})

	t.Run("inactive product is never in stock", func(t *testing.T) {
		p.Deactivate()
		if p.IsInStock(1) {
			t.Error("inactive products should report out of stock")
		}
		p.Activate()
		if !p.IsInStock(1) {
			t.Error("reactivated product should be in stock again")
		}
	})
}

func TestUpdateStock(t *testing.T) {
	p, err := NewProduct("Widget", testPrice(t, "19.99"), 5, "", "")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	if err := p.UpdateStock(0); err != nil {
		t.Errorf("UpdateStock(0): %v", err)
	}
	if err := p.UpdateStock(-1); !errors.Is(err, ErrNegativeStock) {
		t.Errorf("UpdateStock(-1): err = %v, want ErrNegativeStock", err)
	}
	if p.StockQuantity() != 0 {
		t.Errorf("failed update should not change stock, got %d", p.StockQuantity())
	}
}

func TestUpdatePrice(t *testing.T) {
	p, err := NewProduct("Widget", testPrice(t, "19.99"), 5, "", "")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	p.UpdatePrice(testPrice(t, "24.99"))
	if got := p.Price().String(); got != "24.99 USD" {
		t.Errorf("Price() = %s, want 24.99 USD", got)
	}
}
