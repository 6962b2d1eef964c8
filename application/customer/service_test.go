package customer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence/memory"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, []shared.DomainEvent) {}

func newService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	repo := memory.NewCustomerRepository(store)
	factory := memory.NewUnitOfWorkFactory(store, noopDispatcher{}, zap.NewNop())
	return NewService(repo, factory)
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a customer", func(t *testing.T) {
		svc := newService(t)
		resp, err := svc.CreateCustomer(ctx, CreateCustomerRequest{
			FirstName:   "Jane",
			LastName:    "Doe",
			Email:       "Jane.Doe@Example.COM",
			PhoneNumber: "555-0101",
		})
		if err != nil {
			t.Fatalf("CreateCustomer: %v", err)
		}
		if resp.Email != "jane.doe@example.com" {
			t.Fatalf("email = %q, want normalized form", resp.Email)
		}
		if resp.FullName != "Jane Doe" {
			t.Fatalf("full name = %q", resp.FullName)
		}

		got, err := svc.GetCustomer(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetCustomer: %v", err)
		}
		if got.Email != resp.Email {
			t.Fatalf("stored email = %q, want %q", got.Email, resp.Email)
		}
	})

	t.Run("rejects an already-used email", func(t *testing.T) {
		svc := newService(t)
		req := CreateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
		if _, err := svc.CreateCustomer(ctx, req); err != nil {
			t.Fatalf("first create: %v", err)
		}

		req.FirstName = "Janet"
		_, err := svc.CreateCustomer(ctx, req)
		if !errors.Is(err, customer.ErrEmailExists) {
			t.Fatalf("err = %v, want ErrEmailExists", err)
		}
		if !strings.Contains(err.Error(), "A customer with this email already exists") {
			t.Fatalf("message = %q", err.Error())
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.CreateCustomer(ctx, CreateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "not-an-email"})
		if !errors.Is(err, customer.ErrInvalidEmail) {
			t.Fatalf("err = %v, want ErrInvalidEmail", err)
		}
	})
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces contact information", func(t *testing.T) {
		svc := newService(t)
		created, err := svc.CreateCustomer(ctx, CreateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
		if err != nil {
			t.Fatalf("CreateCustomer: %v", err)
		}

		updated, err := svc.UpdateCustomer(ctx, created.ID, UpdateCustomerRequest{
			FirstName:   "Jane",
			LastName:    "Smith",
			Email:       "jane@example.com",
			PhoneNumber: "555-0102",
		})
		if err != nil {
			t.Fatalf("UpdateCustomer: %v", err)
		}
		if updated.FullName != "Jane Smith" || updated.PhoneNumber != "555-0102" {
			t.Fatalf("updated = %q / %q", updated.FullName, updated.PhoneNumber)
		}
	})

	t.Run("rejects changing the email to another customer's", func(t *testing.T) {
		svc := newService(t)
		jane, err := svc.CreateCustomer(ctx, CreateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
		if err != nil {
			t.Fatalf("create jane: %v", err)
		}
		if _, err := svc.CreateCustomer(ctx, CreateCustomerRequest{FirstName: "John", LastName: "Smith", Email: "john@example.com"}); err != nil {
			t.Fatalf("create john: %v", err)
		}

		_, err = svc.UpdateCustomer(ctx, jane.ID, UpdateCustomerRequest{
			FirstName: "Jane", LastName: "Doe", Email: "john@example.com",
		})
		if !errors.Is(err, customer.ErrEmailExists) {
			t.Fatalf("err = %v, want ErrEmailExists", err)
		}
	})

	t.Run("keeping the own email is not a conflict", func(t *testing.T) {
		svc := newService(t)
		jane, err := svc.CreateCustomer(ctx, CreateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
		if err != nil {
			t.Fatalf("create jane: %v", err)
		}
		if _, err := svc.UpdateCustomer(ctx, jane.ID, UpdateCustomerRequest{
			FirstName: "Jane", LastName: "Doe", Email: "JANE@example.com",
		}); err != nil {
			t.Fatalf("UpdateCustomer: %v", err)
		}
	})

	t.Run("unknown customer id", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.UpdateCustomer(ctx, "nope", UpdateCustomerRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
		if !errors.Is(err, customer.ErrCustomerNotFound) {
			t.Fatalf("err = %v, want ErrCustomerNotFound", err)
		}
	})
}

func TestSearchCustomers(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	seed := []CreateCustomerRequest{
		{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		{FirstName: "John", LastName: "Smith", Email: "john@example.com"},
		{FirstName: "Janet", LastName: "Jones", Email: "janet@example.com"},
	}
	for _, req := range seed {
		if _, err := svc.CreateCustomer(ctx, req); err != nil {
			t.Fatalf("seed %s: %v", req.Email, err)
		}
	}

	t.Run("matches the search term across name and email", func(t *testing.T) {
		page, err := svc.SearchCustomers(ctx, SearchCustomersRequest{SearchTerm: "jan", PageNumber: 1, PageSize: 10})
		if err != nil {
			t.Fatalf("SearchCustomers: %v", err)
		}
		if page.TotalCount != 2 {
			t.Fatalf("count = %d, want 2", page.TotalCount)
		}
	})

	t.Run("empty term returns everyone paged", func(t *testing.T) {
		page, err := svc.SearchCustomers(ctx, SearchCustomersRequest{PageNumber: 1, PageSize: 2})
		if err != nil {
			t.Fatalf("SearchCustomers: %v", err)
		}
		if page.TotalCount != 3 || len(page.Items) != 2 || page.TotalPages != 2 {
			t.Fatalf("page = %d items / %d total / %d pages", len(page.Items), page.TotalCount, page.TotalPages)
		}
		if !page.HasNextPage() {
			t.Fatal("first of two pages should have a next page")
		}
	})

	t.Run("rejects bad paging", func(t *testing.T) {
		if _, err := svc.SearchCustomers(ctx, SearchCustomersRequest{PageNumber: 0, PageSize: 10}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("page 0: %v", err)
		}
		if _, err := svc.SearchCustomers(ctx, SearchCustomersRequest{PageNumber: 1, PageSize: 0}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("size 0: %v", err)
		}
		if _, err := svc.SearchCustomers(ctx, SearchCustomersRequest{PageNumber: 1, PageSize: 101}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("size 101: %v", err)
		}
	})
}
