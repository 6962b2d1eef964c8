package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence"
	"ordermanagement/infrastructure/persistence/mysql/po"
)

var customerColumns = columnMap{
	customer.FieldFirstName: "first_name",
	customer.FieldLastName:  "last_name",
	customer.FieldEmail:     "email",
	customer.FieldCreatedAt: "created_at",
}

// CustomerRepository is the MySQL customer store.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// getDB joins the transaction carried by ctx, if any.
func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var customerPO po.CustomerPO
	if err := r.getDB(ctx).First(&customerPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.NewNotFoundError(id)
		}
		return nil, err
	}
	return customerPO.ToDomain()
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	var customerPOs []po.CustomerPO
	if err := r.getDB(ctx).Find(&customerPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(customerPOs)
}

func (r *CustomerRepository) Find(ctx context.Context, spec shared.Specification[*customer.Customer]) ([]*customer.Customer, error) {
	db, err := applySpec(r.getDB(ctx), spec, customerColumns, nil)
	if err != nil {
		return nil, err
	}
	var customerPOs []po.CustomerPO
	if err := db.Find(&customerPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(customerPOs)
}

func (r *CustomerRepository) FindOne(ctx context.Context, spec shared.Specification[*customer.Customer]) (*customer.Customer, error) {
	db, err := applySpec(r.getDB(ctx), spec, customerColumns, nil)
	if err != nil {
		return nil, err
	}
	var customerPO po.CustomerPO
	if err := db.First(&customerPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, err
	}
	return customerPO.ToDomain()
}

func (r *CustomerRepository) Count(ctx context.Context, spec shared.Specification[*customer.Customer]) (int64, error) {
	db, err := applyCriteria(r.getDB(ctx).Model(&po.CustomerPO{}), spec, customerColumns)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, spec shared.Specification[*customer.Customer]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := r.getDB(ctx).Create(po.FromCustomerDomain(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return customer.NewEmailExistsError(c.Email().Value())
		}
		return err
	}
	return nil
}

func (r *CustomerRepository) AddRange(ctx context.Context, customers []*customer.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	customerPOs := make([]po.CustomerPO, len(customers))
	for i, c := range customers {
		customerPOs[i] = *po.FromCustomerDomain(c)
	}
	return r.getDB(ctx).Create(&customerPOs).Error
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := r.getDB(ctx).Save(po.FromCustomerDomain(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return customer.NewEmailExistsError(c.Email().Value())
		}
		return err
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, c *customer.Customer) error {
	return r.getDB(ctx).Delete(&po.CustomerPO{}, "id = ?", c.ID()).Error
}

func (r *CustomerRepository) toDomainList(customerPOs []po.CustomerPO) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, len(customerPOs))
	for i := range customerPOs {
		c, err := customerPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		customers[i] = c
	}
	return customers, nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
