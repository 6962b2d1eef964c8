package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence"
	"ordermanagement/infrastructure/persistence/mysql/po"
)

var productColumns = columnMap{
	product.FieldName:        "name",
	product.FieldDescription: "description",
	product.FieldCategory:    "category",
	product.FieldIsActive:    "is_active",
	product.FieldPriceAmount: "price_amount",
}

// ProductRepository is the MySQL product store.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var productPO po.ProductPO
	if err := r.getDB(ctx).First(&productPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NewNotFoundError(id)
		}
		return nil, err
	}
	return productPO.ToDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Find(&productPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(productPOs)
}

func (r *ProductRepository) Find(ctx context.Context, spec shared.Specification[*product.Product]) ([]*product.Product, error) {
	db, err := applySpec(r.getDB(ctx), spec, productColumns, nil)
	if err != nil {
		return nil, err
	}
	var productPOs []po.ProductPO
	if err := db.Find(&productPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(productPOs)
}

func (r *ProductRepository) FindOne(ctx context.Context, spec shared.Specification[*product.Product]) (*product.Product, error) {
	db, err := applySpec(r.getDB(ctx), spec, productColumns, nil)
	if err != nil {
		return nil, err
	}
	var productPO po.ProductPO
	if err := db.First(&productPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return productPO.ToDomain()
}

func (r *ProductRepository) Count(ctx context.Context, spec shared.Specification[*product.Product]) (int64, error) {
	db, err := applyCriteria(r.getDB(ctx).Model(&po.ProductPO{}), spec, productColumns)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductRepository) Exists(ctx context.Context, spec shared.Specification[*product.Product]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) Add(ctx context.Context, p *product.Product) error {
	return r.getDB(ctx).Create(po.FromProductDomain(p)).Error
}

func (r *ProductRepository) AddRange(ctx context.Context, products []*product.Product) error {
	if len(products) == 0 {
		return nil
	}
	productPOs := make([]po.ProductPO, len(products))
	for i, p := range products {
		productPOs[i] = *po.FromProductDomain(p)
	}
	return r.getDB(ctx).Create(&productPOs).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	return r.getDB(ctx).Save(po.FromProductDomain(p)).Error
}

func (r *ProductRepository) Delete(ctx context.Context, p *product.Product) error {
	return r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", p.ID()).Error
}

func (r *ProductRepository) toDomainList(productPOs []po.ProductPO) ([]*product.Product, error) {
	products := make([]*product.Product, len(productPOs))
	for i := range productPOs {
		p, err := productPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products[i] = p
	}
	return products, nil
}

var _ product.Repository = (*ProductRepository)(nil)
