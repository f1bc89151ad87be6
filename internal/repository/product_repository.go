package repository

import (
	"context"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"gorm.io/gorm"
)

// ProductRepository provides access to the products table
type ProductRepository interface {
	// ListAll returns every product ordered by id
	ListAll(ctx context.Context) ([]models.Product, error)
	// FindByID returns the product with the given id or ErrNotFound
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	// Insert persists a new product and fills its generated id
	Insert(ctx context.Context, product *models.Product) error
	// Update writes every column of an existing product
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the product with the given id or returns ErrNotFound
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a gorm backed ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) Insert(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error)
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
