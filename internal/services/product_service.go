package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/events"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	log "github.com/sirupsen/logrus"
)

// ProductService provides the product catalog operations
type ProductService interface {
	// CreateProduct validates and stores a new product
	CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error)
	// GetAllProducts retrieves all products
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	// GetProductByID retrieves a product by its ID
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	// UpdateProduct merges the supplied fields onto an existing product
	UpdateProduct(ctx context.Context, id uint, update models.ProductUpdate) (*models.Product, error)
	// DeleteProduct removes a product and returns a confirmation message
	DeleteProduct(ctx context.Context, id uint) (string, error)
}

type productService struct {
	products  repository.ProductRepository
	publisher events.Publisher
}

// NewProductService creates a new instance of ProductService.
// A nil publisher disables change events.
func NewProductService(products repository.ProductRepository, publisher events.Publisher) ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &productService{products: products, publisher: publisher}
}

func (s *productService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if input.Price == nil || input.Stock == nil {
		return nil, invalidProduct("price and stock are required", missingField(input))
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Insert(ctx, product); err != nil {
		log.WithError(err).Error("Failed to create product")
		return nil, newError(ErrInternal, "Failed to create product")
	}

	s.publish(ctx, events.ProductCreated, product)
	return product, nil
}

func (s *productService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch products")
		return nil, newError(ErrInternal, "Failed to fetch products")
	}
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, productNotFound(id)
		}
		log.WithError(err).WithField("product_id", id).Error("Failed to retrieve product")
		return nil, newError(ErrInternal, "Failed to retrieve product")
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(product)
	product.Name = strings.TrimSpace(product.Name)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		log.WithError(err).WithField("product_id", id).Error("Failed to update product")
		return nil, newError(ErrInternal, "Failed to update product")
	}

	s.publish(ctx, events.ProductUpdated, product)
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) (string, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", productNotFound(id)
		}
		log.WithError(err).WithField("product_id", id).Error("Failed to delete product")
		return "", newError(ErrInternal, "Failed to delete product")
	}

	s.publish(ctx, events.ProductDeleted, product)
	return fmt.Sprintf("Product with ID %d deleted successfully", id), nil
}

// publish emits a change event; delivery failures are logged and never fail the request
func (s *productService) publish(ctx context.Context, eventType string, product *models.Product) {
	event := events.ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event":      eventType,
			"product_id": product.ID,
		}).Warn("Failed to publish product event")
	}
}

func validateProduct(p *models.Product) error {
	switch {
	case p.Name == "":
		return invalidProduct("name must not be empty", "name")
	case p.Price < 0:
		return invalidProduct("price must be greater than or equal to 0", "price")
	case p.Stock < 0:
		return invalidProduct("stock must be greater than or equal to 0", "stock")
	}
	return nil
}

func invalidProduct(message, field string) *Error {
	return newError(ErrInvalidInput, "%s", message).
		withCode(models.ErrProductInvalidData).
		withDetails(map[string]interface{}{"field": field})
}

func missingField(input models.ProductInput) string {
	if input.Price == nil {
		return "price"
	}
	return "stock"
}

func productNotFound(id uint) *Error {
	return newError(ErrNotFound, "Product with ID %d not found", id).withCode(models.ErrProductNotFound)
}
