package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests related to products
type ProductController interface {
	// GetAllProducts retrieves all products
	GetAllProducts(c *gin.Context)
	// GetProductByID retrieves a product by its ID
	GetProductByID(c *gin.Context)
	// CreateProduct creates a new product
	CreateProduct(c *gin.Context)
	// UpdateProduct updates an existing product
	UpdateProduct(c *gin.Context)
	// DeleteProduct deletes a product by its ID
	DeleteProduct(c *gin.Context)
}

type controller struct {
	service services.ProductService
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService) ProductController {
	return &controller{service: service}
}

func (c *controller) GetAllProducts(ctx *gin.Context) {
	products, err := c.service.GetAllProducts(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (c *controller) GetProductByID(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	product, err := c.service.GetProductByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (c *controller) CreateProduct(ctx *gin.Context) {
	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	product, err := c.service.CreateProduct(ctx.Request.Context(), input)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (c *controller) UpdateProduct(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	var update models.ProductUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondBadRequest(ctx, "Invalid request body")
		return
	}

	product, err := c.service.UpdateProduct(ctx.Request.Context(), id, update)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (c *controller) DeleteProduct(ctx *gin.Context) {
	id, ok := productID(ctx)
	if !ok {
		return
	}

	message, err := c.service.DeleteProduct(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// productID parses the :id path parameter, answering 400 when it is not a positive integer
func productID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(ctx, "Invalid product ID format")
		return 0, false
	}
	return uint(id), true
}
