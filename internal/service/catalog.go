package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// CatalogService owns category and product CRUD. Every operation resolves the
// caller's tenant first; ids belonging to another tenant behave exactly like
// ids that do not exist.
type CatalogService struct {
	db      *gorm.DB
	tenants *TenantService
	log     *zap.Logger
}

// NewCatalogService creates a catalog service backed by the given database handle.
func NewCatalogService(db *gorm.DB, tenants *TenantService, log *zap.Logger) *CatalogService {
	return &CatalogService{db: db, tenants: tenants, log: log}
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	ImageURL    string  `json:"image_url"`
	CategoryID  uint    `json:"category_id"`
}

// ProductWithCategory is a product enriched with its category's display name.
type ProductWithCategory struct {
	model.Product
	CategoryName string `json:"category_name"`
}

// CreateCategory creates a category under the caller's tenant.
func (s *CatalogService) CreateCategory(email, name, description string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	category := model.Category{
		Name:        name,
		Description: description,
		TenantID:    tenant.ID,
	}
	if result := s.db.Create(&category); result.Error != nil {
		return nil, result.Error
	}

	s.log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.Uint("tenant_id", tenant.ID))
	return &category, nil
}

// UpdateCategory updates a category's name and description. The tenant scope
// predicate sits in the same statement as the update, so a cross-tenant id can
// never be written to.
func (s *CatalogService) UpdateCategory(email string, id uint, name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return err
	}

	result := s.db.Model(&model.Category{}).
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Products still referencing it keep their
// category id; the reference is left dangling rather than cascaded.
func (s *CatalogService) DeleteCategory(email string, id uint) error {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND tenant_id = ?", id, tenant.ID).
		Delete(&model.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Info("Category deleted",
		zap.Uint("category_id", id),
		zap.Uint("tenant_id", tenant.ID))
	return nil
}

// ListCategories returns all categories of the caller's tenant.
func (s *CatalogService) ListCategories(email string) ([]model.Category, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	result := s.db.Where("tenant_id = ?", tenant.ID).Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// CreateProduct creates a product under the caller's tenant. The category must
// belong to the same tenant.
func (s *CatalogService) CreateProduct(email string, in ProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: product price must be greater than zero", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	// The category reference must resolve under the same tenant.
	var count int64
	if result := s.db.Model(&model.Category{}).
		Where("id = ? AND tenant_id = ?", in.CategoryID, tenant.ID).
		Count(&count); result.Error != nil {
		return nil, result.Error
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, in.CategoryID)
	}

	product := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Unit:        in.Unit,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		TenantID:    tenant.ID,
	}
	if result := s.db.Create(&product); result.Error != nil {
		return nil, result.Error
	}

	s.log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Uint("tenant_id", tenant.ID))
	return &product, nil
}

// UpdateProduct overwrites the writable fields of a product, quantity
// included. The direct quantity overwrite bypasses the ledger on purpose: it
// is the correction escape hatch and produces no transaction row.
func (s *CatalogService) UpdateProduct(email string, id uint, in ProductInput) error {
	if in.Price <= 0 {
		return fmt.Errorf("%w: product price must be greater than zero", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return err
	}

	result := s.db.Model(&model.Product{}).
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		Updates(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"quantity":    in.Quantity,
			"unit":        in.Unit,
			"image_url":   in.ImageURL,
			"category_id": in.CategoryID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. Ledger rows referencing it are audit data
// and stay in place. A scope mismatch is reported as ErrNotFound rather than
// silently succeeding.
func (s *CatalogService) DeleteProduct(email string, id uint) error {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND tenant_id = ?", id, tenant.ID).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Info("Product deleted",
		zap.Uint("product_id", id),
		zap.Uint("tenant_id", tenant.ID))
	return nil
}

// GetProduct returns a single product with its category name.
func (s *CatalogService) GetProduct(email string, id uint) (*ProductWithCategory, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var product model.Product
	result := s.db.Preload("Category").
		Where("id = ? AND tenant_id = ?", id, tenant.ID).
		First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	return &ProductWithCategory{Product: product, CategoryName: product.Category.Name}, nil
}

// ListProducts returns all products of the caller's tenant, each enriched with
// its category name.
func (s *CatalogService) ListProducts(email string) ([]ProductWithCategory, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	result := s.db.Preload("Category").
		Where("tenant_id = ?", tenant.ID).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	enriched := make([]ProductWithCategory, 0, len(products))
	for _, p := range products {
		enriched = append(enriched, ProductWithCategory{
			Product:      p,
			CategoryName: p.Category.Name,
		})
	}
	return enriched, nil
}
