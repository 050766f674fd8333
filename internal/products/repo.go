package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/pkg/db/models"
	"github.com/printlabth/printlab-backend/pkg/enums"
)

// Filters narrows catalog listings.
type Filters struct {
	Category *enums.ProductCategory
	Featured *bool
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	List(ctx context.Context, filters Filters) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters Filters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.Category != nil {
		query = query.Where("category = ?", filters.Category.String())
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}

	var products []models.Product
	if err := query.Order("created_at DESC, name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
