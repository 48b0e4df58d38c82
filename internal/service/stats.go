package service

import (
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
)

// Thresholds for the stock level buckets. A product with no stock is out of
// stock, up to LowStockThreshold it is low, above that it is normal.
const LowStockThreshold = 2

// DefaultDistributionSize is how many categories the distribution chart shows.
const DefaultDistributionSize = 5

// StatsService derives read-only dashboard rollups from catalog and ledger
// state. It never mutates anything.
type StatsService struct {
	db      *gorm.DB
	tenants *TenantService
	log     *zap.Logger
}

// NewStatsService creates a stats service backed by the given database handle.
func NewStatsService(db *gorm.DB, tenants *TenantService, log *zap.Logger) *StatsService {
	return &StatsService{db: db, tenants: tenants, log: log}
}

// Overview summarizes the tenant's inventory for the dashboard header.
type Overview struct {
	TotalProducts     int     `json:"total_products"`
	TotalCategories   int     `json:"total_categories"`
	TotalTransactions int     `json:"total_transactions"`
	StockValue        float64 `json:"stock_value"`
}

// CategoryCount is one slice of the category distribution chart.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StockLevels is a total, disjoint partition of the tenant's products by
// stock quantity.
type StockLevels struct {
	Normal     int `json:"normal"`
	Low        int `json:"low"`
	OutOfStock int `json:"out_of_stock"`
}

// TransactionView is a ledger entry enriched at read time with the product
// details the transaction history screen displays. It is never persisted.
type TransactionView struct {
	model.StockTransaction
	ProductName  string  `json:"product_name"`
	CategoryName string  `json:"category_name"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
}

// GetOverview returns the headline counts and the total stock value
// (Σ price × quantity). TotalCategories counts the distinct category names
// actually used by products, so an empty category does not show up here.
func (s *StatsService) GetOverview(email string) (*Overview, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if result := s.db.Preload("Category").
		Where("tenant_id = ?", tenant.ID).
		Find(&products); result.Error != nil {
		return nil, result.Error
	}

	var transactionCount int64
	if result := s.db.Model(&model.StockTransaction{}).
		Where("tenant_id = ?", tenant.ID).
		Count(&transactionCount); result.Error != nil {
		return nil, result.Error
	}

	categoryNames := make(map[string]struct{})
	stockValue := 0.0
	for _, p := range products {
		categoryNames[p.Category.Name] = struct{}{}
		stockValue += p.Price * float64(p.Quantity)
	}

	return &Overview{
		TotalProducts:     len(products),
		TotalCategories:   len(categoryNames),
		TotalTransactions: int(transactionCount),
		StockValue:        stockValue,
	}, nil
}

// GetCategoryDistribution returns the product count per category, descending,
// truncated to topN entries (DefaultDistributionSize when topN <= 0). Ties
// keep the order the categories were stored in.
func (s *StatsService) GetCategoryDistribution(email string, topN int) ([]CategoryCount, error) {
	if topN <= 0 {
		topN = DefaultDistributionSize
	}

	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if result := s.db.Where("tenant_id = ?", tenant.ID).
		Order("id").
		Find(&categories); result.Error != nil {
		return nil, result.Error
	}

	counts := make([]CategoryCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		if result := s.db.Model(&model.Product{}).
			Where("tenant_id = ? AND category_id = ?", tenant.ID, category.ID).
			Count(&count); result.Error != nil {
			return nil, result.Error
		}
		counts = append(counts, CategoryCount{Name: category.Name, Count: int(count)})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts, nil
}

// GetStockLevels partitions the tenant's products into normal, low and
// out-of-stock buckets. The three buckets always sum to the product count.
func (s *StatsService) GetStockLevels(email string) (*StockLevels, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if result := s.db.Where("tenant_id = ?", tenant.ID).
		Find(&products); result.Error != nil {
		return nil, result.Error
	}

	levels := &StockLevels{}
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			levels.OutOfStock++
		case p.Quantity <= LowStockThreshold:
			levels.Low++
		default:
			levels.Normal++
		}
	}
	return levels, nil
}

// GetCriticalProducts returns the products at or below the low stock
// threshold, lowest quantity first.
func (s *StatsService) GetCriticalProducts(email string) ([]model.Product, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	result := s.db.Where("tenant_id = ? AND quantity <= ?", tenant.ID, LowStockThreshold).
		Order("quantity ASC").
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

// GetTransactionHistory returns the tenant's ledger entries newest first,
// each enriched with the product details for display. A limit <= 0 returns
// the full history.
func (s *StatsService) GetTransactionHistory(email string, limit int) ([]TransactionView, error) {
	tenant, err := s.tenants.Resolve(email)
	if err != nil {
		return nil, err
	}

	query := s.db.Preload("Product").Preload("Product.Category").
		Where("tenant_id = ?", tenant.ID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactions []model.StockTransaction
	if result := query.Find(&transactions); result.Error != nil {
		return nil, result.Error
	}

	views := make([]TransactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, TransactionView{
			StockTransaction: tx,
			ProductName:      tx.Product.Name,
			CategoryName:     tx.Product.Category.Name,
			Unit:             tx.Product.Unit,
			Price:            tx.Product.Price,
			ImageURL:         tx.Product.ImageURL,
		})
	}
	return views, nil
}
