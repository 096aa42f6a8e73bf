package product

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryDresses   Category = "dresses"
	CategoryGowns     Category = "gowns"
	CategorySeparates Category = "separates"
	CategoryBridal    Category = "bridal"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryDresses, CategoryGowns, CategorySeparates, CategoryBridal}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	InStock     bool      `json:"inStock"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CoverImage is the first image, or "" when the product has none.
func (p Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Input is the write payload for create and update.
type Input struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	InStock     bool     `json:"inStock"`
	IsFeatured  bool     `json:"isFeatured"`
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
)

// Filter narrows a product listing. Category "" or "all" means every category.
type Filter struct {
	Category     string
	OnlyInStock  bool
	OnlyFeatured bool
	Search       string
	Sort         Sort
	Limit        int
	Page         int
}

type Stats struct {
	Total      int64              `json:"total"`
	ByCategory map[Category]int64 `json:"byCategory"`
}
