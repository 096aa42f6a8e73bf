package seed

import (
	"context"

	"go-couture-api/internal/product"

	"go.uber.org/zap"
)

// sampleProducts is a starter catalog for local development.
var sampleProducts = []product.WriteParams{
	{
		Name:        "Adire Silk Wrap Dress",
		Description: "Hand-dyed adire silk with a tie waist and fluttered sleeves.",
		Price:       "45000",
		Category:    string(product.CategoryDresses),
		Images:      []string{"https://res.cloudinary.com/demo/image/upload/couture/adire-wrap.jpg"},
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Navy", "Emerald"},
		InStock:     true,
		IsFeatured:  true,
	},
	{
		Name:        "Beaded Evening Gown",
		Description: "Floor-length tulle gown with hand-applied glass beading.",
		Price:       "185000",
		Category:    string(product.CategoryGowns),
		Images:      []string{"https://res.cloudinary.com/demo/image/upload/couture/beaded-gown.jpg"},
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Colors:      []string{"Gold", "Black"},
		InStock:     true,
		IsFeatured:  true,
	},
	{
		Name:        "Ankara Two-Piece Set",
		Description: "Cropped peplum top and high-waisted wide-leg trousers.",
		Price:       "38500",
		Category:    string(product.CategorySeparates),
		Images:      []string{"https://res.cloudinary.com/demo/image/upload/couture/ankara-set.jpg"},
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Multi"},
		InStock:     true,
	},
	{
		Name:        "Lace Bridal Gown",
		Description: "French lace bodice with a cathedral train. Made to measure.",
		Price:       "450000",
		Category:    string(product.CategoryBridal),
		Images:      []string{"https://res.cloudinary.com/demo/image/upload/couture/lace-bridal.jpg"},
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Cream", "White"},
		InStock:     false,
	},
}

// SeedProducts inserts the sample catalog into an empty products table.
func SeedProducts(ctx context.Context, repo product.Repository, logger *zap.Logger) error {
	counts, err := repo.CountByCategory(ctx)
	if err != nil {
		return err
	}
	if len(counts) > 0 {
		logger.Info("catalog not empty, skipping product seed")
		return nil
	}

	for _, p := range sampleProducts {
		row, err := repo.Create(ctx, p)
		if err != nil {
			return err
		}
		logger.Info("seeded product", zap.String("id", row.ID), zap.String("name", p.Name))
	}
	return nil
}
