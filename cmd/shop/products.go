package main

import (
	"go-couture-api/internal/product"

	"github.com/spf13/cobra"
)

func newProductsCmd(get func() *shop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var f product.Filter
	var sort string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.Sort = product.Sort(sort)
			products, err := get().api.Products(cmd.Context(), f)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	list.Flags().StringVar(&f.Category, "category", "", "dresses, gowns, separates or bridal")
	list.Flags().StringVar(&f.Search, "search", "", "match product names")
	list.Flags().StringVar(&sort, "sort", string(product.SortNewest), "newest, price-asc, price-desc, name-asc or name-desc")
	list.Flags().BoolVar(&f.OnlyFeatured, "featured", false, "featured products only")
	list.Flags().BoolVar(&f.OnlyInStock, "in-stock", false, "hide sold out products")
	list.Flags().IntVar(&f.Limit, "limit", 20, "page size")
	list.Flags().IntVar(&f.Page, "page", 1, "page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := get().api.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProduct(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
