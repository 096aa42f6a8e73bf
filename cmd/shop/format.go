package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go-couture-api/internal/cart"
	"go-couture-api/internal/checkout"
	"go-couture-api/internal/product"

	"github.com/shopspring/decimal"
)

func naira(f float64) string {
	return checkout.FormatNaira(decimal.NewFromFloat(f))
}

func printProducts(w io.Writer, products []product.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "sold out"
		}
		if p.IsFeatured {
			stock += " ★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, naira(p.Price), stock)
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p product.Product) {
	fmt.Fprintf(w, "%s  (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "%s · %s\n\n", p.Category, naira(p.Price))
	fmt.Fprintln(w, p.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sizes:  %s\n", strings.Join(p.Sizes, ", "))
	fmt.Fprintf(w, "Colors: %s\n", strings.Join(p.Colors, ", "))
	if cover := p.CoverImage(); cover != "" {
		fmt.Fprintf(w, "Cover:  %s\n", cover)
		for _, img := range p.Images[1:] {
			fmt.Fprintf(w, "Image:  %s\n", img)
		}
	}
}

func printCart(w io.Writer, store *cart.Store) {
	lines := store.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tSIZE\tCOLOR\tQTY\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			l.Product.ID, l.Product.Name, dash(l.SelectedSize), dash(l.SelectedColor),
			l.Quantity, checkout.FormatNaira(l.Subtotal()))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d item(s) · Total %s\n", store.ItemCount(), checkout.FormatNaira(store.TotalDecimal()))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
