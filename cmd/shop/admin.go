package main

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"

	autherrors "go-couture-api/internal/auth/errors"
	"go-couture-api/internal/editor"
	"go-couture-api/internal/product"

	"github.com/spf13/cobra"
)

func newAdminCmd(get func() *shop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Store administration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra runs only the nearest PersistentPreRunE
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			err := get().sessions.Init(cmd.Context())
			if errors.Is(err, autherrors.ErrSessionExpired) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Your session has expired, please login again.")
				return nil
			}
			return err
		},
	}

	cmd.AddCommand(
		newLoginCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newStatsCmd(get),
		newAdminProductsCmd(get),
	)
	return cmd
}

func newLoginCmd(get func() *shop) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as the store admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SHOP_ADMIN_PASSWORD")
			}
			s, err := get().sessions.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", s.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (or SHOP_ADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(get func() *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().sessions.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(get func() *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := get().admin.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", me.Name, me.Email, me.Role)
			return nil
		},
	}
}

func newStatsCmd(get func() *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Product counts per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := get().admin.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total products: %d\n", stats.Total)
			for _, c := range product.Categories {
				fmt.Fprintf(out, "  %-10s %d\n", c, stats.ByCategory[c])
			}
			return nil
		},
	}
}

func newAdminProductsCmd(get func() *shop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the catalog",
	}

	var search, category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List every product, including sold out ones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl := editor.NewProductList(get().admin, get().logger)
			defer pl.Close()
			pl.SetFilter(search, category)

			products, err := pl.Reload(cmd.Context())
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "match product names")
	list.Flags().StringVar(&category, "category", "all", "category filter")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !confirm(cmd.InOrStdin(), out, "Are you sure you want to delete this product? [y/N] ") {
				return nil
			}

			pl := editor.NewProductList(get().admin, get().logger)
			defer pl.Close()
			if _, err := pl.Reload(cmd.Context()); err != nil {
				return err
			}
			if err := pl.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(out, "Product deleted")
			return nil
		},
	}

	cmd.AddCommand(list, del, newProductFormCmd(get, false), newProductFormCmd(get, true))
	return cmd
}

type formFlags struct {
	name, description, price, category string
	sizes, colors, images              []string
	removeImages                       []int
	featured, outOfStock               bool
}

func newProductFormCmd(get func() *shop, edit bool) *cobra.Command {
	var ff formFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
	}
	if edit {
		cmd.Use = "edit <id>"
		cmd.Short = "Edit a product; only the given fields change"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s := get()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var e *editor.Editor
		if edit {
			p, err := s.admin.AdminProduct(ctx, args[0])
			if err != nil {
				return err
			}
			e = editor.NewEdit(p, s.admin, s.admin, s.logger)
		} else {
			e = editor.NewCreate(s.admin, s.admin, s.logger)
		}

		flags := cmd.Flags()
		if err := e.Edit(func(d *editor.Draft) {
			if flags.Changed("name") {
				d.Name = ff.name
			}
			if flags.Changed("description") {
				d.Description = ff.description
			}
			if flags.Changed("price") {
				d.Price = ff.price
			}
			if flags.Changed("category") {
				if c, ok := product.ParseCategory(ff.category); ok {
					d.Category = c
				}
			}
			if flags.Changed("featured") {
				d.IsFeatured = ff.featured
			}
			if flags.Changed("out-of-stock") {
				d.InStock = !ff.outOfStock
			}
		}); err != nil {
			return err
		}
		for _, size := range ff.sizes {
			_ = e.ToggleSize(size)
		}
		for _, color := range ff.colors {
			_ = e.ToggleColor(color)
		}

		// highest index first so earlier indexes stay valid
		sort.Sort(sort.Reverse(sort.IntSlice(ff.removeImages)))
		for _, i := range ff.removeImages {
			if err := e.RemoveImage(i); err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
		}

		files, closeAll, err := openImages(ff.images)
		if err != nil {
			return err
		}
		defer closeAll()
		for _, r := range e.AddImages(ctx, files) {
			if r.Error != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Name, r.Error)
				continue
			}
			fmt.Fprintf(out, "Uploaded %s\n", r.Name)
		}

		p, err := e.Submit(ctx)
		if err != nil {
			return err
		}
		if edit {
			fmt.Fprintln(out, "Product updated")
		} else {
			fmt.Fprintln(out, "Product created")
		}
		printProduct(out, p)
		return nil
	}

	f := cmd.Flags()
	f.StringVar(&ff.name, "name", "", "product name")
	f.StringVar(&ff.description, "description", "", "description")
	f.StringVar(&ff.price, "price", "", "price in Naira")
	f.StringVar(&ff.category, "category", string(product.CategoryDresses), "dresses, gowns, separates or bridal")
	f.StringSliceVar(&ff.sizes, "size", nil, fmt.Sprintf("toggle a size %v", editor.Sizes))
	f.StringSliceVar(&ff.colors, "color", nil, "toggle a colour")
	f.StringSliceVar(&ff.images, "image", nil, "image file to upload")
	f.IntSliceVar(&ff.removeImages, "remove-image", nil, "index of an image to remove (0 is the cover)")
	f.BoolVar(&ff.featured, "featured", false, "show on the home page")
	f.BoolVar(&ff.outOfStock, "out-of-stock", false, "mark as sold out")
	return cmd
}

func openImages(paths []string) ([]editor.File, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	files := make([]editor.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, editor.File{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Size:        info.Size(),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
