package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(get func() *shop) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart on this device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCart(cmd.OutOrStdout(), get().cart)
			return nil
		},
	}

	var (
		qty         int
		size, color string
	)
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			p, err := s.api.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !p.InStock {
				return fmt.Errorf("%s is sold out", p.Name)
			}
			if err := s.cart.Add(p, qty, size, color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to cart (%d in cart)\n", p.Name, s.cart.ItemCount())
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "quantity", "q", 1, "how many")
	add.Flags().StringVar(&size, "size", "", "selected size")
	add.Flags().StringVar(&color, "color", "", "selected colour")

	update := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a product; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			if err := get().cart.UpdateQuantity(args[0], n); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), get().cart)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := get().cart.Remove(args[0]); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), get().cart)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return get().cart.Clear()
		},
	}

	cmd.AddCommand(add, update, remove, clearCmd)
	return cmd
}
