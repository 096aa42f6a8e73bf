package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-couture-api/internal/checkout"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(get func() *shop) *cobra.Command {
	var c checkout.Customer
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart and send the order to the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := get()
			out := cmd.OutOrStdout()
			handoff := checkout.NewHandoff(s.cart, s.api, s.whatsapp, s.publicKey, s.logger)

			printCart(out, s.cart)
			sess, err := handoff.Begin(cmd.Context(), c)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\nPayment reference %s for %s\n", sess.Reference, checkout.FormatNaira(s.cart.TotalDecimal()))
			if sess.RedirectURL != "" {
				fmt.Fprintf(out, "Open this link to pay: %s\n", sess.RedirectURL)
			}

			if !confirm(cmd.InOrStdin(), out, "Payment completed? [y/N] ") {
				handoff.Cancel(sess.Reference)
				fmt.Fprintln(out, "Payment cancelled. Your cart has been kept.")
				return nil
			}

			res, err := handoff.Complete(cmd.Context(), sess.Reference)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nThank you! Send your order to the store on WhatsApp:")
			fmt.Fprintln(out, res.DeepLink)
			fmt.Fprintln(out)
			fmt.Fprintln(out, res.Summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "full name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	return cmd
}

func newBookCmd(get func() *shop) *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Book a fitting appointment on WhatsApp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), checkout.BookingLink(get().whatsapp))
			return nil
		},
	}
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
