// Command shop is the terminal storefront. It keeps the cart on this
// device, runs checkout through the payment widget and hosts the admin
// product console.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/cart"
	"go-couture-api/internal/client"
	"go-couture-api/internal/config"
	"go-couture-api/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type shop struct {
	api       *client.Client
	cart      *cart.Store
	sessions  *session.Manager
	admin     *client.Client
	logger    *zap.Logger
	whatsapp  string
	publicKey string
}

func homeDir() (string, error) {
	if dir := os.Getenv("SHOP_HOME"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "couture"), nil
}

func newShop(verbose bool) (*shop, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = bootstrap.NewLogger("development"); err != nil {
			return nil, err
		}
	} else {
		zap.ReplaceGlobals(logger)
	}

	home, err := homeDir()
	if err != nil {
		return nil, err
	}

	apiURL := os.Getenv("SHOP_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:" + cfg.Port
	}

	api := client.New(apiURL, client.WithLogger(logger))
	store := cart.NewStore(cart.NewFileSlot(home), logger)
	store.Load()

	mgr := session.NewManager(api, session.NewFileStore(home), logger)

	return &shop{
		api:       api,
		cart:      store,
		sessions:  mgr,
		admin:     api.WithTokens(mgr),
		logger:    logger,
		whatsapp:  cfg.WhatsAppNumber,
		publicKey: cfg.Payment.PublicKey,
	}, nil
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		s       *shop
	)

	root := &cobra.Command{
		Use:           "shop",
		Short:         "MBJ Exclusive storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			s, err = newShop(verbose)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if s != nil {
				s.sessions.Close()
				_ = s.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	get := func() *shop { return s }
	root.AddCommand(
		newProductsCmd(get),
		newCartCmd(get),
		newCheckoutCmd(get),
		newBookCmd(get),
		newAdminCmd(get),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
