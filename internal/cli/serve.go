package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/drivebay/drivebay/internal/api"
	"github.com/drivebay/drivebay/internal/app"
	"github.com/drivebay/drivebay/internal/daemon"
	"github.com/drivebay/drivebay/internal/infra/audit"
	"github.com/drivebay/drivebay/internal/infra/gateway"
	"github.com/drivebay/drivebay/internal/infra/memstore"
)

var serveSeed bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load sample inventory before listening")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the marketplace API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}

	var journal *audit.Recorder
	if cfg.Audit.Enabled {
		journal, err = audit.Open(cfg.Audit.Dir)
		if err != nil {
			return err
		}
		defer journal.Close()
	}

	services := buildServices(cfg, journal)
	if serveSeed {
		if err := seedSampleData(cmd.Context(), services); err != nil {
			return err
		}
		log.Printf("sample inventory loaded")
	}

	server := api.NewServer(services)
	if cfg.API.Metrics {
		server.EnableMetrics()
	}

	httpServer := &http.Server{
		Addr:    cfg.API.Addr(),
		Handler: server.Handler(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("drivebay listening on http://%s", cfg.API.Addr())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// buildServices wires the full service graph over fresh in-memory stores.
func buildServices(cfg daemon.Config, journal *audit.Recorder) api.Services {
	accounts := memstore.NewAccountStore()
	cars := memstore.NewCarStore()
	listings := memstore.NewListingStore()
	payments := memstore.NewPaymentIntentStore()
	users := memstore.NewUserStore()
	provider := gateway.NewSimulatedProvider()

	userSvc := app.NewUserService(users, journal)
	return api.Services{
		Accounts:        app.NewAccountService(accounts, journal),
		Cars:            app.NewCarService(cars, journal),
		Marketplace:     app.NewMarketplaceService(listings, cars, journal),
		Payments:        app.NewPaymentService(payments, listings, cars, provider, journal),
		Recommendations: app.NewRecommendationService(cars, listings, cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit),
		Users:           userSvc,
		Auth:            app.NewAuthService(userSvc),
		Dashboard:       app.NewDashboardService(users, cars, listings),
		Journal:         journal,
	}
}
