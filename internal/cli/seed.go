package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drivebay/drivebay/internal/api"
	"github.com/drivebay/drivebay/internal/daemon"
	"github.com/drivebay/drivebay/internal/domain"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the sample marketplace scenario and print a summary",
	Long: `Seed builds the full service graph in-process, loads the sample
inventory, sells one car through the payment provider and prints the
resulting dashboard. Useful as a smoke test of the whole stack.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}
	services := buildServices(cfg, nil)
	ctx := cmd.Context()

	if err := seedSampleData(ctx, services); err != nil {
		return err
	}

	// Sell the first listed car through the provider.
	listings, err := services.Marketplace.List(ctx)
	if err != nil {
		return err
	}
	if len(listings) > 0 {
		intent, err := services.Payments.Create(ctx, listings[0].ID, "USD")
		if err != nil {
			return err
		}
		if _, err := services.Payments.Confirm(ctx, intent.ID); err != nil {
			return err
		}
		if _, err := services.Marketplace.MarkAsSold(ctx, listings[0].ID); err != nil {
			return err
		}
		fmt.Printf("sold %s %s for %s (%s)\n",
			listings[0].Car.Model, intent.Currency, intent.Amount, intent.Status)
	}

	summary, err := services.Dashboard.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("users: %d  cars: %d  inventory value: %s  avg price: %s\n",
		summary.Users, summary.Cars, summary.TotalInventoryValue, summary.AverageCarPrice)
	fmt.Printf("listings: %d active / %d sold / %d archived\n",
		summary.ActiveListings, summary.SoldListings, summary.ArchivedListings)
	return nil
}

// seedSampleData loads a small showroom into the stores.
func seedSampleData(ctx context.Context, services api.Services) error {
	if _, err := services.Users.Create(ctx, "Alice", "Smith", "alice@example.com"); err != nil {
		return err
	}
	if _, err := services.Accounts.Open(ctx, "Alice Smith", domain.MoneyFromFloat(25_000)); err != nil {
		return err
	}

	samples := []struct {
		model string
		year  int
		price float64
		list  bool
	}{
		{"Civic", 2021, 18_000, true},
		{"Corolla", 2022, 21_500, true},
		{"Model 3", 2023, 34_990, false},
		{"Golf", 2018, 12_750, false},
	}
	for _, sample := range samples {
		car, err := services.Cars.Create(ctx, sample.model, sample.year, domain.MoneyFromFloat(sample.price))
		if err != nil {
			return err
		}
		if !sample.list {
			continue
		}
		if _, err := services.Marketplace.Create(ctx, car.ID, domain.MoneyFromFloat(sample.price*0.97), "dealer certified"); err != nil {
			return err
		}
	}
	return nil
}
