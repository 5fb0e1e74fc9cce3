package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/memstore"
)

func money(f float64) domain.Money { return domain.MoneyFromFloat(f) }

// fixture wires every service over fresh in-memory stores and a stub
// gateway, with auditing off.
type fixture struct {
	accounts *memstore.AccountStore
	cars     *memstore.CarStore
	listings *memstore.ListingStore
	payments *memstore.PaymentIntentStore
	users    *memstore.UserStore
	gateway  *stubGateway

	accountSvc     *AccountService
	carSvc         *CarService
	marketplaceSvc *MarketplaceService
	paymentSvc     *PaymentService
	recommendSvc   *RecommendationService
	userSvc        *UserService
	authSvc        *AuthService
	dashboardSvc   *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		accounts: memstore.NewAccountStore(),
		cars:     memstore.NewCarStore(),
		listings: memstore.NewListingStore(),
		payments: memstore.NewPaymentIntentStore(),
		users:    memstore.NewUserStore(),
		gateway:  &stubGateway{},
	}
	f.accountSvc = NewAccountService(f.accounts, nil)
	f.carSvc = NewCarService(f.cars, nil)
	f.marketplaceSvc = NewMarketplaceService(f.listings, f.cars, nil)
	f.paymentSvc = NewPaymentService(f.payments, f.listings, f.cars, f.gateway, nil)
	f.recommendSvc = NewRecommendationService(f.cars, f.listings, 0, 0)
	f.userSvc = NewUserService(f.users, nil)
	f.authSvc = NewAuthService(f.userSvc)
	f.dashboardSvc = NewDashboardService(f.users, f.cars, f.listings)
	return f
}

func (f *fixture) addCar(t *testing.T, model string, year int, price float64) CarView {
	t.Helper()
	view, err := f.carSvc.Create(context.Background(), model, year, money(price))
	require.NoError(t, err)
	return view
}

func (f *fixture) addListing(t *testing.T, carID uuid.UUID, price float64) ListingView {
	t.Helper()
	view, err := f.marketplaceSvc.Create(context.Background(), carID, money(price), "")
	require.NoError(t, err)
	return view
}

// stubGateway counts provider calls and can fail each operation on demand.
type stubGateway struct {
	mu sync.Mutex

	createErr  error
	confirmErr error
	cancelErr  error

	creates  int
	confirms int
	cancels  int
}

func (g *stubGateway) CreateIntent(ctx context.Context, amount domain.Money, currency, description string) (domain.GatewayCreateResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.creates++
	if g.createErr != nil {
		return domain.GatewayCreateResult{}, g.createErr
	}
	id := "pi_stub_" + uuid.NewString()
	return domain.GatewayCreateResult{ProviderIntentID: id, ClientSecret: id + "_secret"}, nil
}

func (g *stubGateway) ConfirmIntent(ctx context.Context, providerIntentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.confirms++
	return g.confirmErr
}

func (g *stubGateway) CancelIntent(ctx context.Context, providerIntentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancels++
	return g.cancelErr
}

// failingAccountRepo wraps a real store and fails Update for one account.
type failingAccountRepo struct {
	domain.AccountRepository
	failID uuid.UUID
}

var errInjected = errors.New("injected repository failure")

func (r *failingAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	if account.ID == r.failID {
		return errInjected
	}
	return r.AccountRepository.Update(ctx, account)
}
