// Package app orchestrates domain entities over the repository and
// gateway contracts. Each operation loads entities, calls their methods,
// persists the result and returns a read-only view.
package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
)

// ─── Views ──────────────────────────────────────────────────────────────────
// Views are the shapes callers see. They are plain data: mutating a view
// never touches stored state.

// TransactionView is one ledger entry.
type TransactionView struct {
	ID           uuid.UUID              `json:"id"`
	Timestamp    time.Time              `json:"timestamp"`
	Kind         domain.TransactionKind `json:"kind"`
	Amount       domain.Money           `json:"amount"`
	BalanceAfter domain.Money           `json:"balance_after"`
	Description  string                 `json:"description,omitempty"`
}

// AccountView is an account with its transactions newest first.
type AccountView struct {
	ID           uuid.UUID         `json:"id"`
	OwnerName    string            `json:"owner_name"`
	Balance      domain.Money      `json:"balance"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Transactions []TransactionView `json:"transactions"`
}

// CarView is a car in inventory.
type CarView struct {
	ID        uuid.UUID    `json:"id"`
	Model     string       `json:"model"`
	Year      int          `json:"year"`
	Price     domain.Money `json:"price"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ListingCarView is the car summary embedded in a listing view. When the
// referenced car no longer exists the model reads "Unknown".
type ListingCarView struct {
	ID    uuid.UUID `json:"id"`
	Model string    `json:"model"`
	Year  int       `json:"year"`
}

// ListingView is a listing joined with its car summary.
type ListingView struct {
	ID          uuid.UUID            `json:"id"`
	Car         ListingCarView       `json:"car"`
	AskingPrice domain.Money         `json:"asking_price"`
	Description string               `json:"description,omitempty"`
	Status      domain.ListingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// PaymentIntentView is a payment intent including its provider handles.
type PaymentIntentView struct {
	ID               uuid.UUID            `json:"id"`
	ListingID        uuid.UUID            `json:"listing_id"`
	Amount           domain.Money         `json:"amount"`
	Currency         string               `json:"currency"`
	Status           domain.PaymentStatus `json:"status"`
	ProviderIntentID string               `json:"provider_intent_id,omitempty"`
	ClientSecret     string               `json:"client_secret,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// RecommendedCarView pairs a car with its score as a fixed two-decimal
// string.
type RecommendedCarView struct {
	Car   CarView `json:"car"`
	Score string  `json:"score"`
}

// UserView is a registered user.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardView summarizes the marketplace at a point in time.
type DashboardView struct {
	Users               int          `json:"users"`
	Cars                int          `json:"cars"`
	TotalInventoryValue domain.Money `json:"total_inventory_value"`
	AverageCarPrice     domain.Money `json:"average_car_price"`
	ActiveListings      int          `json:"active_listings"`
	SoldListings        int          `json:"sold_listings"`
	ArchivedListings    int          `json:"archived_listings"`
	GeneratedAt         time.Time    `json:"generated_at"`
}

// ─── Mappers ────────────────────────────────────────────────────────────────

func newAccountView(a *domain.Account) AccountView {
	txs := make([]TransactionView, 0, len(a.Transactions))
	// Entities record oldest first; views show newest first.
	for i := len(a.Transactions) - 1; i >= 0; i-- {
		t := a.Transactions[i]
		txs = append(txs, TransactionView{
			ID:           t.ID,
			Timestamp:    t.Timestamp,
			Kind:         t.Kind,
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			Description:  t.Description,
		})
	}
	return AccountView{
		ID:           a.ID,
		OwnerName:    a.OwnerName,
		Balance:      a.Balance,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		Transactions: txs,
	}
}

func newCarView(c *domain.Car) CarView {
	return CarView{
		ID:        c.ID,
		Model:     c.Model,
		Year:      c.Year,
		Price:     c.Price,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newListingView(l *domain.Listing, car *domain.Car) ListingView {
	summary := ListingCarView{ID: l.CarID, Model: "Unknown"}
	if car != nil {
		summary.Model = car.Model
		summary.Year = car.Year
	}
	return ListingView{
		ID:          l.ID,
		Car:         summary,
		AskingPrice: l.AskingPrice,
		Description: l.Description,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func newPaymentIntentView(p *domain.PaymentIntent) PaymentIntentView {
	return PaymentIntentView{
		ID:               p.ID,
		ListingID:        p.ListingID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           p.Status,
		ProviderIntentID: p.ProviderIntentID,
		ClientSecret:     p.ClientSecret,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func newUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
