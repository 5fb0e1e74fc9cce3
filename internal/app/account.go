package app

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
	"github.com/drivebay/drivebay/internal/infra/audit"
)

// AccountService manages ledger accounts.
type AccountService struct {
	accounts domain.AccountRepository
	journal  *audit.Recorder
}

// NewAccountService wires the service. The journal may be nil.
func NewAccountService(accounts domain.AccountRepository, journal *audit.Recorder) *AccountService {
	return &AccountService{accounts: accounts, journal: journal}
}

// Open creates an account with an optional initial deposit.
func (s *AccountService) Open(ctx context.Context, ownerName string, initialBalance domain.Money) (AccountView, error) {
	account, err := domain.NewAccount(ownerName, initialBalance)
	if err != nil {
		return AccountView{}, err
	}
	if err := s.accounts.Add(ctx, account); err != nil {
		return AccountView{}, err
	}
	s.record(ctx, account.ID, "opened", fmt.Sprintf("owner=%s initial=%s", account.OwnerName, initialBalance))
	return newAccountView(account), nil
}

// Get returns one account with its transactions newest first.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (AccountView, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return AccountView{}, err
	}
	return newAccountView(account), nil
}

// List returns all accounts ordered by owner name.
func (s *AccountService) List(ctx context.Context) ([]AccountView, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, newAccountView(a))
	}
	return views, nil
}

// Credit deposits into an account.
func (s *AccountService) Credit(ctx context.Context, id uuid.UUID, amount domain.Money, description string) (AccountView, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return AccountView{}, err
	}
	if err := account.Credit(amount, description); err != nil {
		return AccountView{}, err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return AccountView{}, err
	}
	s.record(ctx, id, "credited", amount.String())
	return newAccountView(account), nil
}

// Debit withdraws from an account.
func (s *AccountService) Debit(ctx context.Context, id uuid.UUID, amount domain.Money, description string) (AccountView, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return AccountView{}, err
	}
	if err := account.Debit(amount, description); err != nil {
		return AccountView{}, err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return AccountView{}, err
	}
	s.record(ctx, id, "debited", amount.String())
	return newAccountView(account), nil
}

// TransferResult is both sides of a completed transfer.
type TransferResult struct {
	From AccountView `json:"from"`
	To   AccountView `json:"to"`
}

// Transfer moves funds between two accounts. The two sides persist
// sequentially: if the second write fails the first is not rolled back,
// and the error reports the partial state.
func (s *AccountService) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount domain.Money) (TransferResult, error) {
	from, err := s.accounts.Get(ctx, fromID)
	if err != nil {
		return TransferResult{}, err
	}
	to, err := s.accounts.Get(ctx, toID)
	if err != nil {
		return TransferResult{}, err
	}
	if err := from.TransferTo(to, amount); err != nil {
		return TransferResult{}, err
	}
	if err := s.accounts.Update(ctx, from); err != nil {
		return TransferResult{}, err
	}
	if err := s.accounts.Update(ctx, to); err != nil {
		return TransferResult{}, fmt.Errorf("transfer debited %s but crediting %s failed: %w", fromID, toID, err)
	}
	s.record(ctx, fromID, "transfer_out", fmt.Sprintf("to=%s amount=%s", toID, amount))
	s.record(ctx, toID, "transfer_in", fmt.Sprintf("from=%s amount=%s", fromID, amount))
	return TransferResult{From: newAccountView(from), To: newAccountView(to)}, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, account); err != nil {
		return err
	}
	s.record(ctx, id, "deleted", "")
	return nil
}

func (s *AccountService) record(ctx context.Context, id uuid.UUID, action, detail string) {
	if err := s.journal.Record(ctx, "account", id.String(), action, detail); err != nil {
		log.Printf("audit: account %s %s: %v", id, action, err)
	}
}
