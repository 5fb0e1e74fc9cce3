// Package domain contains the business entities of DriveBay: the account
// ledger, the car inventory, the marketplace listing and payment intent
// state machines, and the recommendation engine. It has zero infrastructure
// imports; everything here is a pure value or state object mutated through
// validating methods.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the direction of a ledger entry. Amounts are stored
// non-negative; the kind encodes the sign.
type TransactionKind string

const (
	TxAccountOpened TransactionKind = "AccountOpened"
	TxCredit        TransactionKind = "Credit"
	TxDebit         TransactionKind = "Debit"
)

// AccountTransaction is one immutable row of an account's ledger. The
// account exclusively owns its transaction list; entries are only ever
// appended.
type AccountTransaction struct {
	ID           uuid.UUID       `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Kind         TransactionKind `json:"kind"`
	Amount       Money           `json:"amount"`
	BalanceAfter Money           `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
}

// Account is the ledger entity. The balance always equals the opening
// amount plus the sum of credits minus the sum of debits, and never goes
// negative.
type Account struct {
	ID           uuid.UUID            `json:"id"`
	OwnerName    string               `json:"owner_name"`
	Balance      Money                `json:"balance"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Transactions []AccountTransaction `json:"transactions"`
}

const maxOwnerNameLen = 200

// NewAccount opens an account. It always records an AccountOpened entry
// with amount zero; a positive initial balance adds a second Credit entry.
// Both entries carry the post-opening balance.
func NewAccount(ownerName string, initialBalance Money) (*Account, error) {
	owner := strings.TrimSpace(ownerName)
	if owner == "" {
		return nil, validationf("owner name is required")
	}
	if len(owner) > maxOwnerNameLen {
		return nil, validationf("owner name cannot be longer than %d characters", maxOwnerNameLen)
	}
	if initialBalance.IsNegative() {
		return nil, validationf("starting balance cannot be negative")
	}

	now := time.Now().UTC()
	a := &Account{
		ID:        uuid.New(),
		OwnerName: owner,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.record(TxAccountOpened, Zero(), "Account created")
	if a.Balance.IsPositive() {
		a.record(TxCredit, a.Balance, "Initial deposit")
	}
	return a, nil
}

// Credit increases the balance and appends a Credit entry.
func (a *Account) Credit(amount Money, description string) error {
	if !amount.IsPositive() {
		return validationf("credit amount must be greater than zero")
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	a.record(TxCredit, amount, description)
	return nil
}

// Debit decreases the balance and appends a Debit entry. The balance is
// never allowed below zero.
func (a *Account) Debit(amount Money, description string) error {
	if !amount.IsPositive() {
		return validationf("debit amount must be greater than zero")
	}
	if amount.GreaterThan(a.Balance) {
		return conflictf("insufficient funds")
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	a.record(TxDebit, amount, description)
	return nil
}

// TransferTo debits this account and credits the recipient as one logical
// step. Both accounts must be persisted together by the caller; if either
// side fails validation, neither account is mutated.
func (a *Account) TransferTo(recipient *Account, amount Money) error {
	if recipient == nil {
		return validationf("recipient account is required")
	}
	if recipient.ID == a.ID {
		return conflictf("cannot transfer to the same account")
	}
	if err := a.Debit(amount, "Transfer to "+recipient.OwnerName); err != nil {
		return err
	}
	// Debit already validated the amount, so the credit cannot fail.
	return recipient.Credit(amount, "Transfer from "+a.OwnerName)
}

// record appends a ledger entry carrying the post-operation balance.
// Amounts are stored as absolute values; the kind encodes direction.
func (a *Account) record(kind TransactionKind, amount Money, description string) {
	a.Transactions = append(a.Transactions, AccountTransaction{
		ID:           uuid.New(),
		Timestamp:    time.Now().UTC(),
		Kind:         kind,
		Amount:       amount.Abs(),
		BalanceAfter: a.Balance,
		Description:  strings.TrimSpace(description),
	})
}

// Clone returns a deep copy, including the owned transaction list.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]AccountTransaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// CheckBalanceInvariant recomputes the balance from the ledger and reports
// a mismatch. Used by tests and the audit CLI.
func (a *Account) CheckBalanceInvariant() error {
	sum := Zero()
	for _, tx := range a.Transactions {
		switch tx.Kind {
		case TxAccountOpened, TxCredit:
			sum = sum.Add(tx.Amount)
		case TxDebit:
			sum = sum.Sub(tx.Amount)
		}
	}
	if !sum.Equal(a.Balance) {
		return fmt.Errorf("ledger sum %s does not match balance %s", sum, a.Balance)
	}
	return nil
}
