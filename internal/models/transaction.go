package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind partitions all aggregation into money coming in and
// money going out.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// Transaction represents a single income or expense event in the ledger.
type Transaction struct {
	DefaultModel
	OwnerID       uuid.UUID       `json:"ownerId" gorm:"index"`
	Kind          TransactionKind `json:"kind" gorm:"index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category      string          `json:"category" gorm:"index"`
	Date          types.Date      `json:"date" gorm:"index"`
	PaymentMethod string          `json:"paymentMethod"`
	Merchant      string          `json:"merchant,omitempty"`
	Description   string          `json:"description,omitempty"`
}

var (
	ErrTransactionAmountNegative = errors.New("transaction amounts must not be negative")
	ErrTransactionKindInvalid    = errors.New("transaction kind must be income or expense")
)

// BeforeSave validates the transaction and normalizes its strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Kind.Valid() {
		return ErrTransactionKindInvalid
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if t.Date.IsZero() {
		t.Date = types.DateOf(time.Now())
	}

	t.Category = strings.TrimSpace(t.Category)
	t.PaymentMethod = strings.TrimSpace(t.PaymentMethod)
	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Description = strings.TrimSpace(t.Description)

	return nil
}
