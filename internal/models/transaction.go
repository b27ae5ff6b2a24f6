package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// CategoryType returns the category type that may be attached to t.
func (t TransactionType) CategoryType() CategoryType {
	return CategoryType(t)
}

// PaymentMethod is the free label describing how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodDebitCard  PaymentMethod = "debitcard"
	PaymentMethodCreditCard PaymentMethod = "creditcard"
	PaymentMethodUPI        PaymentMethod = "upi"
)

// PaymentMethods lists the methods offered by the transaction form.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodDebitCard,
	PaymentMethodCreditCard,
	PaymentMethodUPI,
}

// DefaultCurrency is applied when a transaction is submitted without one.
const DefaultCurrency = "INR"

// Currencies lists the currency labels offered by the transaction form.
// Amounts are never converted between them.
var Currencies = []string{"INR", "USD", "EUR", "GBP", "JPY"}

// Transaction is a single income or expense record.
//
// CategoryName is a snapshot of the category's name taken whenever the
// transaction is written. Renaming the category later does not touch it.
type Transaction struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID      *string         `gorm:"type:uuid" json:"category_id"`
	CategoryName    *string         `json:"category_name"`
	Type            TransactionType `gorm:"not null" json:"type"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Notes           string          `json:"notes"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Currency        string          `gorm:"size:3;not null;default:INR" json:"currency"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
}

// OwnerID implements store.Owned.
func (t Transaction) OwnerID() string { return t.UserID }

// CalendarDate strips the time of day, keeping the calendar day t falls on
// in its own location, and returns it as UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
