package services

import (
	"gorm.io/gorm"

	"spendwize/internal/models"
	"spendwize/internal/reports"
	"spendwize/internal/store"
)

var (
	categoryColumns    = []string{"id", "type", "category_name", "created_at", "updated_at"}
	transactionColumns = []string{
		"id", "category_id", "category_name", "type", "payment_method", "notes",
		"amount", "currency", "transaction_date", "created_at", "updated_at",
	}
)

// NewCategoryTable returns the categories collection.
func NewCategoryTable(db *gorm.DB) *store.Collection[models.Category] {
	return store.NewCollection[models.Category](db, "categories", categoryColumns...)
}

// NewTransactionTable returns the transactions collection.
func NewTransactionTable(db *gorm.DB) *store.Collection[models.Transaction] {
	return store.NewCollection[models.Transaction](db, "transactions", transactionColumns...)
}

// NewEntryTable returns the transactions collection read through the
// narrow projection the report aggregators need.
func NewEntryTable(db *gorm.DB) *store.Collection[reports.Entry] {
	return store.NewCollection[reports.Entry](db, "transactions", transactionColumns...)
}
