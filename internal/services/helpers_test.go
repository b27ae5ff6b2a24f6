package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"spendwize/internal/identity"
	"spendwize/internal/models"
	"spendwize/internal/store"
)

// faultyTable wraps a Table, counting writes and optionally failing them.
type faultyTable[T any] struct {
	store.Table[T]
	inserts   int
	insertErr error
	selectErr error
}

func (f *faultyTable[T]) Insert(ctx context.Context, userID string, records []T) ([]T, error) {
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return f.Table.Insert(ctx, userID, records)
}

func (f *faultyTable[T]) Select(ctx context.Context, userID string, q store.Query) ([]T, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.Table.Select(ctx, userID, q)
}

func newTestCategoryCache(t *testing.T) *CategoryCache {
	t.Helper()
	cache, err := NewCategoryCache(100)
	if err != nil {
		t.Fatalf("failed to create category cache: %v", err)
	}
	t.Cleanup(cache.Close)
	return cache
}

// testServices bundles the category and transaction services over db with
// fault-injectable tables.
type testServices struct {
	categoryTable    *faultyTable[models.Category]
	transactionTable *faultyTable[models.Transaction]
	cache            *CategoryCache
	hub              *identity.Hub
	categories       CategoryServicer
	transactions     TransactionServicer
}

func newTestServices(t *testing.T, db *gorm.DB) *testServices {
	t.Helper()
	ts := &testServices{
		categoryTable:    &faultyTable[models.Category]{Table: NewCategoryTable(db)},
		transactionTable: &faultyTable[models.Transaction]{Table: NewTransactionTable(db)},
		cache:            newTestCategoryCache(t),
		hub:              identity.NewHub(),
	}
	ts.categories = NewCategoryService(ts.categoryTable, ts.cache, ts.hub)
	t.Cleanup(ts.categories.Close)
	ts.transactions = NewTransactionService(ts.transactionTable, ts.categories)
	return ts
}

func countRows(t *testing.T, db *gorm.DB, table, userID string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
