package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendwize/internal/models"
	"spendwize/internal/store"
	"spendwize/internal/testutil"

	"github.com/shopspring/decimal"
)

func newCategories(t *testing.T) (*store.Collection[models.Category], func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	c := store.NewCollection[models.Category](db, "categories", "id", "type", "category_name", "created_at")
	return c, func() { testutil.TeardownTestDB(t, db) }
}

func TestCollection_RequiresIdentity(t *testing.T) {
	c, done := newCategories(t)
	defer done()
	ctx := context.Background()

	if _, err := c.Select(ctx, "", store.Query{}); !errors.Is(err, store.ErrNoIdentity) {
		t.Errorf("Select: expected ErrNoIdentity, got %v", err)
	}
	if _, err := c.Insert(ctx, "", []models.Category{{Name: "Food"}}); !errors.Is(err, store.ErrNoIdentity) {
		t.Errorf("Insert: expected ErrNoIdentity, got %v", err)
	}
	if _, err := c.Update(ctx, "", map[string]any{"category_name": "x"}); !errors.Is(err, store.ErrNoIdentity) {
		t.Errorf("Update: expected ErrNoIdentity, got %v", err)
	}
	if _, err := c.Delete(ctx, "", store.Eq("id", "x")); !errors.Is(err, store.ErrNoIdentity) {
		t.Errorf("Delete: expected ErrNoIdentity, got %v", err)
	}
}

func TestCollection_ScopesByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := store.NewCollection[models.Category](db, "categories", "id", "type", "category_name")
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	testutil.CreateTestCategoryNamed(t, db, alice.ID, models.CategoryTypeExpense, "Food")
	bobs := testutil.CreateTestCategoryNamed(t, db, bob.ID, models.CategoryTypeExpense, "Food")

	rows, err := c.Select(ctx, alice.ID, store.Query{})
	testutil.AssertNoError(t, err)
	if len(rows) != 1 || rows[0].UserID != alice.ID {
		t.Fatalf("expected only alice's category, got %+v", rows)
	}

	n, err := c.Update(ctx, alice.ID, map[string]any{"category_name": "Meals"}, store.Eq("id", bobs.ID))
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("expected no rows updated across users, got %d", n)
	}

	n, err = c.Delete(ctx, alice.ID, store.Eq("id", bobs.ID))
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("expected no rows deleted across users, got %d", n)
	}
}

func TestCollection_UnknownColumn(t *testing.T) {
	c, done := newCategories(t)
	defer done()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"filter", func() error {
			_, err := c.Select(ctx, "u1", store.Query{Filters: []store.Filter{store.Eq("password", "x")}})
			return err
		}},
		{"order", func() error {
			_, err := c.Select(ctx, "u1", store.Query{Order: []store.Order{{Column: "1; DROP TABLE users"}}})
			return err
		}},
		{"projection", func() error {
			_, err := c.Select(ctx, "u1", store.Query{Columns: []string{"secret"}})
			return err
		}},
		{"patch", func() error {
			_, err := c.Update(ctx, "u1", map[string]any{"user_id": "u2"}, store.Eq("id", "x"))
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, store.ErrUnknownColumn) {
				t.Errorf("expected ErrUnknownColumn, got %v", err)
			}
		})
	}
}

func TestCollection_InsertAllOrNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := store.NewCollection[models.Category](db, "categories", "id", "type", "category_name")
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)

	batch := []models.Category{
		{UserID: user.ID, Type: models.CategoryTypeExpense, Name: "Food"},
		{UserID: user.ID, Type: models.CategoryTypeExpense, Name: "Rent"},
		{UserID: user.ID, Type: models.CategoryTypeExpense, Name: "Food"},
	}
	_, err := c.Insert(ctx, user.ID, batch)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	n, err := c.Count(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if n != 0 {
		t.Errorf("expected failed batch to write nothing, got %d rows", n)
	}
}

func TestCollection_InsertRejectsForeignOwner(t *testing.T) {
	c, done := newCategories(t)
	defer done()

	_, err := c.Insert(context.Background(), "u1", []models.Category{{UserID: "u2", Name: "Food"}})
	if !errors.Is(err, store.ErrForeignOwner) {
		t.Errorf("expected ErrForeignOwner, got %v", err)
	}
}

func TestCollection_InsertAssignsIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := store.NewCollection[models.Category](db, "categories", "id", "type", "category_name")
	user := testutil.CreateTestUser(t, db)

	rows, err := c.Insert(context.Background(), user.ID, []models.Category{
		{UserID: user.ID, Type: models.CategoryTypeIncome, Name: "Salary"},
	})
	testutil.AssertNoError(t, err)
	if rows[0].ID == "" {
		t.Error("expected inserted record to carry an id")
	}
}

func TestCollection_SelectFiltersAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	txs := store.NewCollection[models.Transaction](db, "transactions",
		"id", "type", "amount", "transaction_date", "category_id", "category_name")
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "20", testutil.Date(2024, time.March, 5))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeIncome, "30", testutil.Date(2024, time.March, 5))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "40", testutil.Date(2024, time.March, 9))

	rows, err := txs.Select(ctx, user.ID, store.Query{
		Columns: []string{"type", "amount", "transaction_date"},
		Filters: []store.Filter{
			store.Eq("type", models.TransactionTypeExpense),
			store.Gte("transaction_date", testutil.Date(2024, time.March, 2)),
			store.Lte("transaction_date", testutil.Date(2024, time.March, 9)),
		},
		Order: []store.Order{{Column: "transaction_date", Desc: true}},
	})
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Amount.Equal(decimal.NewFromInt(40)) || !rows[1].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected rows or order: %s, %s", rows[0].Amount, rows[1].Amount)
	}

	n, err := txs.Count(ctx, user.ID, store.In("type", []string{"income", "expense"}))
	testutil.AssertNoError(t, err)
	if n != 4 {
		t.Errorf("expected count 4, got %d", n)
	}

	n, err = txs.Count(ctx, user.ID, store.Eq("category_id", nil))
	testutil.AssertNoError(t, err)
	if n != 4 {
		t.Errorf("expected 4 uncategorized rows, got %d", n)
	}
}

func TestCollection_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	c := store.NewCollection[models.Category](db, "categories", "id", "type", "category_name")
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategoryNamed(t, db, user.ID, models.CategoryTypeExpense, "Groceries")

	n, err := c.Update(ctx, user.ID, map[string]any{"category_name": "Food"}, store.Eq("id", cat.ID))
	testutil.AssertNoError(t, err)
	if n != 1 {
		t.Fatalf("expected 1 row updated, got %d", n)
	}
	rows, err := c.Select(ctx, user.ID, store.Query{Filters: []store.Filter{store.Eq("id", cat.ID)}})
	testutil.AssertNoError(t, err)
	if rows[0].Name != "Food" {
		t.Errorf("expected renamed category, got %q", rows[0].Name)
	}

	if _, err := c.Delete(ctx, user.ID); err == nil {
		t.Error("expected delete without filter to fail")
	}
	n, err = c.Delete(ctx, user.ID, store.Eq("id", cat.ID))
	testutil.AssertNoError(t, err)
	if n != 1 {
		t.Errorf("expected 1 row deleted, got %d", n)
	}
}
