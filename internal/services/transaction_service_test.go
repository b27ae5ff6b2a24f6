package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendwize/internal/models"
	"spendwize/internal/pagination"
	"spendwize/internal/testutil"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func expenseInput(sel *Selection, amt string) TransactionInput {
	return TransactionInput{
		Type:            models.TransactionTypeExpense,
		Selection:       sel,
		PaymentMethod:   models.PaymentMethodUPI,
		Amount:          amount(amt),
		Currency:        "inr",
		TransactionDate: date(2024, time.March, 8),
	}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("existing_category_snapshots_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategoryNamed(t, db, user.ID, models.CategoryTypeExpense, "Groceries")

		tx, err := ts.transactions.CreateTransaction(ctx, user.ID, expenseInput(&Selection{Value: cat.ID}, "42.50"))
		testutil.AssertNoError(t, err)

		if tx.CategoryID == nil || *tx.CategoryID != cat.ID {
			t.Errorf("expected category id %s, got %v", cat.ID, tx.CategoryID)
		}
		if tx.CategoryName == nil || *tx.CategoryName != "Groceries" {
			t.Errorf("expected category name Groceries, got %v", tx.CategoryName)
		}
		if !tx.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("expected amount 42.5, got %s", tx.Amount)
		}
		if tx.Currency != "INR" {
			t.Errorf("expected currency normalized to INR, got %s", tx.Currency)
		}
	})

	t.Run("custom_category_is_created", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)

		tx, err := ts.transactions.CreateTransaction(ctx, user.ID,
			expenseInput(&Selection{Value: CustomSentinel, CustomName: "Pets"}, "15"))
		testutil.AssertNoError(t, err)

		if tx.CategoryName == nil || *tx.CategoryName != "Pets" {
			t.Fatalf("expected category name Pets, got %v", tx.CategoryName)
		}
		var cat models.Category
		if err := db.Where("id = ?", *tx.CategoryID).First(&cat).Error; err != nil {
			t.Fatalf("expected the custom category to exist: %v", err)
		}
		if cat.Name != "Pets" || cat.Type != models.CategoryTypeExpense {
			t.Errorf("unexpected category %+v", cat)
		}
	})

	t.Run("defaults_currency_and_payment_method", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)

		input := expenseInput(&Selection{Value: "Food"}, "0")
		input.Currency = ""
		input.PaymentMethod = ""
		tx, err := ts.transactions.CreateTransaction(ctx, user.ID, input)
		testutil.AssertNoError(t, err)

		if tx.Currency != "INR" || tx.PaymentMethod != models.PaymentMethodCash {
			t.Errorf("expected INR/cash defaults, got %s/%s", tx.Currency, tx.PaymentMethod)
		}
	})

	t.Run("failed_category_creation_writes_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)

		_, err := ts.categories.ListCategories(ctx, user.ID, nil)
		testutil.AssertNoError(t, err)
		ts.categoryTable.insertErr = errors.New("permission denied")

		_, err = ts.transactions.CreateTransaction(ctx, user.ID,
			expenseInput(&Selection{Value: CustomSentinel, CustomName: "Pets"}, "15"))
		testutil.AssertAppError(t, err, "STORE_ERROR")

		if ts.transactionTable.inserts != 0 {
			t.Errorf("expected no transaction insert attempt, got %d", ts.transactionTable.inserts)
		}
		if got := countRows(t, db, "transactions", user.ID); got != 0 {
			t.Errorf("expected zero transactions, got %d", got)
		}
	})

	validation := []struct {
		name   string
		mutate func(in *TransactionInput)
		code   string
	}{
		{"missing_amount", func(in *TransactionInput) { in.Amount = nil }, "INVALID_AMOUNT"},
		{"negative_amount", func(in *TransactionInput) { in.Amount = amount("-1") }, "INVALID_AMOUNT"},
		{"missing_date", func(in *TransactionInput) { in.TransactionDate = nil }, "MISSING_DATE"},
		{"invalid_type", func(in *TransactionInput) { in.Type = "transfer" }, "INVALID_TRANSACTION_TYPE"},
		{"missing_selection", func(in *TransactionInput) { in.Selection = nil }, "CATEGORY_REQUIRED"},
		{"blank_selection", func(in *TransactionInput) { in.Selection = &Selection{} }, "CATEGORY_REQUIRED"},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			ts := newTestServices(t, db)
			user := testutil.CreateTestUser(t, db)

			input := expenseInput(&Selection{Value: "Food"}, "10")
			tt.mutate(&input)
			_, err := ts.transactions.CreateTransaction(ctx, user.ID, input)
			testutil.AssertAppError(t, err, tt.code)

			if ts.categoryTable.inserts != 0 || ts.transactionTable.inserts != 0 {
				t.Error("expected validation to fail before any store write")
			}
		})
	}
}

func TestRenameCategory_KeepsTransactionSnapshot(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(t, db)
	user := testutil.CreateTestUser(t, db)

	tx, err := ts.transactions.CreateTransaction(ctx, user.ID,
		expenseInput(&Selection{Value: CustomSentinel, CustomName: "Groceries"}, "20"))
	testutil.AssertNoError(t, err)

	_, err = ts.categories.RenameCategory(ctx, user.ID, *tx.CategoryID, "Supermarket")
	testutil.AssertNoError(t, err)

	got, err := ts.transactions.GetTransactionByID(ctx, user.ID, tx.ID)
	testutil.AssertNoError(t, err)
	if got.CategoryName == nil || *got.CategoryName != "Groceries" {
		t.Errorf("expected snapshot Groceries to survive the rename, got %v", got.CategoryName)
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps_category_and_refreshes_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategoryNamed(t, db, user.ID, models.CategoryTypeExpense, "Groceries")
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))
		db.Model(cat).Update("category_name", "Supermarket")

		input := expenseInput(nil, "12.345")
		input.Notes = "weekly shop"
		updated, err := ts.transactions.UpdateTransaction(ctx, user.ID, tx.ID, input)
		testutil.AssertNoError(t, err)

		if updated.CategoryID == nil || *updated.CategoryID != cat.ID {
			t.Errorf("expected category kept, got %v", updated.CategoryID)
		}
		if updated.CategoryName == nil || *updated.CategoryName != "Supermarket" {
			t.Errorf("expected name rewritten from category, got %v", updated.CategoryName)
		}
		if !updated.Amount.Equal(decimal.RequireFromString("12.35")) {
			t.Errorf("expected amount rounded to 12.35, got %s", updated.Amount)
		}
		if updated.Notes != "weekly shop" {
			t.Errorf("expected notes updated, got %q", updated.Notes)
		}
		if !updated.TransactionDate.Equal(testutil.Date(2024, time.March, 8)) {
			t.Errorf("expected date 2024-03-08, got %s", updated.TransactionDate)
		}
	})

	t.Run("type_change_without_selection_mismatches", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))

		input := expenseInput(nil, "10")
		input.Type = models.TransactionTypeIncome
		_, err := ts.transactions.UpdateTransaction(ctx, user.ID, tx.ID, input)
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("new_selection_is_resolved", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))

		input := expenseInput(&Selection{Value: "Salary"}, "3000")
		input.Type = models.TransactionTypeIncome
		updated, err := ts.transactions.UpdateTransaction(ctx, user.ID, tx.ID, input)
		testutil.AssertNoError(t, err)

		if updated.Type != models.TransactionTypeIncome {
			t.Errorf("expected income, got %s", updated.Type)
		}
		if updated.CategoryName == nil || *updated.CategoryName != "Salary" {
			t.Errorf("expected Salary, got %v", updated.CategoryName)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(t, db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, nil, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))

		_, err := ts.transactions.UpdateTransaction(ctx, other.ID, tx.ID, expenseInput(nil, "1"))
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(t, db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, owner.ID, nil, models.TransactionTypeExpense, "10", testutil.Date(2024, time.March, 1))

	err := ts.transactions.DeleteTransaction(ctx, other.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

	err = ts.transactions.DeleteTransaction(ctx, owner.ID, tx.ID)
	testutil.AssertNoError(t, err)

	_, err = ts.transactions.GetTransactionByID(ctx, owner.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

	err = ts.transactions.DeleteTransaction(ctx, owner.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(t, db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestCategoryNamed(t, db, user.ID, models.CategoryTypeExpense, "Food")

	testutil.CreateTestTransaction(t, db, user.ID, food, models.TransactionTypeExpense, "1", testutil.Date(2024, time.March, 1))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeIncome, "2", testutil.Date(2024, time.March, 3))
	testutil.CreateTestTransaction(t, db, user.ID, food, models.TransactionTypeExpense, "3", testutil.Date(2024, time.March, 5))
	testutil.CreateTestTransaction(t, db, user.ID, nil, models.TransactionTypeExpense, "4", testutil.Date(2024, time.March, 7))

	t.Run("newest_first", func(t *testing.T) {
		res, err := ts.transactions.ListTransactions(ctx, user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if res.TotalItems != 4 || len(res.Data) != 4 {
			t.Fatalf("expected 4 transactions, got %d/%d", res.TotalItems, len(res.Data))
		}
		for i := 1; i < len(res.Data); i++ {
			if res.Data[i-1].TransactionDate.Before(res.Data[i].TransactionDate) {
				t.Errorf("expected descending dates at %d", i)
			}
		}
	})

	t.Run("paginates", func(t *testing.T) {
		res, err := ts.transactions.ListTransactions(ctx, user.ID, pagination.PageRequest{Page: 2, PageSize: 3}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(res.Data) != 1 || res.TotalPages != 2 {
			t.Errorf("expected 1 item on page 2 of 2, got %d items / %d pages", len(res.Data), res.TotalPages)
		}
		if !res.Data[0].Amount.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected oldest transaction last, got %s", res.Data[0].Amount)
		}
	})

	t.Run("filters", func(t *testing.T) {
		expense := models.TransactionTypeExpense
		res, err := ts.transactions.ListTransactions(ctx, user.ID, pagination.PageRequest{}, TransactionFilter{
			FromDate:   date(2024, time.March, 2),
			ToDate:     date(2024, time.March, 6),
			Type:       &expense,
			CategoryID: &food.ID,
		})
		testutil.AssertNoError(t, err)

		if len(res.Data) != 1 || !res.Data[0].Amount.Equal(decimal.NewFromInt(3)) {
			t.Errorf("expected only the 03-05 food expense, got %+v", res.Data)
		}
	})
}
