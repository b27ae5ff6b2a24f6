package services

import (
	"context"
	"strings"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/models"
	"spendwize/internal/pagination"
	"spendwize/internal/store"
)

const maxNotesLength = 500

// transactionService handles transaction-related business logic.
type transactionService struct {
	transactions store.Table[models.Transaction]
	categories   CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(transactions store.Table[models.Transaction], categories CategoryServicer) TransactionServicer {
	return &transactionService{
		transactions: transactions,
		categories:   categories,
	}
}

// validateInput checks the fields shared by create and update and fills in
// defaults. It never touches the store.
func validateInput(input *TransactionInput) error {
	if !input.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if input.Amount == nil || input.Amount.IsNegative() {
		return apperrors.ErrInvalidAmount
	}
	if input.TransactionDate == nil || input.TransactionDate.IsZero() {
		return apperrors.ErrMissingDate
	}
	if len(input.Notes) > maxNotesLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "notes must be at most 500 characters")
	}

	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
	if input.Currency == "" {
		input.Currency = models.DefaultCurrency
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentMethodCash
	}
	return nil
}

// CreateTransaction resolves the selected category, creating it if needed,
// and writes the transaction with the category's id and current name. If
// the category cannot be resolved nothing is written.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*models.Transaction, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	if input.Selection == nil || strings.TrimSpace(input.Selection.Value) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrCategoryRequired, "category is required")
	}

	resolver, err := s.categories.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	category, err := resolver.Resolve(ctx, *input.Selection, input.Type)
	if err != nil {
		return nil, err
	}

	categoryID, categoryName := category.ID, category.Name
	transaction := models.Transaction{
		UserID:          userID,
		CategoryID:      &categoryID,
		CategoryName:    &categoryName,
		Type:            input.Type,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Amount:          input.Amount.Round(2),
		Currency:        input.Currency,
		TransactionDate: models.CalendarDate(*input.TransactionDate),
	}

	rows, err := s.transactions.Insert(ctx, userID, []models.Transaction{transaction})
	if err != nil {
		return nil, storeError(err)
	}
	return &rows[0], nil
}

// UpdateTransaction rewrites a transaction. A nil Selection keeps the
// current category, which must still match the (possibly changed) type.
// Either way the category name snapshot is refreshed from the category.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	current, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	resolver, err := s.categories.Session(ctx, userID)
	if err != nil {
		return nil, err
	}

	categoryID, categoryName := current.CategoryID, current.CategoryName
	if input.Selection != nil {
		category, err := resolver.Resolve(ctx, *input.Selection, input.Type)
		if err != nil {
			return nil, err
		}
		categoryID, categoryName = &category.ID, &category.Name
	} else if current.CategoryID != nil {
		category, ok, err := resolver.Find(ctx, *current.CategoryID)
		if err != nil {
			return nil, err
		}
		if ok {
			if category.Type != input.Type.CategoryType() {
				return nil, apperrors.ErrCategoryTypeMismatch
			}
			categoryName = &category.Name
		}
	}

	patch := map[string]any{
		"category_id":      categoryID,
		"category_name":    categoryName,
		"type":             input.Type,
		"payment_method":   input.PaymentMethod,
		"notes":            input.Notes,
		"amount":           input.Amount.Round(2),
		"currency":         input.Currency,
		"transaction_date": models.CalendarDate(*input.TransactionDate),
	}
	n, err := s.transactions.Update(ctx, userID, patch, store.Eq("id", transactionID))
	if err != nil {
		return nil, storeError(err)
	}
	if n == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	return s.GetTransactionByID(ctx, userID, transactionID)
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	rows, err := s.transactions.Select(ctx, userID, store.Query{
		Filters: []store.Filter{store.Eq("id", transactionID)},
		Limit:   1,
	})
	if err != nil {
		return nil, storeError(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &rows[0], nil
}

// DeleteTransaction permanently removes a transaction.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	n, err := s.transactions.Delete(ctx, userID, store.Eq("id", transactionID))
	if err != nil {
		return storeError(err)
	}
	if n == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()
	filters := transactionFilters(filter)

	totalItems, err := s.transactions.Count(ctx, userID, filters...)
	if err != nil {
		return nil, storeError(err)
	}

	transactions, err := s.transactions.Select(ctx, userID, store.Query{
		Filters: filters,
		Order: []store.Order{
			{Column: "transaction_date", Desc: true},
			{Column: "created_at", Desc: true},
		},
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, storeError(err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func transactionFilters(f TransactionFilter) []store.Filter {
	var filters []store.Filter
	if f.FromDate != nil {
		filters = append(filters, store.Gte("transaction_date", models.CalendarDate(*f.FromDate)))
	}
	if f.ToDate != nil {
		filters = append(filters, store.Lte("transaction_date", models.CalendarDate(*f.ToDate)))
	}
	if f.Type != nil {
		filters = append(filters, store.Eq("type", *f.Type))
	}
	if f.CategoryID != nil {
		filters = append(filters, store.Eq("category_id", *f.CategoryID))
	}
	return filters
}
