package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"spendwize/internal/models"
	"spendwize/internal/pagination"
	"spendwize/internal/reports"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CustomSentinel is the selection value that asks for a new category named
// by Selection.CustomName.
const CustomSentinel = "__custom__"

// Selection is the category choice submitted with a transaction. Value is
// the id of an existing category, a suggested label, or CustomSentinel.
type Selection struct {
	Value      string `json:"value"`
	CustomName string `json:"custom_name,omitempty"`
}

// CategoryOptions is everything a form needs to offer a category choice.
type CategoryOptions struct {
	Type           models.CategoryType    `json:"type"`
	Suggested      []string               `json:"suggested"`
	Existing       []models.Category      `json:"existing"`
	Custom         string                 `json:"custom"`
	Currencies     []string               `json:"currencies"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID, name string) (*models.Category, error)
	Options(ctx context.Context, userID string, categoryType models.CategoryType) (*CategoryOptions, error)
	Session(ctx context.Context, userID string) (*Resolver, error)
	Close()
}

// TransactionInput carries the writable fields of a transaction. Pointer
// fields are required on create; on update a nil Selection keeps the
// current category.
type TransactionInput struct {
	Type            models.TransactionType
	Selection       *Selection
	PaymentMethod   models.PaymentMethod
	Notes           string
	Amount          *decimal.Decimal
	Currency        string
	TransactionDate *time.Time
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// ExpenseSeries is a bucketed expense series together with its window.
type ExpenseSeries struct {
	Window reports.Window  `json:"window"`
	Points []reports.Point `json:"points"`
}

// Dashboard combines the expense series and the category breakdown.
type Dashboard struct {
	Series     ExpenseSeries   `json:"series"`
	Categories []reports.Slice `json:"categories"`
}

// ReportServicer defines the contract for spending reports.
type ReportServicer interface {
	ExpenseSeries(ctx context.Context, userID string, r reports.Range) (*ExpenseSeries, error)
	ExpensesByCategory(ctx context.Context, userID string) ([]reports.Slice, error)
	Dashboard(ctx context.Context, userID string, r reports.Range) (*Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
