package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/identity"
	"spendwize/internal/logger"
	"spendwize/internal/models"
	"spendwize/internal/store"
)

// DefaultCategories are written in one batch the first time a user with no
// categories loads them.
var DefaultCategories = map[models.CategoryType][]string{
	models.CategoryTypeIncome:  {"Salary", "Bonus", "Investment", "Gift"},
	models.CategoryTypeExpense: {"Food", "Grocery", "Transport", "Entertainment", "Rent", "Bills"},
}

// SuggestedCategories are offered as selection labels for each type.
var SuggestedCategories = map[models.CategoryType][]string{
	models.CategoryTypeIncome:  {"Salary", "Bonus", "Investment", "Gift", "Other"},
	models.CategoryTypeExpense: {"Food", "Grocery", "Transport", "Entertainment", "Rent", "Bills", "Shopping", "Other"},
}

// categoryService handles category-related business logic.
type categoryService struct {
	categories  store.Table[models.Category]
	cache       *CategoryCache
	unsubscribe func()
	log         *zap.SugaredLogger
}

// NewCategoryService creates a new CategoryServicer. The service drops a
// user's cached categories when auth reports that user signed out; Close
// ends that subscription.
func NewCategoryService(categories store.Table[models.Category], cache *CategoryCache, auth identity.Provider) CategoryServicer {
	s := &categoryService{
		categories: categories,
		cache:      cache,
		log:        logger.Named("categories"),
	}
	if auth != nil {
		s.unsubscribe = auth.OnAuthStateChange(s.onAuthStateChange)
	}
	return s
}

func (s *categoryService) onAuthStateChange(session identity.Session) {
	if session.Event == identity.EventSignedOut && s.cache != nil {
		s.cache.Invalidate(session.User.ID)
	}
}

// Close releases the auth subscription.
func (s *categoryService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// load returns the user's category set, from the cache when possible.
// An empty set is seeded with the defaults.
func (s *categoryService) load(ctx context.Context, userID string) ([]models.Category, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(userID); ok {
			return cached, nil
		}
	}

	rows, err := s.categories.Select(ctx, userID, store.Query{
		Order: []store.Order{{Column: "category_name"}},
	})
	if err != nil {
		return nil, storeError(err)
	}

	if len(rows) == 0 {
		rows = s.seed(ctx, userID)
		if len(rows) == 0 {
			return rows, nil
		}
	}

	if s.cache != nil {
		s.cache.Put(userID, rows)
	}
	return rows, nil
}

// seed writes the default categories for userID. A failed batch leaves the
// user with no categories; the failure is logged, not returned.
func (s *categoryService) seed(ctx context.Context, userID string) []models.Category {
	var batch []models.Category
	for _, t := range []models.CategoryType{models.CategoryTypeIncome, models.CategoryTypeExpense} {
		for _, name := range DefaultCategories[t] {
			batch = append(batch, models.Category{UserID: userID, Type: t, Name: name})
		}
	}

	rows, err := s.categories.Insert(ctx, userID, batch)
	if errors.Is(err, store.ErrDuplicate) {
		// Another request seeded first.
		rows, err = s.categories.Select(ctx, userID, store.Query{
			Order: []store.Order{{Column: "category_name"}},
		})
	}
	if err != nil {
		s.log.Warnw("failed to seed default categories", "user_id", userID, "error", err)
		return []models.Category{}
	}

	sortByName(rows)
	s.log.Infow("seeded default categories", "user_id", userID, "count", len(rows))
	return rows
}

// ListCategories returns the user's categories ordered by name, optionally
// restricted to one type.
func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	if categoryType != nil && !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}

	all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Category, 0, len(all))
	for _, c := range all {
		if categoryType == nil || c.Type == *categoryType {
			out = append(out, c)
		}
	}
	sortByName(out)
	return out, nil
}

// RenameCategory changes a category's name. Transactions keep the name they
// were written with.
func (s *categoryService) RenameCategory(ctx context.Context, userID, categoryID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	n, err := s.categories.Update(ctx, userID, map[string]any{"category_name": name}, store.Eq("id", categoryID))
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a category with this name already exists")
	}
	if err != nil {
		return nil, storeError(err)
	}
	if n == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}

	rows, err := s.categories.Select(ctx, userID, store.Query{
		Filters: []store.Filter{store.Eq("id", categoryID)},
		Limit:   1,
	})
	if err != nil {
		return nil, storeError(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &rows[0], nil
}

// Options returns the choices a transaction form offers for categoryType.
func (s *categoryService) Options(ctx context.Context, userID string, categoryType models.CategoryType) (*CategoryOptions, error) {
	existing, err := s.ListCategories(ctx, userID, &categoryType)
	if err != nil {
		return nil, err
	}
	return &CategoryOptions{
		Type:           categoryType,
		Suggested:      SuggestedCategories[categoryType],
		Existing:       existing,
		Custom:         CustomSentinel,
		Currencies:     models.Currencies,
		PaymentMethods: models.PaymentMethods,
	}, nil
}

// Session returns a Resolver over the user's loaded categories.
func (s *categoryService) Session(ctx context.Context, userID string) (*Resolver, error) {
	loaded, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newResolver(userID, s.categories, s.cache, loaded), nil
}

func sortByName(categories []models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
}
