package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/models"
	"spendwize/internal/store"
	"spendwize/internal/uuid"
)

// Resolver maps category selections to category records for one user
// session. It holds the user's loaded category set and appends every
// category it creates, so later selections see them without a reload.
type Resolver struct {
	userID     string
	categories store.Table[models.Category]
	cache      *CategoryCache

	mu      sync.Mutex
	loaded  []models.Category
	created int
}

func newResolver(userID string, categories store.Table[models.Category], cache *CategoryCache, loaded []models.Category) *Resolver {
	return &Resolver{
		userID:     userID,
		categories: categories,
		cache:      cache,
		loaded:     loaded,
	}
}

// Categories returns the session's category set.
func (r *Resolver) Categories() []models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Category, len(r.loaded))
	copy(out, r.loaded)
	return out
}

// Created returns how many categories this session has written.
func (r *Resolver) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// Lookup returns the loaded category with the given id.
func (r *Resolver) Lookup(id string) (models.Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.loaded {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// Resolve returns the category that sel refers to for a transaction of
// type txType, creating it when sel is the custom sentinel or a label with
// no backing record. Validation errors are returned before any store call.
func (r *Resolver) Resolve(ctx context.Context, sel Selection, txType models.TransactionType) (*models.Category, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	categoryType := txType.CategoryType()

	value := strings.TrimSpace(sel.Value)
	if value == "" {
		return nil, apperrors.WithMessage(apperrors.ErrCategoryRequired, "category is required")
	}

	if value == CustomSentinel {
		name := strings.TrimSpace(sel.CustomName)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "custom category name is required")
		}
		return r.create(ctx, name, categoryType)
	}

	c, ok, err := r.Find(ctx, value)
	if err != nil {
		return nil, err
	}
	if ok {
		if c.Type != categoryType {
			return nil, apperrors.ErrCategoryTypeMismatch
		}
		return &c, nil
	}

	return r.create(ctx, value, categoryType)
}

// Find returns the user's category with the given id. The session set is
// checked first; an id it does not hold is looked up in the store, since
// another session may have created it after this one loaded. A hit from
// the store joins the session set.
func (r *Resolver) Find(ctx context.Context, id string) (models.Category, bool, error) {
	if c, ok := r.Lookup(id); ok {
		return c, true, nil
	}
	if !uuid.IsValid(id) || r.categories == nil {
		return models.Category{}, false, nil
	}

	rows, err := r.categories.Select(ctx, r.userID, store.Query{
		Filters: []store.Filter{store.Eq("id", id)},
		Limit:   1,
	})
	if err != nil {
		return models.Category{}, false, storeError(err)
	}
	if len(rows) == 0 {
		return models.Category{}, false, nil
	}

	r.append(rows[0])
	return rows[0], true, nil
}

func (r *Resolver) create(ctx context.Context, name string, categoryType models.CategoryType) (*models.Category, error) {
	if c, ok := r.findByName(name, categoryType); ok {
		return &c, nil
	}

	rows, err := r.categories.Insert(ctx, r.userID, []models.Category{{
		UserID: r.userID,
		Type:   categoryType,
		Name:   name,
	}})
	var category models.Category
	switch {
	case errors.Is(err, store.ErrDuplicate):
		existing, selErr := r.categories.Select(ctx, r.userID, store.Query{
			Filters: []store.Filter{
				store.Eq("type", categoryType),
				store.Eq("category_name", name),
			},
			Limit: 1,
		})
		if selErr != nil {
			return nil, storeError(selErr)
		}
		if len(existing) == 0 {
			return nil, storeError(err)
		}
		category = existing[0]
	case err != nil:
		return nil, storeError(err)
	case len(rows) != 1:
		return nil, apperrors.Wrap(apperrors.ErrStore, errors.New("category insert returned no record"))
	default:
		category = rows[0]
		r.mu.Lock()
		r.created++
		r.mu.Unlock()
	}

	r.append(category)
	return &category, nil
}

func (r *Resolver) findByName(name string, categoryType models.CategoryType) (models.Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.loaded {
		if c.Type == categoryType && c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

// append adds c to the session set. The slice is copied so readers holding
// the previous set, including the shared cache, never see it change. The
// cached set is dropped rather than replaced: other sessions of the same
// user may have added categories this one never saw.
func (r *Resolver) append(c models.Category) {
	r.mu.Lock()
	next := make([]models.Category, len(r.loaded), len(r.loaded)+1)
	copy(next, r.loaded)
	next = append(next, c)
	r.loaded = next
	r.mu.Unlock()

	if r.cache != nil {
		r.cache.Invalidate(r.userID)
	}
}
