// Package store is the user-scoped collection layer the services read and
// write through. Every call carries the acting user's id and is filtered by
// user_id, so no query can reach another user's rows.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNoIdentity is returned when a call is made without a user id.
	ErrNoIdentity = errors.New("store: no authenticated identity")
	// ErrUnknownColumn is returned when a query names a column outside the
	// collection's whitelist.
	ErrUnknownColumn = errors.New("store: unknown column")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("store: duplicate record")
	// ErrForeignOwner is returned when Insert is given a record owned by a
	// different user than the caller.
	ErrForeignOwner = errors.New("store: record belongs to another user")
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpGte Op = "gte"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Filter restricts a query to rows where Column Op Value holds.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// Neq is shorthand for an inequality filter.
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }

// Gte is shorthand for a lower-bound filter.
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }

// Lte is shorthand for an upper-bound filter.
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }

// In is shorthand for a set-membership filter. Value should be a slice.
func In(column string, value any) Filter { return Filter{Column: column, Op: OpIn, Value: value} }

// Order sorts results by a column.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a Select call. A zero Limit means no limit.
type Query struct {
	Columns []string
	Filters []Filter
	Order   []Order
	Limit   int
	Offset  int
}

// Owned is implemented by records that carry their owner's id. Insert
// refuses records whose owner differs from the caller.
type Owned interface {
	OwnerID() string
}

// Table is the collection contract consumed by the services.
type Table[T any] interface {
	Select(ctx context.Context, userID string, q Query) ([]T, error)
	Count(ctx context.Context, userID string, filters ...Filter) (int64, error)
	Insert(ctx context.Context, userID string, records []T) ([]T, error)
	Update(ctx context.Context, userID string, patch map[string]any, filters ...Filter) (int64, error)
	Delete(ctx context.Context, userID string, filters ...Filter) (int64, error)
}

// Collection is a gorm-backed Table over a single named table.
type Collection[T any] struct {
	db      *gorm.DB
	name    string
	columns map[string]struct{}
}

// NewCollection returns a Collection for table name. columns is the
// whitelist of names that may appear in filters, orderings, projections and
// patches; user_id is always allowed.
func NewCollection[T any](db *gorm.DB, name string, columns ...string) *Collection[T] {
	allowed := make(map[string]struct{}, len(columns)+1)
	allowed["user_id"] = struct{}{}
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return &Collection[T]{db: db, name: name, columns: allowed}
}

// Name returns the table name.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) scoped(ctx context.Context, userID string) (*gorm.DB, error) {
	if userID == "" {
		return nil, ErrNoIdentity
	}
	return c.db.WithContext(ctx).Table(c.name).Where("user_id = ?", userID), nil
}

func (c *Collection[T]) checkColumn(column string) error {
	if _, ok := c.columns[column]; !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, c.name, column)
	}
	return nil
}

func (c *Collection[T]) applyFilters(tx *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if err := c.checkColumn(f.Column); err != nil {
			return nil, err
		}
		switch f.Op {
		case OpEq:
			if f.Value == nil {
				tx = tx.Where(f.Column + " IS NULL")
			} else {
				tx = tx.Where(f.Column+" = ?", f.Value)
			}
		case OpNeq:
			if f.Value == nil {
				tx = tx.Where(f.Column + " IS NOT NULL")
			} else {
				tx = tx.Where(f.Column+" <> ?", f.Value)
			}
		case OpGte:
			tx = tx.Where(f.Column+" >= ?", f.Value)
		case OpLte:
			tx = tx.Where(f.Column+" <= ?", f.Value)
		case OpIn:
			tx = tx.Where(f.Column+" IN ?", f.Value)
		default:
			return nil, fmt.Errorf("store: unsupported operator %q", f.Op)
		}
	}
	return tx, nil
}

// Select returns the caller's rows matching q.
func (c *Collection[T]) Select(ctx context.Context, userID string, q Query) ([]T, error) {
	tx, err := c.scoped(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(q.Columns) > 0 {
		for _, col := range q.Columns {
			if err := c.checkColumn(col); err != nil {
				return nil, err
			}
		}
		tx = tx.Select(q.Columns)
	}
	if tx, err = c.applyFilters(tx, q.Filters); err != nil {
		return nil, err
	}
	for _, o := range q.Order {
		if err := c.checkColumn(o.Column); err != nil {
			return nil, err
		}
		if o.Desc {
			tx = tx.Order(o.Column + " DESC")
		} else {
			tx = tx.Order(o.Column)
		}
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// Count returns the number of the caller's rows matching filters.
func (c *Collection[T]) Count(ctx context.Context, userID string, filters ...Filter) (int64, error) {
	tx, err := c.scoped(ctx, userID)
	if err != nil {
		return 0, err
	}
	if tx, err = c.applyFilters(tx, filters); err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// Insert writes records in a single database transaction. Either every
// record is written or none is.
func (c *Collection[T]) Insert(ctx context.Context, userID string, records []T) ([]T, error) {
	if userID == "" {
		return nil, ErrNoIdentity
	}
	if len(records) == 0 {
		return records, nil
	}
	for i := range records {
		if o, ok := any(&records[i]).(Owned); ok && o.OwnerID() != userID {
			return nil, ErrForeignOwner
		}
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(c.name).Create(&records).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return records, nil
}

// Update applies patch to the caller's rows matching filters and returns
// the number of rows changed. updated_at is stamped automatically.
func (c *Collection[T]) Update(ctx context.Context, userID string, patch map[string]any, filters ...Filter) (int64, error) {
	tx, err := c.scoped(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(patch) == 0 {
		return 0, nil
	}
	values := make(map[string]any, len(patch)+1)
	for col, v := range patch {
		if col == "user_id" || col == "id" {
			return 0, fmt.Errorf("%w: %s.%s is immutable", ErrUnknownColumn, c.name, col)
		}
		if err := c.checkColumn(col); err != nil {
			return 0, err
		}
		values[col] = v
	}
	values["updated_at"] = time.Now()

	if tx, err = c.applyFilters(tx, filters); err != nil {
		return 0, err
	}
	res := tx.Updates(values)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete hard-deletes the caller's rows matching filters. At least one
// filter is required so a call cannot wipe the user's whole collection by
// accident.
func (c *Collection[T]) Delete(ctx context.Context, userID string, filters ...Filter) (int64, error) {
	tx, err := c.scoped(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, errors.New("store: delete requires a filter")
	}
	if tx, err = c.applyFilters(tx, filters); err != nil {
		return 0, err
	}
	var zero T
	res := tx.Delete(&zero)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	// Some drivers surface unique violations without a translator.
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
