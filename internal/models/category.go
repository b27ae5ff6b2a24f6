package models

// CategoryType is the transaction type a category may be attached to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category is a user-owned label for transactions. The triple
// (user_id, type, category_name) is unique.
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_type_name,priority:1" json:"user_id"`
	Type   CategoryType `gorm:"not null;uniqueIndex:idx_categories_user_type_name,priority:2" json:"type"`
	Name   string       `gorm:"column:category_name;not null;uniqueIndex:idx_categories_user_type_name,priority:3" json:"category_name"`
}

// OwnerID implements store.Owned.
func (c Category) OwnerID() string { return c.UserID }
