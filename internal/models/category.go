package models

// Category is the urgency bucket assigned to a processed email.
type Category string

const (
	CategoryUrgent      Category = "URGENT"
	CategoryImportant   Category = "IMPORTANT"
	CategoryLowPriority Category = "LOW_PRIORITY"
)

// AllCategories lists every bucket in display order.
func AllCategories() []Category {
	return []Category{CategoryUrgent, CategoryImportant, CategoryLowPriority}
}

// Valid reports whether c is one of the three known buckets.
func (c Category) Valid() bool {
	switch c {
	case CategoryUrgent, CategoryImportant, CategoryLowPriority:
		return true
	}
	return false
}
