package specification

import "gorm.io/gorm"

// Specification narrows a query on the chat audit table.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
