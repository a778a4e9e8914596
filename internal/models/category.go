package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Keywords is a list of match patterns stored as a JSON column.
type Keywords []string

// Scan reads the value from the database.
func (k *Keywords) Scan(value interface{}) error {
	if value == nil {
		*k = nil
		return nil
	}

	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), k)
	case []byte:
		return json.Unmarshal(v, k)
	}

	return fmt.Errorf("cannot scan %T into Keywords", value)
}

// Value returns the value for the SQL driver to write to the database.
func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		k = Keywords{}
	}

	j, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}

	return string(j), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Keywords) GormDataType() string {
	return "text"
}

// Category is an optional taxonomy entry used to classify transactions
// before they reach the ledger. Aggregation treats the category of a
// transaction as an opaque string, the taxonomy only helps with entry.
type Category struct {
	DefaultModel
	OwnerID  uuid.UUID `json:"ownerId" gorm:"index"`
	Name     string    `json:"name"`
	Keywords Keywords  `json:"keywords"`
	Active   bool      `json:"active"`
}

var ErrCategoryNameEmpty = errors.New("categories must have a name")

// BeforeSave validates the category and normalizes its strings.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	for i, keyword := range c.Keywords {
		c.Keywords[i] = strings.TrimSpace(keyword)
	}

	return nil
}
