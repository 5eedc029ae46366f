package domain

import (
	"database/sql/driver"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Product categories form a closed set.
const (
	CategoryRings     = "Rings"
	CategoryNecklaces = "Necklaces"
	CategoryEarrings  = "Earrings"
	CategoryWatches   = "Watches"
)

var Categories = []string{CategoryRings, CategoryNecklaces, CategoryEarrings, CategoryWatches}

// ValidCategory reports whether category is one of the known values.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Materials is an ordered list of material names, stored as a JSON column.
type Materials []string

func (m Materials) Value() (driver.Value, error) {
	if m == nil {
		m = Materials{}
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(m)
	return string(data), err
}

func (m *Materials) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Materials{}
		return nil
	case []byte:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(v, m)
	case string:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(v), m)
	default:
		return errors.Errorf("materials: unsupported scan type %T", src)
	}
}

// Product is a catalog entry. The id is assigned by the document store on
// creation and is never client-generated.
type Product struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Price       float64   `json:"price"` // whole currency units, never negative
	Category    string    `gorm:"size:32;index" json:"category"`
	Image       string    `gorm:"size:1024" json:"image"`
	Description string    `json:"description"`
	Materials   Materials `gorm:"type:text" json:"materials"`
	IsNew       bool      `json:"isNew,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPatch is an explicit field mask for partial product updates.
// Only non-nil fields are written.
type ProductPatch struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Materials   *[]string `json:"materials"`
	IsNew       *bool     `json:"isNew"`
}

// Empty reports whether the patch touches no fields.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil &&
		p.Image == nil && p.Description == nil && p.Materials == nil && p.IsNew == nil
}

// Validate rejects values that can never be stored.
func (p ProductPatch) Validate() error {
	if p.Price != nil && *p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.Category != nil && !ValidCategory(*p.Category) {
		return errors.Errorf("unknown category %q", *p.Category)
	}
	return nil
}

// Fields returns the touched columns as an update map.
func (p ProductPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Materials != nil {
		fields["materials"] = Materials(*p.Materials)
	}
	if p.IsNew != nil {
		fields["is_new"] = *p.IsNew
	}
	return fields
}

// Apply writes the touched fields onto a product value.
func (p ProductPatch) Apply(target *Product) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Price != nil {
		target.Price = *p.Price
	}
	if p.Category != nil {
		target.Category = *p.Category
	}
	if p.Image != nil {
		target.Image = *p.Image
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Materials != nil {
		target.Materials = Materials(*p.Materials)
	}
	if p.IsNew != nil {
		target.IsNew = *p.IsNew
	}
}
