package models

import "time"

// Flower represents a flower kept in the inventory.
type Flower struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	Type      string    `json:"type" gorm:"type:varchar(100)"`
	Color     string    `json:"color" gorm:"type:varchar(100)"`
	Price     float64   `json:"price" validate:"gte=0"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	ImageURL  string    `json:"imageUrl" gorm:"type:text"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	UpdatedAt time.Time `json:"-"`
}

// FlowerInput is the body accepted when creating a flower. Pointer fields
// distinguish a missing value from a zero value.
type FlowerInput struct {
	Name     string   `json:"name" validate:"required"`
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Price    *float64 `json:"price" validate:"required"`
	Quantity *int     `json:"quantity" validate:"required"`
	ImageURL string   `json:"imageUrl"`
}

// ToFlower builds an unsaved Flower from the input. Missing numbers become zero.
func (in FlowerInput) ToFlower() Flower {
	f := Flower{
		Name:     in.Name,
		Type:     in.Type,
		Color:    in.Color,
		ImageURL: in.ImageURL,
	}
	if in.Price != nil {
		f.Price = *in.Price
	}
	if in.Quantity != nil {
		f.Quantity = *in.Quantity
	}
	return f
}

// FlowerPatch carries the fields supplied to an update. Only non-nil fields change.
type FlowerPatch struct {
	Name     *string  `json:"name,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p FlowerPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Color == nil &&
		p.Price == nil && p.Quantity == nil && p.ImageURL == nil
}

// Apply returns a copy of f with the patch merged onto it. The id is never touched.
func (p FlowerPatch) Apply(f Flower) Flower {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Quantity != nil {
		f.Quantity = *p.Quantity
	}
	if p.ImageURL != nil {
		f.ImageURL = *p.ImageURL
	}
	return f
}

// PatchFrom builds a patch that sets every field of f.
func PatchFrom(f Flower) FlowerPatch {
	return FlowerPatch{
		Name:     &f.Name,
		Type:     &f.Type,
		Color:    &f.Color,
		Price:    &f.Price,
		Quantity: &f.Quantity,
		ImageURL: &f.ImageURL,
	}
}
