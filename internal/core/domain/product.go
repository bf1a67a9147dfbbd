package domain

// Size is one size variant of a product.
type Size struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Value   string `json:"value,omitempty"`
	InStock bool   `json:"inStock,omitempty"`
}

// Color is one colour variant of a product.
type Color struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Hex     string `json:"hex,omitempty"`
	InStock bool   `json:"inStock,omitempty"`
}

// Product is a catalog item. The catalog collaborator owns it;
// search and recommendation only ever read it.
type Product struct {
	// ID uniquely identifies the product within a catalog.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is free text.
	Description string `json:"description"`

	// Brand is the brand label.
	Brand string `json:"brand"`

	// Category is a single category label (e.g. "women").
	Category string `json:"category"`

	// Price is the current selling price.
	Price float64 `json:"price"`

	// OriginalPrice is set when the product is discounted.
	OriginalPrice *float64 `json:"originalPrice,omitempty"`

	// Tags are free-form descriptors (e.g. "silk", "elegant").
	Tags []string `json:"tags"`

	// Rating is the average review rating, when the product has reviews.
	Rating *float64 `json:"rating,omitempty"`

	// Sizes lists size variants.
	Sizes []Size `json:"sizes"`

	// Colors lists colour variants.
	Colors []Color `json:"colors"`

	// InStock reports whether the product can be bought.
	InStock bool `json:"inStock"`

	// IsNew marks new arrivals; the "newest" sort floats them first.
	IsNew bool `json:"isNew,omitempty"`
}

// HasTag reports whether the product carries the exact tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RatingValue returns the rating, or 0 when the product has none.
func (p *Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// HasColor reports whether any colour variant has the given name.
func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasSize reports whether any size variant has the given name.
func (p *Product) HasSize(name string) bool {
	for _, s := range p.Sizes {
		if s.Name == name {
			return true
		}
	}
	return false
}

// FindProduct returns the catalog entry with the given ID.
func FindProduct(catalog []Product, id string) (Product, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return catalog[i], true
		}
	}
	return Product{}, false
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
