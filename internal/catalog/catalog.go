package catalog

import (
	"github.com/shopspring/decimal"
)

// Dish is a single orderable menu entry. Dishes are fixed at startup
// and never mutated.
type Dish struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Catalog is a read-only dish lookup preserving configured menu order.
type Catalog struct {
	dishes []Dish
	byID   map[int]Dish
}

// New builds a catalog from the given dishes, keeping their order.
func New(dishes []Dish) *Catalog {
	c := &Catalog{
		dishes: make([]Dish, len(dishes)),
		byID:   make(map[int]Dish, len(dishes)),
	}
	copy(c.dishes, dishes)
	for _, d := range c.dishes {
		c.byID[d.ID] = d
	}
	return c
}

// Default returns the built-in dinner menu.
func Default() *Catalog {
	return New([]Dish{
		{ID: 1, Name: "Biryani", Price: decimal.NewFromInt(180)},
		{ID: 2, Name: "Butter Chicken", Price: decimal.NewFromInt(150)},
		{ID: 3, Name: "Tandoori Chicken", Price: decimal.NewFromInt(120)},
		{ID: 4, Name: "Rogan Josh", Price: decimal.NewFromInt(100)},
		{ID: 5, Name: "Chicken Tikka Masala", Price: decimal.NewFromInt(100)},
	})
}

// List returns all dishes in menu order. The returned slice is a copy;
// callers may not alias catalog state.
func (c *Catalog) List() []Dish {
	out := make([]Dish, len(c.dishes))
	copy(out, c.dishes)
	return out
}

// Get looks up a dish by id.
func (c *Catalog) Get(id int) (Dish, bool) {
	d, ok := c.byID[id]
	return d, ok
}
