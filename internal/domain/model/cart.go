package model

// Cart holds the item quantities for one session. Quantities are always
// positive: setting a quantity to zero or below removes the line.
//
// Cart is not safe for concurrent use; the owning session serializes
// access.
type Cart struct {
	items map[string]int
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{items: make(map[string]int)}
}

// Add increments the quantity for an item, creating the line at 1.
func (c *Cart) Add(id string) {
	c.items[id]++
}

// Update sets the quantity for an item, removing the line when qty <= 0.
func (c *Cart) Update(id string, qty int) {
	if qty <= 0 {
		delete(c.items, id)
		return
	}
	c.items[id] = qty
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(id string) {
	delete(c.items, id)
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.items = make(map[string]int)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Quantity returns the stored quantity for an item, zero if absent.
func (c *Cart) Quantity(id string) int {
	return c.items[id]
}

// Quantities returns a copy of the item → quantity mapping.
func (c *Cart) Quantities() map[string]int {
	out := make(map[string]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{items: c.Quantities()}
}

// Lines derives priced line items against the current catalog. Unit prices
// are read live, so catalog edits retroactively reprice an un-submitted
// cart. Lines whose item no longer exists in the catalog are dropped
// silently. Output order follows the catalog, keeping it deterministic.
func (c *Cart) Lines(catalog []MenuItem) []OrderLine {
	lines := make([]OrderLine, 0, len(c.items))
	for _, item := range catalog {
		qty, ok := c.items[item.ID]
		if !ok {
			continue
		}
		lines = append(lines, OrderLine{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.Price,
			LineTotal: Round2(item.Price * float64(qty)),
		})
	}
	return lines
}

// Subtotal sums the derived line totals against the current catalog.
func (c *Cart) Subtotal(catalog []MenuItem) float64 {
	var sum float64
	for _, line := range c.Lines(catalog) {
		sum += line.LineTotal
	}
	return Round2(sum)
}
