package ship

// CargoItem is one line of the manifest.
type CargoItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Weight   int    `json:"weight"` // per unit
	Value    int    `json:"value"`  // per unit
}

// Cargo is the hold. Used always equals the sum of Quantity*Weight over Items
// and never exceeds Capacity.
type Cargo struct {
	Capacity int         `json:"capacity"`
	Used     int         `json:"used"`
	Items    []CargoItem `json:"items"`
}

// Free returns the remaining capacity.
func (c Cargo) Free() int {
	return c.Capacity - c.Used
}

func (c *Cargo) find(name string) int {
	for i := range c.Items {
		if c.Items[i].Name == name {
			return i
		}
	}
	return -1
}

// Quantity returns how many units of name are held.
func (c Cargo) Quantity(name string) int {
	if i := c.find(name); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// AddCargo loads quantity units of item. It fails without mutation when the
// hold cannot take the weight. Units merge into an existing line of the same name.
func (s *Ship) AddCargo(item CargoItem, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	c := &s.Cargo
	idx := c.find(item.Name)

	weight := item.Weight
	if idx >= 0 {
		weight = c.Items[idx].Weight
	}
	if weight <= 0 {
		weight = 1
	}

	total := quantity * weight
	if c.Used+total > c.Capacity {
		return false
	}

	if idx >= 0 {
		c.Items[idx].Quantity += quantity
	} else {
		c.Items = append(c.Items, CargoItem{
			Name:     item.Name,
			Quantity: quantity,
			Weight:   weight,
			Value:    item.Value,
		})
	}
	c.Used += total
	return true
}

// RemoveCargo unloads quantity units of itemName. It fails when the item is
// absent or fewer units are held. A line that reaches zero is dropped.
func (s *Ship) RemoveCargo(itemName string, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	c := &s.Cargo
	idx := c.find(itemName)
	if idx < 0 || c.Items[idx].Quantity < quantity {
		return false
	}

	c.Items[idx].Quantity -= quantity
	c.Used -= quantity * c.Items[idx].Weight
	if c.Items[idx].Quantity == 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
	return true
}

// CargoValue sums value*quantity across the manifest.
func (s *Ship) CargoValue() int {
	total := 0
	for _, it := range s.Cargo.Items {
		total += it.Value * it.Quantity
	}
	return total
}
