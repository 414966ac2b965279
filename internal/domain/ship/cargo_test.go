package ship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usedFromItems(c Cargo) int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity * it.Weight
	}
	return total
}

func TestAddCargo_NewLineAndMerge(t *testing.T) {
	s := New()
	ore := CargoItem{Name: "Ore", Weight: 3, Value: 50}

	require.True(t, s.AddCargo(ore, 5))
	require.True(t, s.AddCargo(ore, 2))

	require.Len(t, s.Cargo.Items, 1)
	assert.Equal(t, 7, s.Cargo.Items[0].Quantity)
	assert.Equal(t, 21, s.Cargo.Used)
	assert.Equal(t, usedFromItems(s.Cargo), s.Cargo.Used)
	assert.Equal(t, 350, s.CargoValue())
}

func TestAddCargo_DefaultWeight(t *testing.T) {
	s := New()
	require.True(t, s.AddCargo(CargoItem{Name: "Crates"}, 4))
	assert.Equal(t, 1, s.Cargo.Items[0].Weight)
	assert.Equal(t, 4, s.Cargo.Used)
}

func TestAddCargo_Overflow(t *testing.T) {
	s := New()
	heavy := CargoItem{Name: "Girders", Weight: 10}

	require.True(t, s.AddCargo(heavy, 10))
	assert.False(t, s.AddCargo(heavy, 1))
	assert.False(t, s.AddCargo(CargoItem{Name: "Feather", Weight: 1}, 1))
	assert.Equal(t, 100, s.Cargo.Used)
	assert.Len(t, s.Cargo.Items, 1)
}

func TestRemoveCargo(t *testing.T) {
	s := New()
	require.True(t, s.AddCargo(CargoItem{Name: "Ore", Weight: 2}, 5))

	assert.False(t, s.RemoveCargo("Gold", 1))
	assert.False(t, s.RemoveCargo("Ore", 6))
	assert.True(t, s.RemoveCargo("Ore", 2))
	assert.Equal(t, 3, s.Cargo.Quantity("Ore"))
	assert.Equal(t, 6, s.Cargo.Used)

	assert.True(t, s.RemoveCargo("Ore", 3))
	assert.Empty(t, s.Cargo.Items)
	assert.Equal(t, 0, s.Cargo.Used)
}

func TestCargo_RoundTrip(t *testing.T) {
	s := New()
	require.True(t, s.AddCargo(CargoItem{Name: "Water", Weight: 2, Value: 20}, 10))
	require.True(t, s.AddCargo(CargoItem{Name: "Chips", Weight: 1, Value: 300}, 4))

	beforeUsed := s.Cargo.Used
	beforeItems := append([]CargoItem(nil), s.Cargo.Items...)

	cases := []struct {
		item CargoItem
		qty  int
	}{
		{CargoItem{Name: "Water", Weight: 2}, 3},
		{CargoItem{Name: "Chips", Weight: 1}, 4},
		{CargoItem{Name: "Spice", Weight: 5, Value: 90}, 6},
	}
	for _, c := range cases {
		require.True(t, s.AddCargo(c.item, c.qty))
		require.True(t, s.RemoveCargo(c.item.Name, c.qty))
		assert.Equal(t, beforeUsed, s.Cargo.Used)
		assert.Equal(t, beforeItems, s.Cargo.Items)
	}
}

func TestGoodsRegistry(t *testing.T) {
	g, ok := LookupGoods(GoodsElectronics)
	require.True(t, ok)
	item := g.CargoItem()
	assert.Equal(t, "Electronics", item.Name)
	assert.Equal(t, 320, item.Value)

	_, ok = LookupGoods("PLUTONIUM")
	assert.False(t, ok)
}
