package ship

// GoodsID identifies a tradeable commodity.
type GoodsID string

const (
	GoodsWater       GoodsID = "WATER"
	GoodsRations     GoodsID = "RATIONS"
	GoodsMachinery   GoodsID = "MACHINERY"
	GoodsElectronics GoodsID = "ELECTRONICS"
	GoodsMedical     GoodsID = "MEDICAL"
	GoodsLuxuries    GoodsID = "LUXURIES"
)

// Goods describes a commodity sold at ports.
type Goods struct {
	Name        string
	Description string
	Weight      int // tons per unit
	BaseValue   int // credits per unit
}

// Registry contains every commodity a port trades.
var Registry = map[GoodsID]Goods{
	GoodsWater: {
		Name:        "Purified Water",
		Description: "Bulk water for life support reserves.",
		Weight:      2,
		BaseValue:   20,
	},
	GoodsRations: {
		Name:        "Ration Packs",
		Description: "Shelf-stable food for long hauls.",
		Weight:      1,
		BaseValue:   45,
	},
	GoodsMachinery: {
		Name:        "Machine Parts",
		Description: "Spare parts for mining rigs and freighters.",
		Weight:      4,
		BaseValue:   180,
	},
	GoodsElectronics: {
		Name:        "Electronics",
		Description: "Navigation boards and sensor components.",
		Weight:      1,
		BaseValue:   320,
	},
	GoodsMedical: {
		Name:        "Medical Supplies",
		Description: "Sterile kits and pharmaceuticals.",
		Weight:      1,
		BaseValue:   260,
	},
	GoodsLuxuries: {
		Name:        "Luxury Goods",
		Description: "Fine textiles and rare spirits for wealthy stations.",
		Weight:      1,
		BaseValue:   600,
	},
}

// LookupGoods returns a commodity by id.
func LookupGoods(id GoodsID) (Goods, bool) {
	g, ok := Registry[id]
	return g, ok
}

// CargoItem converts the commodity into a manifest line template.
func (g Goods) CargoItem() CargoItem {
	return CargoItem{Name: g.Name, Weight: g.Weight, Value: g.BaseValue}
}
