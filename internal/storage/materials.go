package storage

import "hat-costing/internal/constants"

// MaterialLine is one row of the bill of materials.
type MaterialLine struct {
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0,lte=1000000000000"`
	UsageFactor float64 `json:"usage_factor" validate:"gte=0,lte=1000000"`
}

// DefaultMaterials returns a fresh copy of the seed table.
func DefaultMaterials() []MaterialLine {
	lines := make([]MaterialLine, 0, len(constants.DefaultMaterials))
	for _, m := range constants.DefaultMaterials {
		lines = append(lines, MaterialLine{
			Name:        m.Name,
			UnitPrice:   m.UnitPrice,
			UsageFactor: m.UsageFactor,
		})
	}
	return lines
}
