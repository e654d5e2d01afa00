package storage

import "hat-costing/internal/constants"

// CostInputs is the full set of scalar parameters for one calculation.
type CostInputs struct {
	ProduceQty     int               `json:"produce_qty" validate:"gte=1"`
	SewingCost     float64           `json:"sewing_cost" validate:"gte=0,lte=1000000000000"`
	EmbroideryCost float64           `json:"embroidery_cost" validate:"gte=0,lte=1000000000000"`
	FinishCost     float64           `json:"finish_cost" validate:"gte=0,lte=1000000000000"`
	LogisticsCost  float64           `json:"logistics_cost" validate:"gte=0,lte=1000000000000"`
	FixedCostTotal float64           `json:"fixed_cost_total" validate:"gte=0,lte=1000000000000"`
	TargetPrice    float64           `json:"target_price" validate:"gte=0,lte=1000000000000"`
	Channel        constants.Channel `json:"channel" validate:"required"`
	VATIncluded    bool              `json:"vat_included"`
}

// Form is what the user has typed into the calculator besides the BOM table.
type Form struct {
	ProductName string     `json:"product_name"`
	Inputs      CostInputs `json:"inputs"`
}

func DefaultInputs() CostInputs {
	return CostInputs{
		ProduceQty:     constants.DefaultProduceQty,
		SewingCost:     constants.DefaultSewingCost,
		EmbroideryCost: constants.DefaultEmbroideryCost,
		FinishCost:     constants.DefaultFinishCost,
		LogisticsCost:  constants.DefaultLogisticsCost,
		FixedCostTotal: constants.DefaultFixedCostTotal,
		TargetPrice:    constants.DefaultTargetPrice,
		Channel:        constants.DefaultChannel,
		VATIncluded:    constants.DefaultVATIncluded,
	}
}

func DefaultForm() Form {
	return Form{
		ProductName: constants.DefaultProductName,
		Inputs:      DefaultInputs(),
	}
}
