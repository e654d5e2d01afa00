package pricing

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"hat-costing/internal/storage"
)

const (
	vatRate    = 0.1
	vatDivisor = 1 + vatRate
)

// Result is the derived set of per-unit figures. Values are not rounded.
type Result struct {
	MaterialCost     float64 `json:"material_cost"`
	FixedCostPerUnit float64 `json:"fixed_cost_per_unit"`
	LaborCost        float64 `json:"labor_cost"`
	TotalCost        float64 `json:"total_cost"`
	FeeRate          float64 `json:"fee_rate"`
	Fee              float64 `json:"fee"`
	VAT              float64 `json:"vat"`
	Profit           float64 `json:"profit"`
	MarginPct        float64 `json:"margin_pct"`
	Multiplier       float64 `json:"multiplier"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках показываем json-имена полей, их видит фронт
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks materials and inputs at the edge, before they are stored.
// Every failure wraps storage.ErrInvalidInput.
func Validate(materials []storage.MaterialLine, in storage.CostInputs) error {
	if err := ValidateInputs(in); err != nil {
		return err
	}
	return ValidateMaterials(materials)
}

func ValidateInputs(in storage.CostInputs) error {
	const op = "service.pricing.ValidateInputs"

	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrInvalidInput, describe(err))
	}

	amounts := []struct {
		name string
		v    float64
	}{
		{"sewing_cost", in.SewingCost},
		{"embroidery_cost", in.EmbroideryCost},
		{"finish_cost", in.FinishCost},
		{"logistics_cost", in.LogisticsCost},
		{"fixed_cost_total", in.FixedCostTotal},
		{"target_price", in.TargetPrice},
	}
	for _, a := range amounts {
		if !finite(a.v) {
			return fmt.Errorf("%s: %w: %s is not a finite number", op, storage.ErrInvalidInput, a.name)
		}
	}

	if !in.Channel.Valid() {
		return fmt.Errorf("%s: %w: unknown channel %q", op, storage.ErrInvalidInput, string(in.Channel))
	}

	return nil
}

func ValidateMaterials(materials []storage.MaterialLine) error {
	const op = "service.pricing.ValidateMaterials"

	for i, m := range materials {
		if !finite(m.UnitPrice) || !finite(m.UsageFactor) {
			return fmt.Errorf("%s: %w: material row %d is not a finite number", op, storage.ErrInvalidInput, i+1)
		}
		if err := validate.Struct(m); err != nil {
			return fmt.Errorf("%s: %w: material row %d: %s", op, storage.ErrInvalidInput, i+1, describe(err))
		}
	}

	return nil
}

// MaterialCost sums unit_price × usage_factor over the BOM.
func MaterialCost(materials []storage.MaterialLine) float64 {
	var sum float64
	for _, m := range materials {
		sum += m.UnitPrice * m.UsageFactor
	}
	return sum
}

// Calculate derives the per-unit cost, fee, VAT, profit and margin.
// It keeps no state between calls.
func Calculate(materials []storage.MaterialLine, in storage.CostInputs) (Result, error) {
	const op = "service.pricing.Calculate"

	if err := Validate(materials, in); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	feeRate, err := in.Channel.FeeRate()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w: %v", op, storage.ErrInvalidInput, err)
	}

	var r Result

	r.MaterialCost = MaterialCost(materials)
	r.FixedCostPerUnit = in.FixedCostTotal / float64(in.ProduceQty)
	r.LaborCost = in.SewingCost + in.EmbroideryCost + in.FinishCost + in.LogisticsCost + r.FixedCostPerUnit
	r.TotalCost = r.MaterialCost + r.LaborCost

	r.FeeRate = feeRate
	r.Fee = in.TargetPrice * feeRate

	// НДС либо уже внутри цены, либо сверху
	if in.VATIncluded {
		r.VAT = in.TargetPrice - in.TargetPrice/vatDivisor
	} else {
		r.VAT = in.TargetPrice * vatRate
	}

	r.Profit = in.TargetPrice - r.TotalCost - r.Fee - r.VAT

	if in.TargetPrice > 0 {
		r.MarginPct = r.Profit / in.TargetPrice * 100
	}
	if r.TotalCost > 0 {
		r.Multiplier = in.TargetPrice / r.TotalCost
	}

	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param())
}
