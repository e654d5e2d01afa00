package pricing

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// Display is the presentation view of a Result: whole won, thousands separators.
type Display struct {
	UnitCost   string `json:"unit_cost"`
	Profit     string `json:"profit"`
	Margin     string `json:"margin"`
	Breakdown  string `json:"breakdown"`
	Profitable bool   `json:"profitable"`
}

// Won truncates toward zero and formats as "14,800원".
func Won(v float64) string {
	return printer.Sprintf("%d원", Truncate(v))
}

// Truncate drops the fractional won, the way the form shows amounts.
// Out-of-range values saturate at the int64 bounds, NaN becomes 0.
func Truncate(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt64):
		return math.MaxInt64
	case v <= float64(math.MinInt64):
		return math.MinInt64
	}
	return int64(v)
}

// Percent formats a margin as "30.7%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func NewDisplay(r Result, targetPrice float64) Display {
	return Display{
		UnitCost: Won(r.TotalCost),
		Profit:   Won(r.Profit),
		Margin:   Percent(r.MarginPct),
		Breakdown: fmt.Sprintf("판매가 %s - 원가 %s - 수수료 %s - 부가세 %s",
			Won(targetPrice), Won(r.TotalCost), Won(r.Fee), Won(r.VAT)),
		Profitable: r.Profit > 0,
	}
}
