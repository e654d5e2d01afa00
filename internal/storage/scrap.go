package storage

// ScrapEntry is a snapshot of one calculation taken by the save action.
// Money fields are truncated to whole won.
type ScrapEntry struct {
	ProductName string `json:"product_name"`
	ProduceQty  int    `json:"produce_qty"`
	Channel     string `json:"channel"`
	TargetPrice int64  `json:"target_price"`
	TotalCost   int64  `json:"total_cost"`
	Fee         int64  `json:"fee"`
	VAT         int64  `json:"vat"`
	Profit      int64  `json:"profit"`
	Margin      string `json:"margin"`
	SavedAt     string `json:"saved_at"`
}

// ScrapSummary is the compact sidebar projection of a ScrapEntry.
type ScrapSummary struct {
	ProductName string `json:"product_name"`
	TargetPrice int64  `json:"target_price"`
	Profit      int64  `json:"profit"`
	Margin      string `json:"margin"`
}
