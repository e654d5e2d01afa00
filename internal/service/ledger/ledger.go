package ledger

import (
	"fmt"
	"time"

	"hat-costing/internal/service/pricing"
	"hat-costing/internal/storage"
)

// SavedAtLayout is how the save time is written into a scrap.
const SavedAtLayout = "2006-01-02 15:04"

// SheetWriter turns scraps into a tabular file.
type SheetWriter interface {
	WriteScraps(entries []storage.ScrapEntry) ([]byte, error)
}

// Ledger is the ordered list of saved scraps for one session.
// It is not safe for concurrent use; the session owning it serializes access.
type Ledger struct {
	entries []storage.ScrapEntry
}

func New() *Ledger {
	return &Ledger{}
}

// NewEntry snapshots a calculation.
func NewEntry(productName string, in storage.CostInputs, res pricing.Result, savedAt time.Time) storage.ScrapEntry {
	return storage.ScrapEntry{
		ProductName: productName,
		ProduceQty:  in.ProduceQty,
		Channel:     in.Channel.Label(),
		TargetPrice: pricing.Truncate(in.TargetPrice),
		TotalCost:   pricing.Truncate(res.TotalCost),
		Fee:         pricing.Truncate(res.Fee),
		VAT:         pricing.Truncate(res.VAT),
		Profit:      pricing.Truncate(res.Profit),
		Margin:      pricing.Percent(res.MarginPct),
		SavedAt:     savedAt.Format(SavedAtLayout),
	}
}

func (l *Ledger) Append(entry storage.ScrapEntry) {
	l.entries = append(l.entries, entry)
}

func (l *Ledger) Clear() {
	l.entries = nil
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy in insertion order.
func (l *Ledger) Entries() []storage.ScrapEntry {
	out := make([]storage.ScrapEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Summary is the read-only sidebar projection.
func (l *Ledger) Summary() []storage.ScrapSummary {
	out := make([]storage.ScrapSummary, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, storage.ScrapSummary{
			ProductName: e.ProductName,
			TargetPrice: e.TargetPrice,
			Profit:      e.Profit,
			Margin:      e.Margin,
		})
	}
	return out
}

// Export serializes every entry through w. The ledger is left as is either way;
// on failure no bytes are returned.
func (l *Ledger) Export(w SheetWriter) ([]byte, error) {
	const op = "service.ledger.Export"

	data, err := w.WriteScraps(l.Entries())
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrExportFailure, err)
	}

	return data, nil
}
