package service

import (
	"fmt"
	"strings"
	"time"

	"hat-costing/internal/service/ledger"
	"hat-costing/internal/service/pricing"
	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

// Calculation is the recomputed view of a session sent back after every change.
type Calculation struct {
	ProductName string             `json:"product_name"`
	Inputs      storage.CostInputs `json:"inputs"`
	Result      pricing.Result     `json:"result"`
	Display     pricing.Display    `json:"display"`
}

type CostService struct {
	writer ledger.SheetWriter
	now    func() time.Time
}

func NewCostService(writer ledger.SheetWriter) *CostService {
	return &CostService{writer: writer, now: time.Now}
}

// Recalculate runs the pricing engine over the session's current form and BOM.
func (s *CostService) Recalculate(st *session.State) (Calculation, error) {
	const op = "service.cost_service.Recalculate"

	form, materials := st.Snapshot()

	calc, err := compute(form, materials)
	if err != nil {
		return Calculation{}, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

// Compute is the stateless form of Recalculate: nothing is read from or stored
// into a session.
func (s *CostService) Compute(form storage.Form, materials []storage.MaterialLine) (Calculation, error) {
	const op = "service.cost_service.Compute"

	calc, err := compute(form, materials)
	if err != nil {
		return Calculation{}, fmt.Errorf("%s: %w", op, err)
	}

	return calc, nil
}

func compute(form storage.Form, materials []storage.MaterialLine) (Calculation, error) {
	res, err := pricing.Calculate(materials, form.Inputs)
	if err != nil {
		return Calculation{}, err
	}

	return Calculation{
		ProductName: form.ProductName,
		Inputs:      form.Inputs,
		Result:      res,
		Display:     pricing.NewDisplay(res, form.Inputs.TargetPrice),
	}, nil
}

// UpdateForm validates and stores a new form. An invalid form leaves the
// previous one in place.
func (s *CostService) UpdateForm(st *session.State, form storage.Form) (Calculation, error) {
	const op = "service.cost_service.UpdateForm"

	if err := pricing.ValidateInputs(form.Inputs); err != nil {
		return Calculation{}, fmt.Errorf("%s: %w", op, err)
	}

	st.SetForm(form)

	return s.Recalculate(st)
}

// UpdateMaterials validates and replaces the BOM table.
func (s *CostService) UpdateMaterials(st *session.State, lines []storage.MaterialLine) (Calculation, error) {
	const op = "service.cost_service.UpdateMaterials"

	if err := pricing.ValidateMaterials(lines); err != nil {
		return Calculation{}, fmt.Errorf("%s: %w", op, err)
	}

	st.SetMaterials(lines)

	return s.Recalculate(st)
}

func (s *CostService) ResetMaterials(st *session.State) (Calculation, error) {
	st.SetMaterials(storage.DefaultMaterials())
	return s.Recalculate(st)
}

// Save snapshots the current calculation into the session ledger.
// An empty productName falls back to the one in the form.
func (s *CostService) Save(st *session.State, productName string) (storage.ScrapEntry, error) {
	const op = "service.cost_service.Save"

	calc, err := s.Recalculate(st)
	if err != nil {
		return storage.ScrapEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(productName)
	if name == "" {
		name = calc.ProductName
	}

	entry := ledger.NewEntry(name, calc.Inputs, calc.Result, s.now())

	st.UpdateLedger(func(l *ledger.Ledger) {
		l.Append(entry)
	})

	return entry, nil
}

// Scraps returns the full list and its sidebar projection.
func (s *CostService) Scraps(st *session.State) ([]storage.ScrapEntry, []storage.ScrapSummary) {
	var (
		entries []storage.ScrapEntry
		summary []storage.ScrapSummary
	)
	_ = st.WithLedger(func(l *ledger.Ledger) error {
		entries = l.Entries()
		summary = l.Summary()
		return nil
	})
	return entries, summary
}

func (s *CostService) ClearScraps(st *session.State) {
	st.UpdateLedger(func(l *ledger.Ledger) {
		l.Clear()
	})
}

// Export writes the session ledger to an xlsx file. Errors wrap storage.ErrExportFailure.
func (s *CostService) Export(st *session.State) ([]byte, error) {
	const op = "service.cost_service.Export"

	var data []byte
	err := st.WithLedger(func(l *ledger.Ledger) error {
		var err error
		data, err = l.Export(s.writer)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

// FileNames returns the download name for an export made now and its ASCII
// fallback for clients that ignore filename*. Both carry the same timestamp.
func (s *CostService) FileNames() (name, ascii string) {
	stamp := s.now().Format("20060102_1504")
	return fmt.Sprintf("원가계산서_%s.xlsx", stamp), fmt.Sprintf("costing_%s.xlsx", stamp)
}
