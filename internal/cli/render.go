package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mmynk/wattbill/internal/calculator"
	"github.com/mmynk/wattbill/internal/models"
)

func (s *Shell) money(amount float64) string {
	return s.currency + strconv.FormatFloat(amount, 'f', 2, 64)
}

// render prints every bill followed by the revenue line.
func (s *Shell) render(ctx context.Context) error {
	snap, err := s.ctrl.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.renderTable(snap.Bills)
	s.renderRevenue(snap.Revenue)
	return nil
}

func (s *Shell) renderTable(bills []*models.BillRecord) {
	if len(bills) == 0 {
		fmt.Fprintln(s.out, "No bills recorded.")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tCustomer Name\tAddress\tUnits\tTotal Bill (%s)\n", s.currency)
	for _, b := range bills {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Name, b.Address, b.Units,
			strconv.FormatFloat(b.TotalBill, 'f', 2, 64))
	}
	w.Flush()
}

func (s *Shell) renderRevenue(total float64) {
	fmt.Fprintf(s.out, "Total Revenue: %s\n", s.money(total))
}

// renderDraft prints the draft and, when its units parse, the tariff breakdown.
func (s *Shell) renderDraft() {
	draft := s.ctrl.Draft()
	if id, ok := s.ctrl.Selected(); ok {
		fmt.Fprintf(s.out, "Selected: bill %d\n", id)
	} else {
		fmt.Fprintln(s.out, "Selected: none")
	}
	fmt.Fprintf(s.out, "Name:     %s\n", draft.Name)
	fmt.Fprintf(s.out, "Address:  %s\n", draft.Address)
	fmt.Fprintf(s.out, "Units:    %s\n", draft.Units)

	units, err := strconv.ParseInt(strings.TrimSpace(draft.Units), 10, 64)
	if err != nil || units < 0 {
		return
	}
	tiers := calculator.Breakdown(units)
	estimate := fmt.Sprintf("%d x %s", tiers.TierOneUnits, s.money(calculator.TierOneRate))
	if tiers.TierTwoUnits > 0 {
		estimate += fmt.Sprintf(" + %d x %s", tiers.TierTwoUnits, s.money(calculator.TierTwoRate))
	}
	fmt.Fprintf(s.out, "Estimate: %s = %s\n", estimate, s.money(tiers.Total()))
}
