// Package controller holds front-end state: the draft being edited and the selected bill.
// Each user action maps to exactly one BillService call.
package controller

import (
	"context"

	"github.com/mmynk/wattbill/internal/models"
	"github.com/mmynk/wattbill/internal/service"
)

// Snapshot is everything a front end renders after an action.
type Snapshot struct {
	Bills   []*models.BillRecord
	Revenue float64
}

// Controller tracks the current draft and selection for one front end.
type Controller struct {
	svc      *service.BillService
	draft    models.Draft
	selected int64
}

// New creates a Controller with an empty draft and no selection.
func New(svc *service.BillService) *Controller {
	return &Controller{svc: svc}
}

// SetName sets the customer name of the draft.
func (c *Controller) SetName(name string) { c.draft.Name = name }

// SetAddress sets the address of the draft.
func (c *Controller) SetAddress(address string) { c.draft.Address = address }

// SetUnits sets the raw units text of the draft.
func (c *Controller) SetUnits(units string) { c.draft.Units = units }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.Draft {
	return c.draft
}

// Selected returns the selected bill id and whether one is selected.
func (c *Controller) Selected() (int64, bool) {
	return c.selected, c.selected != 0
}

// Clear empties the draft and drops the selection.
func (c *Controller) Clear() {
	c.draft = models.Draft{}
	c.selected = 0
}

// Select makes id the current selection and loads it into the draft.
// On error the previous draft and selection are kept.
func (c *Controller) Select(ctx context.Context, id int64) error {
	draft, err := c.svc.LoadDraft(ctx, id)
	if err != nil {
		return err
	}
	c.draft = draft
	c.selected = id
	return nil
}

// Add creates a bill from the draft. The draft is cleared on success.
func (c *Controller) Add(ctx context.Context) (*models.BillRecord, error) {
	bill, err := c.svc.Create(ctx, c.draft)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return bill, nil
}

// dropStaleSelection forgets a selected bill that no longer exists.
func (c *Controller) dropStaleSelection(err error) {
	if c.selected != 0 && service.IsSelection(err) {
		c.Clear()
	}
}

// Update writes the draft over the selected bill. The draft and selection are cleared on success,
// and also when the selected bill has disappeared.
func (c *Controller) Update(ctx context.Context) (*models.BillRecord, error) {
	bill, err := c.svc.Update(ctx, c.selected, c.draft)
	if err != nil {
		c.dropStaleSelection(err)
		return nil, err
	}
	c.Clear()
	return bill, nil
}

// Delete removes the selected bill once confirm approves it.
// The draft and selection are cleared when a bill was removed or the selected bill has disappeared.
func (c *Controller) Delete(ctx context.Context, confirm service.ConfirmFunc) (bool, error) {
	deleted, err := c.svc.Delete(ctx, c.selected, confirm)
	if err != nil {
		c.dropStaleSelection(err)
		return false, err
	}
	if !deleted {
		return false, nil
	}
	c.Clear()
	return true, nil
}

// Snapshot re-queries every bill and the revenue total.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	bills, err := c.svc.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	revenue, err := c.svc.TotalRevenue(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Bills: bills, Revenue: revenue}, nil
}
