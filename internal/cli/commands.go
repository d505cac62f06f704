package cli

import (
	"context"
	"fmt"

	"github.com/mmynk/wattbill/internal/models"
)

func (s *Shell) buildCommands() map[string]*Command {
	cmds := []*Command{
		{
			Name:        "name",
			Args:        "<text>",
			Description: "Set the customer name of the draft",
			Run: func(_ context.Context, arg string) error {
				s.ctrl.SetName(arg)
				return nil
			},
		},
		{
			Name:        "address",
			Args:        "<text>",
			Description: "Set the address of the draft",
			Run: func(_ context.Context, arg string) error {
				s.ctrl.SetAddress(arg)
				return nil
			},
		},
		{
			Name:        "units",
			Args:        "<number>",
			Description: "Set the units consumed of the draft",
			Run: func(_ context.Context, arg string) error {
				s.ctrl.SetUnits(arg)
				return nil
			},
		},
		{
			Name:        "draft",
			Description: "Show the draft, the selection and an estimated bill",
			Run: func(_ context.Context, _ string) error {
				s.renderDraft()
				return nil
			},
		},
		{
			Name:        "select",
			Args:        "<id>",
			Description: "Load a bill into the draft for update or delete",
			Run: func(ctx context.Context, arg string) error {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				if err := s.ctrl.Select(ctx, id); err != nil {
					return err
				}
				s.renderDraft()
				return nil
			},
		},
		{
			Name:        "add",
			Description: "Create a bill from the draft",
			Mutates:     true,
			Run: func(ctx context.Context, _ string) error {
				bill, err := s.ctrl.Add(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Bill added! Total Bill: %s\n", s.money(bill.TotalBill))
				return nil
			},
		},
		{
			Name:        "update",
			Description: "Overwrite the selected bill with the draft",
			Mutates:     true,
			Run: func(ctx context.Context, _ string) error {
				bill, err := s.ctrl.Update(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Bill updated! New Total: %s\n", s.money(bill.TotalBill))
				return nil
			},
		},
		{
			Name:        "delete",
			Description: "Delete the selected bill after confirmation",
			Mutates:     true,
			Run: func(ctx context.Context, _ string) error {
				deleted, err := s.ctrl.Delete(ctx, func(bill *models.BillRecord) bool {
					fmt.Fprintf(s.out, "Bill %d: %s, %s, %d units, %s\n",
						bill.ID, bill.Name, bill.Address, bill.Units, s.money(bill.TotalBill))
					return s.confirm("Are you sure you want to delete this record?")
				})
				if err != nil {
					return err
				}
				if deleted {
					fmt.Fprintln(s.out, "Record deleted successfully!")
				} else {
					fmt.Fprintln(s.out, "Delete cancelled.")
				}
				return nil
			},
		},
		{
			Name:        "clear",
			Description: "Empty the draft and drop the selection",
			Run: func(_ context.Context, _ string) error {
				s.ctrl.Clear()
				return nil
			},
		},
		{
			Name:        "list",
			Description: "Show every bill and the total revenue",
			Run: func(ctx context.Context, _ string) error {
				return s.render(ctx)
			},
		},
		{
			Name:        "revenue",
			Description: "Show the total revenue",
			Run: func(ctx context.Context, _ string) error {
				snap, err := s.ctrl.Snapshot(ctx)
				if err != nil {
					return err
				}
				s.renderRevenue(snap.Revenue)
				return nil
			},
		},
		{
			Name:        "help",
			Description: "Show this list",
			Run: func(_ context.Context, _ string) error {
				s.usage()
				return nil
			},
		},
		{
			Name:        "quit",
			Description: "Leave the shell",
			Run: func(_ context.Context, _ string) error {
				return errQuit
			},
		},
	}

	byName := make(map[string]*Command, len(cmds)+1)
	for _, cmd := range cmds {
		byName[cmd.Name] = cmd
	}
	byName["exit"] = byName["quit"]
	return byName
}
