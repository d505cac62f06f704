package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/wattbill/internal/controller"
	"github.com/mmynk/wattbill/internal/service"
	"github.com/mmynk/wattbill/internal/storage/sqlite"
)

// runScript feeds the lines to a fresh shell and returns everything it printed.
func runScript(t *testing.T, svc *service.BillService, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	shell := NewShell(controller.New(svc), in, &out, "₹")

	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func setupService(t *testing.T) *service.BillService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return service.NewBillService(store)
}

func TestShell_EmptyStart(t *testing.T) {
	out := runScript(t, setupService(t), "quit")

	assert.Contains(t, out, "ELECTRIC BILL MANAGEMENT SYSTEM")
	assert.Contains(t, out, "No bills recorded.")
	assert.Contains(t, out, "Total Revenue: ₹0.00")
}

func TestShell_AddRendersTable(t *testing.T) {
	svc := setupService(t)
	out := runScript(t, svc,
		"name Asha",
		"address 12 Oak St",
		"units 150",
		"add",
	)

	assert.Contains(t, out, "Bill added! Total Bill: ₹850.00")
	assert.Contains(t, out, "Customer Name")
	assert.Contains(t, out, "12 Oak St")
	assert.Contains(t, out, "Total Revenue: ₹850.00")

	bills, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Asha", bills[0].Name)
}

func TestShell_ValidationErrorIsReported(t *testing.T) {
	svc := setupService(t)
	out := runScript(t, svc,
		"address 4 Elm St",
		"units 0",
		"add",
	)

	assert.Contains(t, out, "Error: invalid name: is required")

	bills, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestShell_SelectUpdate(t *testing.T) {
	svc := setupService(t)
	out := runScript(t, svc,
		"name Asha",
		"address 12 Oak St",
		"units 150",
		"add",
		"select 1",
		"units 101",
		"draft",
		"update",
	)

	assert.Contains(t, out, "Selected: bill 1")
	assert.Contains(t, out, "Estimate: 100 x ₹5.00 + 1 x ₹7.00 = ₹507.00")
	assert.Contains(t, out, "Bill updated! New Total: ₹507.00")
}

func TestShell_UpdateNegativeUnits(t *testing.T) {
	svc := setupService(t)
	out := runScript(t, svc,
		"name Asha",
		"address 12 Oak St",
		"units 150",
		"add",
		"select 1",
		"units -5",
		"update",
	)

	assert.Contains(t, out, "Error: invalid units: must not be negative")

	bill, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(150), bill.Units)
}

func TestShell_DeleteRequiresConfirmation(t *testing.T) {
	svc := setupService(t)
	out := runScript(t, svc,
		"name Asha",
		"address 12 Oak St",
		"units 150",
		"add",
		"select 1",
		"delete",
		"n",
		"delete",
		"yes",
	)

	assert.Contains(t, out, "Are you sure you want to delete this record? [y/N]")
	assert.Contains(t, out, "Delete cancelled.")
	assert.Contains(t, out, "Record deleted successfully!")

	bills, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestShell_SelectionErrors(t *testing.T) {
	out := runScript(t, setupService(t),
		"update",
		"delete",
		"select 9",
		"select abc",
	)

	assert.Equal(t, 2, strings.Count(out, "Error: no bill selected"))
	assert.Contains(t, out, "Error: bill 9 does not exist")
	assert.Contains(t, out, `Error: invalid bill id: "abc"`)
}

func TestShell_UnknownCommandAndHelp(t *testing.T) {
	out := runScript(t, setupService(t), "frobnicate", "help")

	assert.Contains(t, out, "Error: unknown command: frobnicate")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "select <id>")
}

func TestShell_EOFEndsRun(t *testing.T) {
	var out bytes.Buffer
	shell := NewShell(controller.New(setupService(t)), strings.NewReader("list"), &out, "$")

	require.NoError(t, shell.Run(context.Background()))
	assert.Contains(t, out.String(), "Total Revenue: $0.00")
}

func TestShell_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	shell := NewShell(controller.New(setupService(t)), strings.NewReader("list\n"), &out, "$")

	err := shell.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
