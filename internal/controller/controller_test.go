package controller

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/wattbill/internal/models"
	"github.com/mmynk/wattbill/internal/service"
	"github.com/mmynk/wattbill/internal/storage/sqlite"
)

func setupController(t *testing.T) *Controller {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(service.NewBillService(store))
}

func fill(c *Controller, name, address, units string) {
	c.SetName(name)
	c.SetAddress(address)
	c.SetUnits(units)
}

func TestController_AddClearsDraft(t *testing.T) {
	c := setupController(t)
	ctx := context.Background()

	fill(c, "Asha", "12 Oak St", "150")
	bill, err := c.Add(ctx)
	require.NoError(t, err)
	assert.Equal(t, 850.0, bill.TotalBill)
	assert.True(t, c.Draft().IsEmpty())

	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Bills, 1)
	assert.Equal(t, 850.0, snap.Revenue)
}

func TestController_FailedAddKeepsDraft(t *testing.T) {
	c := setupController(t)

	fill(c, "", "4 Elm St", "0")
	_, err := c.Add(context.Background())
	assert.True(t, service.IsValidation(err))
	assert.Equal(t, models.Draft{Name: "", Address: "4 Elm St", Units: "0"}, c.Draft())
}

func TestController_SelectUpdate(t *testing.T) {
	c := setupController(t)
	ctx := context.Background()

	fill(c, "Asha", "12 Oak St", "150")
	bill, err := c.Add(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Select(ctx, bill.ID))
	id, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, bill.ID, id)
	assert.Equal(t, models.Draft{Name: "Asha", Address: "12 Oak St", Units: "150"}, c.Draft())

	c.SetUnits("50")
	updated, err := c.Update(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.TotalBill)

	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestController_UpdateWithoutSelection(t *testing.T) {
	c := setupController(t)

	fill(c, "Asha", "12 Oak St", "150")
	_, err := c.Update(context.Background())
	assert.True(t, service.IsSelection(err))
}

func TestController_SelectUnknownKeepsState(t *testing.T) {
	c := setupController(t)

	fill(c, "Asha", "12 Oak St", "150")
	err := c.Select(context.Background(), 12)
	assert.True(t, service.IsSelection(err))
	assert.Equal(t, "Asha", c.Draft().Name)
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestController_Delete(t *testing.T) {
	c := setupController(t)
	ctx := context.Background()

	fill(c, "Asha", "12 Oak St", "150")
	bill, err := c.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Select(ctx, bill.ID))

	deleted, err := c.Delete(ctx, func(*models.BillRecord) bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	_, ok := c.Selected()
	assert.True(t, ok, "declined delete keeps the selection")

	deleted, err = c.Delete(ctx, func(*models.BillRecord) bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)
	_, ok = c.Selected()
	assert.False(t, ok)

	snap, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Bills)
	assert.Equal(t, 0.0, snap.Revenue)
}

func TestController_StaleSelectionIsDropped(t *testing.T) {
	c := setupController(t)
	ctx := context.Background()

	fill(c, "Asha", "12 Oak St", "150")
	bill, err := c.Add(ctx)
	require.NoError(t, err)

	// Removed behind the controller's back, e.g. by another shell on the same file.
	removeBill := func() {
		_, err := c.svc.Delete(ctx, bill.ID, func(*models.BillRecord) bool { return true })
		require.NoError(t, err)
	}

	t.Run("update", func(t *testing.T) {
		require.NoError(t, c.Select(ctx, bill.ID))
		removeBill()

		c.SetUnits("10")
		_, err := c.Update(ctx)
		assert.True(t, service.IsSelection(err))
		_, ok := c.Selected()
		assert.False(t, ok)
		assert.True(t, c.Draft().IsEmpty())
	})

	t.Run("delete", func(t *testing.T) {
		fill(c, "Bo", "4 Elm St", "20")
		again, err := c.Add(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Select(ctx, again.ID))

		_, err = c.svc.Delete(ctx, again.ID, func(*models.BillRecord) bool { return true })
		require.NoError(t, err)

		_, err = c.Delete(ctx, func(*models.BillRecord) bool { return true })
		assert.True(t, service.IsSelection(err))
		_, ok := c.Selected()
		assert.False(t, ok)
	})
}

func TestController_ValidationErrorKeepsSelection(t *testing.T) {
	c := setupController(t)
	ctx := context.Background()

	fill(c, "Asha", "12 Oak St", "150")
	bill, err := c.Add(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Select(ctx, bill.ID))

	c.SetUnits("-5")
	_, err = c.Update(ctx)
	assert.True(t, service.IsValidation(err))
	id, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, bill.ID, id)
}
