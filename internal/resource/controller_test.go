package resource

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/resource/form"
	"github.com/ridloal/hidayah-backoffice/internal/resource/gateway/mocks"
)

type barang struct {
	ID    domain.ID       `json:"id"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
}

func (b barang) RecordID() domain.ID { return b.ID }
func (b barang) DisplayName() string { return b.Name }

func barangDefinition(confirm bool) Definition[barang] {
	return Definition[barang]{
		Name: "Barang",
		Path: "barang",
		Schema: form.Schema[barang]{
			Fields: []form.Field{
				{Name: "name", Kind: form.Text, Required: true},
				{Name: "price", Kind: form.Number, Required: true},
			},
			Fill: func(b barang) form.Draft {
				return form.Draft{"name": b.Name, "price": b.Price.String()}
			},
			Build: func(id domain.ID, d form.Draft) barang {
				return barang{ID: id, Name: d.Text("name"), Price: d.Decimal("price")}
			},
		},
		Amount:        func(b barang) decimal.Decimal { return b.Price },
		ConfirmDelete: confirm,
		Columns:       []string{"Nama", "Harga"},
		Row:           func(b barang) []string { return []string{b.Name, b.Price.String()} },
	}
}

func mountedController(t *testing.T, confirm bool, items ...barang) (*Controller[barang], *mocks.MockGateway[barang], *notify.Recorder) {
	t.Helper()
	gw := new(mocks.MockGateway[barang])
	rec := &notify.Recorder{}
	c := NewController(barangDefinition(confirm), gw, rec)
	gw.On("List", mock.Anything, domain.DefaultQuery()).Return(items, nil).Once()
	require.NoError(t, c.Mount(context.Background()))
	return c, gw, rec
}

func TestController_Mount(t *testing.T) {
	t.Run("Server error is notified and collection kept", func(t *testing.T) {
		c, gw, rec := mountedController(t, false, barang{ID: 1, Name: "Kertas A4", Price: decimal.NewFromInt(50000)})
		gw.On("List", mock.Anything, domain.DefaultQuery()).
			Return(nil, &domain.ServerError{Op: "barang.list", Status: 500}).Once()

		err := c.Refresh(context.Background())

		assert.Error(t, err)
		assert.Len(t, c.Visible(), 1)
		last, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, notify.LevelError, last.Level)
		assert.Contains(t, last.Message, "500")
	})
}

func TestController_AddAndTotal(t *testing.T) {
	ctx := context.Background()
	c, gw, rec := mountedController(t, false, barang{ID: 1, Name: "Kertas A4", Price: decimal.NewFromInt(50000)})
	assert.Equal(t, "50000", c.Total().String())

	require.NoError(t, c.OpenAdd())
	require.NoError(t, c.SetField("name", "Tinta"))
	require.NoError(t, c.SetField("price", "75000"))
	gw.On("Create", ctx, mock.AnythingOfType("resource.barang")).
		Return(barang{ID: 2, Name: "Tinta", Price: decimal.NewFromInt(75000)}, nil).Once()

	saved, err := c.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ID(2), saved.ID)
	items := c.Store().Items()
	require.Len(t, items, 2)
	assert.Equal(t, domain.ID(2), items[0].ID)
	assert.Equal(t, domain.ID(1), items[1].ID)
	assert.Equal(t, "125000", c.Total().String())
	assert.Equal(t, form.Closed, c.Form().State())
	assert.Equal(t, 1, rec.Count(notify.LevelSuccess))
	gw.AssertExpectations(t)
}

func TestController_Edit(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := mountedController(t, false, barang{ID: 5, Name: "Lama", Price: decimal.NewFromInt(1000)})

	require.NoError(t, c.OpenEdit(5))
	require.NoError(t, c.SetField("name", "Baru"))
	gw.On("Update", ctx, domain.ID(5), mock.MatchedBy(func(b barang) bool { return b.ID == 5 && b.Name == "Baru" })).
		Return(barang{ID: 5, Name: "Baru", Price: decimal.NewFromInt(1000)}, nil).Once()

	_, err := c.Submit(ctx)

	require.NoError(t, err)
	got, ok := c.Store().Get(5)
	require.True(t, ok)
	assert.Equal(t, "Baru", got.Name)
	assert.Nil(t, c.Form().Draft())
	assert.Equal(t, form.Closed, c.Form().State())
}

func TestController_OpenEditUnknown(t *testing.T) {
	c, _, rec := mountedController(t, false)

	err := c.OpenEdit(42)

	assert.ErrorIs(t, err, domain.ErrNotInCollection)
	assert.Equal(t, 1, rec.Count(notify.LevelError))
}

func TestController_SubmitValidation(t *testing.T) {
	c, gw, rec := mountedController(t, false)
	require.NoError(t, c.OpenAdd())
	require.NoError(t, c.SetField("price", "-5"))

	_, err := c.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, form.Open, c.Form().State())
	last, _ := rec.Last()
	assert.Contains(t, last.Message, "Data tidak valid")
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestController_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Direct delete", func(t *testing.T) {
		c, gw, _ := mountedController(t, false, barang{ID: 1, Name: "A"})
		gw.On("Remove", ctx, domain.ID(1)).Return(nil).Once()

		assert.NoError(t, c.Delete(ctx, 1))
		assert.Empty(t, c.Visible())
	})

	t.Run("Confirmation required", func(t *testing.T) {
		c, gw, _ := mountedController(t, true, barang{ID: 1, Name: "A"})

		assert.ErrorIs(t, c.Delete(ctx, 1), domain.ErrConfirmationRequired)
		assert.ErrorIs(t, c.ConfirmDelete(ctx), domain.ErrConfirmationRequired)
		gw.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("Request then confirm", func(t *testing.T) {
		c, gw, _ := mountedController(t, true, barang{ID: 1, Name: "A"}, barang{ID: 2, Name: "B"})
		require.NoError(t, c.RequestDelete(2))
		id, ok := c.PendingDelete()
		require.True(t, ok)
		assert.Equal(t, domain.ID(2), id)
		gw.On("Remove", ctx, domain.ID(2)).Return(nil).Once()

		require.NoError(t, c.ConfirmDelete(ctx))

		_, ok = c.PendingDelete()
		assert.False(t, ok)
		assert.Len(t, c.Visible(), 1)
		gw.AssertExpectations(t)
	})

	t.Run("Cancel keeps the record", func(t *testing.T) {
		c, gw, _ := mountedController(t, true, barang{ID: 1, Name: "A"})
		require.NoError(t, c.RequestDelete(1))

		c.CancelDelete()

		assert.ErrorIs(t, c.ConfirmDelete(ctx), domain.ErrConfirmationRequired)
		assert.Len(t, c.Visible(), 1)
		gw.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestDefinition_Table(t *testing.T) {
	def := barangDefinition(false)
	table := def.Table([]barang{{ID: 1, Name: "Tinta", Price: decimal.NewFromInt(75000)}})

	assert.Equal(t, "Barang", table.Title)
	assert.Equal(t, [][]string{{"Tinta", "75000"}}, table.Rows)
}

func TestController_Screen(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := mountedController(t, true, barang{ID: 1, Name: "Kertas A4", Price: decimal.NewFromInt(50000)})
	s := c.Screen()

	assert.Equal(t, "Barang", s.Title())
	assert.Equal(t, "barang", s.Path())
	assert.True(t, s.NeedsConfirmation())
	total, ok := s.Total()
	assert.True(t, ok)
	assert.Equal(t, "50000", total.String())
	assert.Equal(t, [][]string{{"Kertas A4", "50000"}}, s.Table().Rows)

	require.NoError(t, s.OpenAdd())
	require.NoError(t, s.SetField("name", "Tinta"))
	require.NoError(t, s.SetField("price", "75000"))
	assert.Equal(t, "Tinta", s.Draft()["name"])
	gw.On("Create", ctx, mock.Anything).Return(barang{ID: 2, Name: "Tinta", Price: decimal.NewFromInt(75000)}, nil).Once()

	id, err := s.Submit(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ID(2), id)
	assert.Len(t, s.Table().Rows, 2)
}
