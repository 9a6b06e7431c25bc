package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/catalog/repository"
	"github.com/ridloal/hidayah-backoffice/internal/catalog/repository/mocks"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

func TestCatalogService_List(t *testing.T) {
	mockRepo := new(mocks.MockRepository[domain.Jasa])
	svc := NewCatalogService[domain.Jasa](mockRepo)
	ctx := context.TODO()

	t.Run("Empty sort defaults to latest", func(t *testing.T) {
		want := []domain.Jasa{{ID: 1, Name: "Servis"}}
		mockRepo.On("List", ctx, rdomain.Query{Search: "ser", Sort: rdomain.SortLatest}).Return(want, nil).Once()

		items, err := svc.List(ctx, rdomain.Query{Search: "ser"})

		assert.NoError(t, err)
		assert.Equal(t, want, items)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mockRepo.On("List", ctx, rdomain.DefaultQuery()).Return(nil, dbErr).Once()

		_, err := svc.List(ctx, rdomain.DefaultQuery())

		assert.ErrorIs(t, err, dbErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestCatalogService_Create(t *testing.T) {
	mockRepo := new(mocks.MockRepository[domain.Jasa])
	svc := NewCatalogService[domain.Jasa](mockRepo)
	ctx := context.TODO()

	t.Run("Normalizes before saving", func(t *testing.T) {
		in := domain.Jasa{Name: "  Servis AC ", Price: decimal.NewFromInt(150000)}
		expected := domain.Jasa{Name: "Servis AC", Price: in.Price, Category: domain.DefaultJasaCategory}
		mockRepo.On("Create", ctx, expected).Return(expected.WithID(7), nil).Once()

		created, err := svc.Create(ctx, in)

		assert.NoError(t, err)
		assert.Equal(t, rdomain.ID(7), created.ID)
		assert.Equal(t, "Jasa", created.Category)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid record never reaches the repository", func(t *testing.T) {
		freshRepo := new(mocks.MockRepository[domain.Jasa])
		svc := NewCatalogService[domain.Jasa](freshRepo)

		_, err := svc.Create(ctx, domain.Jasa{Name: "   ", Price: decimal.NewFromInt(-1)})

		var verr rdomain.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "wajib diisi", verr["name"])
		assert.Equal(t, "minimal 0", verr["price"])
		freshRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unique violation maps to ErrAlreadyExists", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.AnythingOfType("domain.Jasa")).Return(nil, repository.ErrConflict).Once()

		_, err := svc.Create(ctx, domain.Jasa{Name: "Servis", Price: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, ErrAlreadyExists)
		mockRepo.AssertExpectations(t)
	})
}

func TestCatalogService_KaryawanStatus(t *testing.T) {
	ctx := context.TODO()

	t.Run("Lowercase status is upper-cased before saving", func(t *testing.T) {
		mockRepo := new(mocks.MockRepository[domain.Karyawan])
		svc := NewCatalogService[domain.Karyawan](mockRepo)
		expected := domain.Karyawan{Name: "Ani", Phone: "0812", Address: "Jl. Melati", Status: domain.StatusPKWT}
		mockRepo.On("Create", ctx, expected).Return(expected.WithID(3), nil).Once()

		created, err := svc.Create(ctx, domain.Karyawan{Name: "Ani", Phone: "0812", Address: "Jl. Melati", Status: " pkwt "})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPKWT, created.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockRepository[domain.Karyawan])
		svc := NewCatalogService[domain.Karyawan](mockRepo)

		_, err := svc.Create(ctx, domain.Karyawan{Name: "Ani", Phone: "0812", Address: "Jl. Melati", Status: "kontrak"})

		var verr rdomain.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "harus salah satu dari: PKWT PKWTT", verr["status"])
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_UpdateAndDelete(t *testing.T) {
	mockRepo := new(mocks.MockRepository[domain.Kategori])
	svc := NewCatalogService[domain.Kategori](mockRepo)
	ctx := context.TODO()

	t.Run("Update missing id", func(t *testing.T) {
		mockRepo.On("Update", ctx, rdomain.ID(9), domain.Kategori{NamaKategori: "ATK"}).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Update(ctx, 9, domain.Kategori{NamaKategori: " ATK "})

		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-positive id is rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, 0, domain.Kategori{NamaKategori: "ATK"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mockRepo.On("Delete", ctx, rdomain.ID(3)).Return(nil).Once()
		mockRepo.On("Delete", ctx, rdomain.ID(4)).Return(repository.ErrNotFound).Once()

		assert.NoError(t, svc.Delete(ctx, 3))
		assert.ErrorIs(t, svc.Delete(ctx, 4), ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
