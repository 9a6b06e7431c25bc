package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type jasa struct {
	Name   string          `json:"name" validate:"required"`
	Price  decimal.Decimal `json:"price" validate:"min=0"`
	Status string          `json:"status,omitempty" validate:"omitempty,oneof=PKWT PKWTT"`
}

func TestValidator(t *testing.T) {
	t.Run("Valid struct", func(t *testing.T) {
		err := Validator().Struct(jasa{Name: "Servis", Price: decimal.NewFromInt(25000)})
		assert.NoError(t, err)
	})

	t.Run("Errors keyed by json name", func(t *testing.T) {
		err := Validator().Struct(jasa{Price: decimal.NewFromInt(-1), Status: "Magang"})

		fields := Fields(err)
		assert.Equal(t, "wajib diisi", fields["name"])
		assert.Equal(t, "minimal 0", fields["price"])
		assert.Equal(t, "harus salah satu dari: PKWT PKWTT", fields["status"])
	})

	t.Run("Non-validator error", func(t *testing.T) {
		assert.Nil(t, Fields(errors.New("boom")))
	})
}
