package catalog

import (
	"testing"

	"github.com/apper-canvas/nimblerailbook/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestReservationFee(t *testing.T) {
	assert.Equal(t, 20, ReservationFee(models.ClassSL))
	assert.Equal(t, 40, ReservationFee(models.Class1A))
	assert.Equal(t, 40, ReservationFee(models.Class3A))
	assert.Equal(t, 40, ReservationFee(models.ClassCC))
}

func TestComputeFareBreakdown(t *testing.T) {
	tests := []struct {
		name       string
		class      models.ClassCode
		baseFare   int
		passengers int
		expected   models.FareBreakdown
	}{
		{
			name:       "sleeper single passenger",
			class:      models.ClassSL,
			baseFare:   500,
			passengers: 1,
			expected: models.FareBreakdown{
				BaseFare:          500,
				ReservationFee:    20,
				ServiceTax:        25,
				TotalPerPassenger: 545,
				Passengers:        1,
				TotalAmount:       545,
			},
		},
		{
			name:       "first AC multiple passengers",
			class:      models.Class1A,
			baseFare:   3000,
			passengers: 3,
			expected: models.FareBreakdown{
				BaseFare:          3000,
				ReservationFee:    40,
				ServiceTax:        150,
				TotalPerPassenger: 3190,
				Passengers:        3,
				TotalAmount:       9570,
			},
		},
		{
			name:       "tax rounds to nearest unit",
			class:      models.ClassCC,
			baseFare:   1050, // 5% = 52.5, rounds to 53
			passengers: 2,
			expected: models.FareBreakdown{
				BaseFare:          1050,
				ReservationFee:    40,
				ServiceTax:        53,
				TotalPerPassenger: 1143,
				Passengers:        2,
				TotalAmount:       2286,
			},
		},
		{
			name:       "zero base fare",
			class:      models.ClassEC,
			baseFare:   0,
			passengers: 1,
			expected: models.FareBreakdown{
				BaseFare:          0,
				ReservationFee:    40,
				ServiceTax:        0,
				TotalPerPassenger: 40,
				Passengers:        1,
				TotalAmount:       40,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFareBreakdown(tt.class, tt.baseFare, tt.passengers)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComputeFareBreakdown_Algebra(t *testing.T) {
	// totalPerPassenger = base + fee + tax and totalAmount = n × per
	// must hold across the fare range
	for _, base := range []int{0, 1, 19, 250, 999, 1050, 4321} {
		for n := 1; n <= 6; n++ {
			got := ComputeFareBreakdown(models.Class2A, base, n)
			assert.Equal(t, got.BaseFare+got.ReservationFee+got.ServiceTax, got.TotalPerPassenger)
			assert.Equal(t, n*got.TotalPerPassenger, got.TotalAmount)
		}
	}
}
