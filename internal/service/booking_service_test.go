package service

import (
	"context"
	"testing"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCafeBooking(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewBookingService(st)
	ctx := context.Background()

	valid := CafeBookingInput{
		Date:     "2026-09-12",
		Time:     "14:00",
		Duration: "2 hours",
		NumUsers: "3",
	}

	t.Run("missing field fails validation", func(t *testing.T) {
		in := valid
		in.Duration = "   "
		_, err := svc.SubmitCafeBooking(ctx, 1, in)
		assert.ErrorIs(t, err, models.ErrValidation)

		bookings, err := st.ListBookings(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("valid form writes one pending booking", func(t *testing.T) {
		booking, err := svc.SubmitCafeBooking(ctx, 1, valid)
		require.NoError(t, err)

		assert.Equal(t, models.ServiceInternetCafe, booking.ServiceType)
		assert.Equal(t, models.StatusPending, booking.Status)
		require.NotNil(t, booking.Date)
		assert.Equal(t, "2026-09-12", *booking.Date)
		assert.False(t, booking.CreatedAt.IsZero())

		bookings, err := st.ListBookings(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})
}

func TestSubmitRepairBooking(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewBookingService(st)
	ctx := context.Background()

	valid := RepairBookingInput{
		Name:    "Thabo M",
		Phone:   "0821234567",
		Email:   "thabo@example.com",
		Device:  "Pixel 7",
		Problem: "Cracked screen",
	}

	t.Run("all fields required", func(t *testing.T) {
		in := valid
		in.Device = ""
		_, err := svc.SubmitRepairBooking(ctx, 1, in)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("email format is checked", func(t *testing.T) {
		in := valid
		in.Email = "not-an-email"
		_, err := svc.SubmitRepairBooking(ctx, 1, in)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("valid form writes one pending booking", func(t *testing.T) {
		booking, err := svc.SubmitRepairBooking(ctx, 1, valid)
		require.NoError(t, err)

		assert.Equal(t, models.ServicePhoneRepair, booking.ServiceType)
		assert.Equal(t, models.StatusPending, booking.Status)
		require.NotNil(t, booking.Email)
		assert.Equal(t, "thabo@example.com", *booking.Email)
		assert.Nil(t, booking.Date, "cafe fields stay empty on a repair booking")
	})
}

func TestListAllBookings(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewBookingService(st)
	ctx := context.Background()

	_, err := svc.SubmitCafeBooking(ctx, 1, CafeBookingInput{Date: "d", Time: "t", Duration: "1h", NumUsers: "2"})
	require.NoError(t, err)
	_, err = svc.SubmitRepairBooking(ctx, 2, RepairBookingInput{Name: "A", Phone: "1", Email: "a@b.co", Device: "X", Problem: "Y"})
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListMine(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
