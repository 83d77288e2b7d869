package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/go-playground/validator/v10"
)

// BookingService validates and persists service bookings. Every booking
// is written with status Pending and the server's timestamp; there is no
// update path from here — the back-office tooling moves statuses forward.
type BookingService struct {
	Bookings store.BookingStore
	validate *validator.Validate
}

func NewBookingService(bookings store.BookingStore) *BookingService {
	return &BookingService{
		Bookings: bookings,
		validate: validator.New(),
	}
}

// CafeBookingInput is the internet cafe seat-time form.
type CafeBookingInput struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	NumUsers string `json:"numUsers"`
}

// RepairBookingInput is the phone repair intake form.
type RepairBookingInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Device  string `json:"device"`
	Problem string `json:"problem"`
}

// SubmitCafeBooking validates the seat-time form and writes one booking.
func (s *BookingService) SubmitCafeBooking(ctx context.Context, userID int64, in CafeBookingInput) (models.Booking, error) {
	date := strings.TrimSpace(in.Date)
	timeStr := strings.TrimSpace(in.Time)
	duration := strings.TrimSpace(in.Duration)
	numUsers := strings.TrimSpace(in.NumUsers)

	if date == "" || timeStr == "" || duration == "" || numUsers == "" {
		return models.Booking{}, fmt.Errorf("%w: please fill in all fields", models.ErrValidation)
	}

	return s.Bookings.CreateBooking(ctx, models.Booking{
		UserID:      userID,
		ServiceType: models.ServiceInternetCafe,
		Status:      models.StatusPending,
		Date:        &date,
		Time:        &timeStr,
		Duration:    &duration,
		NumUsers:    &numUsers,
	})
}

// SubmitRepairBooking validates the repair form (including the email
// format) and writes one booking.
func (s *BookingService) SubmitRepairBooking(ctx context.Context, userID int64, in RepairBookingInput) (models.Booking, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)
	device := strings.TrimSpace(in.Device)
	problem := strings.TrimSpace(in.Problem)

	if name == "" || phone == "" || email == "" || device == "" || problem == "" {
		return models.Booking{}, fmt.Errorf("%w: all fields are required", models.ErrValidation)
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return models.Booking{}, fmt.Errorf("%w: enter a valid email", models.ErrValidation)
	}

	return s.Bookings.CreateBooking(ctx, models.Booking{
		UserID:      userID,
		ServiceType: models.ServicePhoneRepair,
		Status:      models.StatusPending,
		Name:        &name,
		Phone:       &phone,
		Email:       &email,
		Device:      &device,
		Problem:     &problem,
	})
}

// ListMine returns the caller's bookings, newest first from the store.
func (s *BookingService) ListMine(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.Bookings.ListBookings(ctx, userID)
}

// ListAll returns every booking, for the back-office view.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.Bookings.ListAllBookings(ctx)
}
