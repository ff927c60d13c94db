package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/auth"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
	createBooking "github.com/m04kA/ParkEase-Backend/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeParser struct{}

func (fakeParser) Parse(string) (*auth.Claims, error) {
	return &auth.Claims{UserID: 42, Role: "driver"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const requestBody = `{
	"parkingLotId": 7,
	"vehicle": {"type": "car"},
	"startTime": "2025-06-01T10:00:00Z",
	"endTime": "2025-06-01T12:00:00Z",
	"totalAmount": 50
}`

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	middleware.Auth(fakeParser{})(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID:          5,
			UserID:      42,
			LotID:       7,
			Status:      domain.StatusConfirmed,
			StartTime:   start,
			EndTime:     start.Add(2 * time.Hour),
			TotalAmount: 50,
		},
		Lot:    createBooking.LotSummary{ID: 7, Name: "Central Plaza"},
		Driver: createBooking.DriverSummary{ID: 42, Name: "Asha"},
	}}

	rec := serve(t, uc, requestBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking created successfully")
	assert.Contains(t, rec.Body.String(), "Central Plaza")
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		// Исчерпание мест и нехватка средств - ошибки клиента, не конфликты
		{"no available slots", createBooking.ErrNoAvailableSlots, http.StatusBadRequest},
		{"insufficient funds", createBooking.ErrInsufficientFunds, http.StatusBadRequest},
		{"lot closed", createBooking.ErrLotClosed, http.StatusBadRequest},
		{"vehicle type not supported", createBooking.ErrVehicleTypeNotSupported, http.StatusBadRequest},
		{"lot not found", createBooking.ErrLotNotFound, http.StatusNotFound},
		{"user not found", createBooking.ErrUserNotFound, http.StatusNotFound},
		{"contention", createBooking.ErrContention, http.StatusConflict},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, requestBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, `{"parkingLotId": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
