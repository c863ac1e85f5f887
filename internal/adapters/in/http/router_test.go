package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/remote"
	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/services"
)

type fakeAppointments struct {
	appointments []domain.Appointment
	err          error
	created      *in.CreateAppointmentInput
}

func (f *fakeAppointments) GetAll(context.Context, bool) ([]domain.Appointment, error) {
	return f.appointments, f.err
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, &remote.APIError{Status: http.StatusNotFound, Message: "appointment not found"}
}

func (f *fakeAppointments) Create(_ context.Context, input in.CreateAppointmentInput) (*domain.Appointment, error) {
	f.created = &input
	return &domain.Appointment{ID: "99", Date: input.Date, Time: input.Time}, nil
}

func (f *fakeAppointments) Update(context.Context, string, in.UpdateAppointmentInput) (*domain.Appointment, error) {
	return &domain.Appointment{}, f.err
}

func (f *fakeAppointments) Delete(context.Context, string) error { return f.err }
func (f *fakeAppointments) ClearCache()                          {}

func (f *fakeAppointments) CalendarMonth(_ context.Context, reference time.Time, selected string) (*domain.CalendarMonth, error) {
	return services.BuildMonth(reference, f.appointments, selected, time.Now()), f.err
}

func newTestRouter(appointments in.AppointmentUseCase) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = config.EnvProduction

	return NewRouter(cfg, &services.Services{
		Appointments: appointments,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeAppointments{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouterListAppointments(t *testing.T) {
	router := newTestRouter(&fakeAppointments{
		appointments: []domain.Appointment{{ID: "1", Date: "2026-03-10", Time: "10:00"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"1"`)
}

func TestRouterForwardsRemoteStatus(t *testing.T) {
	router := newTestRouter(&fakeAppointments{
		err: &remote.APIError{Status: http.StatusUnauthorized, Message: "token expired"},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestRouterTransportFailureMapsToBadGateway(t *testing.T) {
	router := newTestRouter(&fakeAppointments{
		err: &remote.APIError{Message: "could not read response from server"},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouterCreateAppointmentValidatesBody(t *testing.T) {
	fake := &fakeAppointments{}
	router := newTestRouter(fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"date":"2026-03-12"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.created)
}

func TestRouterCreateAppointment(t *testing.T) {
	fake := &fakeAppointments{}
	router := newTestRouter(fake)

	body := `{"date":"2026-03-12","time":"14:30","type":"Terapia individual","patientIds":["7"],"psychologistId":"3"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, fake.created)
	assert.Equal(t, "14:30", fake.created.Time)
	assert.Equal(t, []string{"7"}, fake.created.PatientIDs)
}

func TestRouterCalendarValidatesMonth(t *testing.T) {
	router := newTestRouter(&fakeAppointments{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/13", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterCalendarValidatesSelectedDate(t *testing.T) {
	router := newTestRouter(&fakeAppointments{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/3?selected=not-a-date", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterCalendarReturnsGrid(t *testing.T) {
	router := newTestRouter(&fakeAppointments{
		appointments: []domain.Appointment{{ID: "1", Date: "2026-03-10", Time: "10:00"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/2026/3?selected=2026-03-10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"month":3`)
	assert.Contains(t, rec.Body.String(), `"isSelected":true`)
}
