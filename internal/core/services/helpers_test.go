package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// naiveInstant parses the combined local layout the remote emits.
func naiveInstant(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

// naiveDay parses a bare calendar date.
func naiveDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields)  {}
func (nopLogger) Warn(string, out.LogFields)  {}
func (nopLogger) Error(string, out.LogFields) {}

func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

// fakeRemote stubs the clinic API. Only the funcs a test sets are callable;
// the rest return zero values. listAppointmentsCalls counts round trips for
// the collapse assertions.
type fakeRemote struct {
	listAppointmentsCalls int64
	listPatientsCalls     int64
	listPaymentsCalls     int64

	listAppointmentsFn  func(ctx context.Context) ([]out.AppointmentDTO, error)
	getAppointmentFn    func(ctx context.Context, id string) (*out.AppointmentDTO, error)
	createAppointmentFn func(ctx context.Context, body out.Body) (*out.AppointmentDTO, error)
	updateAppointmentFn func(ctx context.Context, id string, body out.Body) (*out.AppointmentDTO, error)
	deleteAppointmentFn func(ctx context.Context, id string) error

	listPatientsFn  func(ctx context.Context) ([]out.PatientDTO, error)
	getPatientFn    func(ctx context.Context, id string) (*out.PatientDTO, error)
	createPatientFn func(ctx context.Context, body out.Body) (*out.PatientDTO, error)
	updatePatientFn func(ctx context.Context, id string, body out.Body) (*out.PatientDTO, error)
	deletePatientFn func(ctx context.Context, id string) error

	listPaymentsFn  func(ctx context.Context) ([]out.PaymentDTO, error)
	createPaymentFn func(ctx context.Context, body out.Body) (*out.PaymentDTO, error)
	updatePaymentFn func(ctx context.Context, id string, body out.Body) (*out.PaymentDTO, error)
	deletePaymentFn func(ctx context.Context, id string) error

	listPayersFn  func(ctx context.Context) ([]out.PayerDTO, error)
	createPayerFn func(ctx context.Context, body out.Body) (*out.PayerDTO, error)
	updatePayerFn func(ctx context.Context, id string, body out.Body) (*out.PayerDTO, error)
	deletePayerFn func(ctx context.Context, id string) error

	listGuardiansFn  func(ctx context.Context) ([]out.LegalGuardianDTO, error)
	createGuardianFn func(ctx context.Context, body out.Body) (*out.LegalGuardianDTO, error)
	updateGuardianFn func(ctx context.Context, id string, body out.Body) (*out.LegalGuardianDTO, error)
	deleteGuardianFn func(ctx context.Context, id string) error

	listPsychologistsFn  func(ctx context.Context) ([]out.PsychologistDTO, error)
	getPsychologistFn    func(ctx context.Context, id string) (*out.PsychologistDTO, error)
	updatePsychologistFn func(ctx context.Context, id string, body out.Body) (*out.PsychologistDTO, error)

	getSettingsFn    func(ctx context.Context) (*out.UserSettingsDTO, error)
	updateSettingsFn func(ctx context.Context, body out.Body) (*out.UserSettingsDTO, error)

	loginFn          func(ctx context.Context, email, password string) (*out.AuthResponseDTO, error)
	registerFn       func(ctx context.Context, body out.Body) (*out.PsychologistDTO, error)
	forgotPasswordFn func(ctx context.Context, email string) error
}

var _ out.RemotePort = (*fakeRemote)(nil)

func (f *fakeRemote) ListAppointments(ctx context.Context) ([]out.AppointmentDTO, error) {
	atomic.AddInt64(&f.listAppointmentsCalls, 1)
	if f.listAppointmentsFn == nil {
		return nil, nil
	}
	return f.listAppointmentsFn(ctx)
}

func (f *fakeRemote) GetAppointment(ctx context.Context, id string) (*out.AppointmentDTO, error) {
	if f.getAppointmentFn == nil {
		return &out.AppointmentDTO{}, nil
	}
	return f.getAppointmentFn(ctx, id)
}

func (f *fakeRemote) CreateAppointment(ctx context.Context, body out.Body) (*out.AppointmentDTO, error) {
	if f.createAppointmentFn == nil {
		return &out.AppointmentDTO{}, nil
	}
	return f.createAppointmentFn(ctx, body)
}

func (f *fakeRemote) UpdateAppointment(ctx context.Context, id string, body out.Body) (*out.AppointmentDTO, error) {
	if f.updateAppointmentFn == nil {
		return &out.AppointmentDTO{}, nil
	}
	return f.updateAppointmentFn(ctx, id, body)
}

func (f *fakeRemote) DeleteAppointment(ctx context.Context, id string) error {
	if f.deleteAppointmentFn == nil {
		return nil
	}
	return f.deleteAppointmentFn(ctx, id)
}

func (f *fakeRemote) ListPatients(ctx context.Context) ([]out.PatientDTO, error) {
	atomic.AddInt64(&f.listPatientsCalls, 1)
	if f.listPatientsFn == nil {
		return nil, nil
	}
	return f.listPatientsFn(ctx)
}

func (f *fakeRemote) GetPatient(ctx context.Context, id string) (*out.PatientDTO, error) {
	if f.getPatientFn == nil {
		return &out.PatientDTO{}, nil
	}
	return f.getPatientFn(ctx, id)
}

func (f *fakeRemote) CreatePatient(ctx context.Context, body out.Body) (*out.PatientDTO, error) {
	if f.createPatientFn == nil {
		return &out.PatientDTO{}, nil
	}
	return f.createPatientFn(ctx, body)
}

func (f *fakeRemote) UpdatePatient(ctx context.Context, id string, body out.Body) (*out.PatientDTO, error) {
	if f.updatePatientFn == nil {
		return &out.PatientDTO{}, nil
	}
	return f.updatePatientFn(ctx, id, body)
}

func (f *fakeRemote) DeletePatient(ctx context.Context, id string) error {
	if f.deletePatientFn == nil {
		return nil
	}
	return f.deletePatientFn(ctx, id)
}

func (f *fakeRemote) ListPayments(ctx context.Context) ([]out.PaymentDTO, error) {
	atomic.AddInt64(&f.listPaymentsCalls, 1)
	if f.listPaymentsFn == nil {
		return nil, nil
	}
	return f.listPaymentsFn(ctx)
}

func (f *fakeRemote) CreatePayment(ctx context.Context, body out.Body) (*out.PaymentDTO, error) {
	if f.createPaymentFn == nil {
		return &out.PaymentDTO{}, nil
	}
	return f.createPaymentFn(ctx, body)
}

func (f *fakeRemote) UpdatePayment(ctx context.Context, id string, body out.Body) (*out.PaymentDTO, error) {
	if f.updatePaymentFn == nil {
		return &out.PaymentDTO{}, nil
	}
	return f.updatePaymentFn(ctx, id, body)
}

func (f *fakeRemote) DeletePayment(ctx context.Context, id string) error {
	if f.deletePaymentFn == nil {
		return nil
	}
	return f.deletePaymentFn(ctx, id)
}

func (f *fakeRemote) ListPayers(ctx context.Context) ([]out.PayerDTO, error) {
	if f.listPayersFn == nil {
		return nil, nil
	}
	return f.listPayersFn(ctx)
}

func (f *fakeRemote) CreatePayer(ctx context.Context, body out.Body) (*out.PayerDTO, error) {
	if f.createPayerFn == nil {
		return &out.PayerDTO{}, nil
	}
	return f.createPayerFn(ctx, body)
}

func (f *fakeRemote) UpdatePayer(ctx context.Context, id string, body out.Body) (*out.PayerDTO, error) {
	if f.updatePayerFn == nil {
		return &out.PayerDTO{}, nil
	}
	return f.updatePayerFn(ctx, id, body)
}

func (f *fakeRemote) DeletePayer(ctx context.Context, id string) error {
	if f.deletePayerFn == nil {
		return nil
	}
	return f.deletePayerFn(ctx, id)
}

func (f *fakeRemote) ListGuardians(ctx context.Context) ([]out.LegalGuardianDTO, error) {
	if f.listGuardiansFn == nil {
		return nil, nil
	}
	return f.listGuardiansFn(ctx)
}

func (f *fakeRemote) CreateGuardian(ctx context.Context, body out.Body) (*out.LegalGuardianDTO, error) {
	if f.createGuardianFn == nil {
		return &out.LegalGuardianDTO{}, nil
	}
	return f.createGuardianFn(ctx, body)
}

func (f *fakeRemote) UpdateGuardian(ctx context.Context, id string, body out.Body) (*out.LegalGuardianDTO, error) {
	if f.updateGuardianFn == nil {
		return &out.LegalGuardianDTO{}, nil
	}
	return f.updateGuardianFn(ctx, id, body)
}

func (f *fakeRemote) DeleteGuardian(ctx context.Context, id string) error {
	if f.deleteGuardianFn == nil {
		return nil
	}
	return f.deleteGuardianFn(ctx, id)
}

func (f *fakeRemote) ListPsychologists(ctx context.Context) ([]out.PsychologistDTO, error) {
	if f.listPsychologistsFn == nil {
		return nil, nil
	}
	return f.listPsychologistsFn(ctx)
}

func (f *fakeRemote) GetPsychologist(ctx context.Context, id string) (*out.PsychologistDTO, error) {
	if f.getPsychologistFn == nil {
		return &out.PsychologistDTO{}, nil
	}
	return f.getPsychologistFn(ctx, id)
}

func (f *fakeRemote) UpdatePsychologist(ctx context.Context, id string, body out.Body) (*out.PsychologistDTO, error) {
	if f.updatePsychologistFn == nil {
		return &out.PsychologistDTO{}, nil
	}
	return f.updatePsychologistFn(ctx, id, body)
}

func (f *fakeRemote) GetSettings(ctx context.Context) (*out.UserSettingsDTO, error) {
	if f.getSettingsFn == nil {
		return &out.UserSettingsDTO{}, nil
	}
	return f.getSettingsFn(ctx)
}

func (f *fakeRemote) UpdateSettings(ctx context.Context, body out.Body) (*out.UserSettingsDTO, error) {
	if f.updateSettingsFn == nil {
		return &out.UserSettingsDTO{}, nil
	}
	return f.updateSettingsFn(ctx, body)
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
	if f.loginFn == nil {
		return &out.AuthResponseDTO{}, nil
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeRemote) Register(ctx context.Context, body out.Body) (*out.PsychologistDTO, error) {
	if f.registerFn == nil {
		return &out.PsychologistDTO{}, nil
	}
	return f.registerFn(ctx, body)
}

func (f *fakeRemote) ForgotPassword(ctx context.Context, email string) error {
	if f.forgotPasswordFn == nil {
		return nil
	}
	return f.forgotPasswordFn(ctx, email)
}

// memoryStorage is an in-memory stand-in for the durable session store.
type memoryStorage struct {
	values map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Delete(key string) error {
	delete(m.values, key)
	return nil
}
