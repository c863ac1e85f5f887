package in

import (
	"context"
	"time"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

type AppointmentUseCase interface {
	GetAll(ctx context.Context, force bool) ([]domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, id string, input UpdateAppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
	ClearCache()

	// CalendarMonth derives the 6-week grid for the month containing reference.
	CalendarMonth(ctx context.Context, reference time.Time, selected string) (*domain.CalendarMonth, error)
}

type PatientUseCase interface {
	GetAll(ctx context.Context, force bool) ([]domain.Patient, error)
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	Create(ctx context.Context, input CreatePatientInput) (*domain.Patient, error)
	Update(ctx context.Context, id string, input UpdatePatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, id string) error
	ClearCache()

	ActiveOptions(ctx context.Context) ([]domain.Option, error)
	Search(ctx context.Context, name string) ([]domain.Patient, error)
}

type FinanceUseCase interface {
	GetPayments(ctx context.Context, force bool) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id string, input UpdatePaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error

	GetPayers(ctx context.Context, force bool) ([]domain.Payer, error)
	CreatePayer(ctx context.Context, input CreatePayerInput) (*domain.Payer, error)
	UpdatePayer(ctx context.Context, id string, input UpdatePayerInput) (*domain.Payer, error)
	DeletePayer(ctx context.Context, id string) error

	ClearCache()
}

type GuardianUseCase interface {
	GetAll(ctx context.Context, force bool) ([]domain.LegalGuardian, error)
	Create(ctx context.Context, input CreateGuardianInput) (*domain.LegalGuardian, error)
	Update(ctx context.Context, id string, input UpdateGuardianInput) (*domain.LegalGuardian, error)
	Delete(ctx context.Context, id string) error
	ClearCache()
}

type PsychologistUseCase interface {
	GetAll(ctx context.Context, force bool) ([]domain.Psychologist, error)
	GetByID(ctx context.Context, id string) (*domain.Psychologist, error)
	Update(ctx context.Context, id string, input UpdatePsychologistInput) (*domain.Psychologist, error)
	ClearCache()
}

type SettingsUseCase interface {
	Get(ctx context.Context, force bool) (*domain.UserSettings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*domain.UserSettings, error)
	ClearCache()
}

type AuthUseCase interface {
	Login(ctx context.Context, input LoginInput) (*domain.AuthState, error)
	Register(ctx context.Context, input RegisterInput) (*domain.AuthState, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout()
	State() domain.AuthState
	Token() string
}

type DashboardUseCase interface {
	GetDashboardData(ctx context.Context) (*domain.DashboardData, error)
}

// CacheCoherencyUseCase is driven by the message listener when the remote
// service announces a change it made outside this process.
type CacheCoherencyUseCase interface {
	StoreAppointment(ctx context.Context, dto out.AppointmentDTO)
	InvalidateAppointments(ctx context.Context)
	StorePatient(ctx context.Context, dto out.PatientDTO)
	InvalidatePatients(ctx context.Context)
	InvalidateFinance(ctx context.Context)
	InvalidateAll(ctx context.Context)
}
