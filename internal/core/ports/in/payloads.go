package in

import (
	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
)

// Sparse payload convention for updates: a nil pointer means the field is
// absent and will be omitted from the remote request entirely. A pointer to
// an empty value on an optional field is forwarded as an explicit JSON null,
// which is how the remote clears a field.

type CreateAppointmentInput struct {
	Date            string
	Time            string
	DurationMinutes int // 0 applies the configured default
	Type            string
	Notes           string
	PatientIDs      []string
	PsychologistID  string
	Status          domain.AppointmentStatus // empty lets the remote default to scheduled
	PaymentID       string
}

type UpdateAppointmentInput struct {
	Date           *string
	Time           *string
	EndTime        *string
	Status         *domain.AppointmentStatus
	Type           *string
	Notes          *string
	PatientIDs     *[]string
	PsychologistID *string
	PaymentID      *string // pointer to "" unlinks the payment
}

type CreatePatientInput struct {
	Name             string
	CPF              string
	Phone            string
	Email            string
	BirthDate        string
	Address          string
	Notes            string
	LegalGuardianIDs []string
}

type UpdatePatientInput struct {
	Name             *string
	CPF              *string
	Phone            *string
	Email            *string
	BirthDate        *string
	Address          *string
	Notes            *string
	LegalGuardianIDs *[]string
}

type CreatePaymentInput struct {
	Amount      json_types.Money
	PaymentDate string
	PayerID     string
}

type UpdatePaymentInput struct {
	Amount      *json_types.Money
	PaymentDate *string
	PayerID     *string
}

type CreatePayerInput struct {
	FullName    string
	CPF         string
	PhoneNumber string
}

type UpdatePayerInput struct {
	FullName    *string
	CPF         *string
	PhoneNumber *string
}

type CreateGuardianInput struct {
	FullName    string
	CPF         string
	PhoneNumber string
	PatientIDs  []string
}

type UpdateGuardianInput struct {
	FullName    *string
	CPF         *string
	PhoneNumber *string
	PatientIDs  *[]string
}

type UpdatePsychologistInput struct {
	FullName     *string
	CPF          *string
	PhoneNumber  *string
	Email        *string
	Password     *string
	CRP          *string
	Address      *string
	Bio          *string
	Specialties  *[]string
	WorkingHours *[]domain.WorkingHour
}

type UpdateSettingsInput struct {
	EmailReminders             *bool
	SMSReminders               *bool
	AppointmentConfirmations   *bool
	PaymentReminders           *bool
	PreferredTheme             *string
	Language                   *string
	AutoBackup                 *bool
	SessionTimeoutMinutes      *int
	DefaultAppointmentDuration *int
	TwoFactorAuth              *bool
	PasswordExpiryDays         *int
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	CPF         string
	PhoneNumber string
	CRP         string
}
