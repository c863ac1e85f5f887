package out

import (
	"context"

	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
)

// Wire representations as the clinic API sends them. These are a contract with
// the remote service and deliberately kept apart from the domain entities.

type PatientSummaryDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type PsychologistSummaryDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type AppointmentDTO struct {
	ID                 int64                      `json:"id"`
	AppointmentDate    json_types.DateTime        `json:"appointmentDate"`
	AppointmentEndDate json_types.DateTimeOrEmpty `json:"appointmentEndDate"`
	Status             string                     `json:"status"`
	Type               string                     `json:"type"`
	Notes              *string                    `json:"notes"`
	Psychologist       *PsychologistSummaryDTO    `json:"psychologist"`
	Patients           []PatientSummaryDTO        `json:"patients"`
	PaymentStatus      string                     `json:"paymentStatus"`
	PaymentAmount      json_types.Money           `json:"paymentAmount"`
	PaymentID          *int64                     `json:"paymentId"`
}

type PatientDTO struct {
	ID                int64           `json:"id"`
	FullName          string          `json:"fullName"`
	CPF               string          `json:"cpf"`
	Phone             string          `json:"phone"`
	Email             *string         `json:"email"`
	BirthDate         json_types.Date `json:"birthDate"`
	Address           *string         `json:"address"`
	Notes             *string         `json:"notes"`
	LegalGuardianIDs  []int64         `json:"legalGuardianIds"`
	Status            string          `json:"status"`
	TotalAppointments int             `json:"totalAppointments"`
	LastAppointment   *string         `json:"lastAppointment"`
}

type PaymentDTO struct {
	ID          int64            `json:"id"`
	Valor       json_types.Money `json:"valor"`
	PaymentDate json_types.Date  `json:"paymentDate"`
	PayerID     int64            `json:"payerId"`
}

type PayerDTO struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	CPF         string `json:"cpf"`
	PhoneNumber string `json:"phoneNumber"`
}

type LegalGuardianDTO struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"fullName"`
	CPF         string  `json:"cpf"`
	PhoneNumber string  `json:"phoneNumber"`
	PatientIDs  []int64 `json:"patientIds"`
}

type WorkingHourDTO struct {
	DayOfWeek string  `json:"dayOfWeek"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Enabled   bool    `json:"enabled"`
}

type PsychologistDTO struct {
	ID           int64            `json:"id"`
	FullName     string           `json:"fullName"`
	CPF          string           `json:"cpf"`
	PhoneNumber  string           `json:"phoneNumber"`
	Email        string           `json:"email"`
	CRP          *string          `json:"crp"`
	Address      *string          `json:"address"`
	Bio          *string          `json:"bio"`
	Specialties  []string         `json:"specialties"`
	WorkingHours []WorkingHourDTO `json:"workingHours"`
}

type UserSettingsDTO struct {
	EmailReminders             bool   `json:"emailReminders"`
	SMSReminders               bool   `json:"smsReminders"`
	AppointmentConfirmations   bool   `json:"appointmentConfirmations"`
	PaymentReminders           bool   `json:"paymentReminders"`
	PreferredTheme             string `json:"preferredTheme"`
	Language                   string `json:"language"`
	AutoBackup                 bool   `json:"autoBackup"`
	SessionTimeoutMinutes      int    `json:"sessionTimeoutMinutes"`
	DefaultAppointmentDuration int    `json:"defaultAppointmentDuration"`
	TwoFactorAuth              bool   `json:"twoFactorAuth"`
	PasswordExpiryDays         int    `json:"passwordExpiryDays"`
}

type AuthResponseDTO struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Body is a sparse remote request body. An absent key is omitted from the
// request; a key present with a nil value is serialized as an explicit null.
// The distinction matters to the remote service and must be preserved.
type Body map[string]interface{}

// RemotePort is the single entry point to the clinic API. Implementations
// attach the bearer credential, serialize bodies and normalize every failure
// into one human-readable error.
type RemotePort interface {
	ListAppointments(ctx context.Context) ([]AppointmentDTO, error)
	GetAppointment(ctx context.Context, id string) (*AppointmentDTO, error)
	CreateAppointment(ctx context.Context, body Body) (*AppointmentDTO, error)
	UpdateAppointment(ctx context.Context, id string, body Body) (*AppointmentDTO, error)
	DeleteAppointment(ctx context.Context, id string) error

	ListPatients(ctx context.Context) ([]PatientDTO, error)
	GetPatient(ctx context.Context, id string) (*PatientDTO, error)
	CreatePatient(ctx context.Context, body Body) (*PatientDTO, error)
	UpdatePatient(ctx context.Context, id string, body Body) (*PatientDTO, error)
	DeletePatient(ctx context.Context, id string) error

	ListPayments(ctx context.Context) ([]PaymentDTO, error)
	CreatePayment(ctx context.Context, body Body) (*PaymentDTO, error)
	UpdatePayment(ctx context.Context, id string, body Body) (*PaymentDTO, error)
	DeletePayment(ctx context.Context, id string) error

	ListPayers(ctx context.Context) ([]PayerDTO, error)
	CreatePayer(ctx context.Context, body Body) (*PayerDTO, error)
	UpdatePayer(ctx context.Context, id string, body Body) (*PayerDTO, error)
	DeletePayer(ctx context.Context, id string) error

	ListGuardians(ctx context.Context) ([]LegalGuardianDTO, error)
	CreateGuardian(ctx context.Context, body Body) (*LegalGuardianDTO, error)
	UpdateGuardian(ctx context.Context, id string, body Body) (*LegalGuardianDTO, error)
	DeleteGuardian(ctx context.Context, id string) error

	ListPsychologists(ctx context.Context) ([]PsychologistDTO, error)
	GetPsychologist(ctx context.Context, id string) (*PsychologistDTO, error)
	UpdatePsychologist(ctx context.Context, id string, body Body) (*PsychologistDTO, error)

	GetSettings(ctx context.Context) (*UserSettingsDTO, error)
	UpdateSettings(ctx context.Context, body Body) (*UserSettingsDTO, error)

	Login(ctx context.Context, email, password string) (*AuthResponseDTO, error)
	Register(ctx context.Context, body Body) (*PsychologistDTO, error)
	ForgotPassword(ctx context.Context, email string) error
}
