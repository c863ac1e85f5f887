package domain

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	CPF               string        `json:"cpf"`
	Phone             string        `json:"phone"`
	Email             string        `json:"email"`
	Address           string        `json:"address,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	BirthDate         string        `json:"birthDate"`
	Status            PatientStatus `json:"status"`
	TotalAppointments int           `json:"totalAppointments"`
	LastAppointment   string        `json:"lastAppointment,omitempty"`
	LegalGuardianIDs  []string      `json:"legalGuardianIds"`
}

// Option is a label/value pair for selection lists in the view layer.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
