package domain

type LegalGuardian struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName"`
	CPF         string   `json:"cpf"`
	PhoneNumber string   `json:"phoneNumber"`
	PatientIDs  []string `json:"patientIds"`
}
