package domain

// WorkingHour times are "HH:MM" or empty when the day is disabled.
type WorkingHour struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Enabled   bool   `json:"enabled"`
}

type Psychologist struct {
	ID           string        `json:"id"`
	FullName     string        `json:"fullName"`
	Email        string        `json:"email"`
	CPF          string        `json:"cpf"`
	PhoneNumber  string        `json:"phoneNumber"`
	CRP          string        `json:"crp,omitempty"`
	Address      string        `json:"address,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Specialties  []string      `json:"specialties"`
	WorkingHours []WorkingHour `json:"workingHours"`
}
