package domain

type UserSettings struct {
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
