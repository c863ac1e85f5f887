package domain

import (
	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// PatientRef is a patient attached to an appointment. The first entry of an
// appointment's patient list is the primary patient.
type PatientRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PsychologistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Appointment struct {
	ID string `json:"id"`

	// Combined naive local instants as the remote sends them.
	AppointmentDate    string `json:"appointmentDate"`
	AppointmentEndDate string `json:"appointmentEndDate,omitempty"`

	// Calendar-display fields derived from AppointmentDate/AppointmentEndDate.
	// They must never diverge from the combined instants.
	Date    string `json:"date"`
	Time    string `json:"time"`
	EndTime string `json:"endTime,omitempty"`

	Status       AppointmentStatus `json:"status"`
	RemoteStatus string            `json:"remoteStatus"`
	Type         string            `json:"type"`
	Notes        string            `json:"notes,omitempty"`

	Patients     []PatientRef     `json:"patients"`
	Psychologist *PsychologistRef `json:"psychologist"`

	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	PaymentAmount json_types.Money `json:"paymentAmount"`
	PaymentID     string           `json:"paymentId,omitempty"`
}

// PrimaryPatient returns the first attached patient. The remote guarantees the
// list is non-empty for persisted appointments.
func (a Appointment) PrimaryPatient() PatientRef {
	if len(a.Patients) == 0 {
		return PatientRef{}
	}
	return a.Patients[0]
}
