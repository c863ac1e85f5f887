package domain

import (
	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
)

type Payment struct {
	ID          string           `json:"id"`
	Amount      json_types.Money `json:"amount"`
	PaymentDate string           `json:"paymentDate"`
	PayerID     string           `json:"payerId"`
}

// Payer is an independent entity; deleting one cascades (server-side) to its
// payments.
type Payer struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	CPF         string `json:"cpf"`
	PhoneNumber string `json:"phoneNumber"`
}
