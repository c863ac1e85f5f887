package remote

import (
	"context"
	"net/http"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

var _ out.RemotePort = (*Client)(nil)

func (c *Client) ListAppointments(ctx context.Context) ([]out.AppointmentDTO, error) {
	var dtos []out.AppointmentDTO
	if err := c.call(ctx, http.MethodGet, "/appointments", nil, &dtos); err != nil {
		return nil, err
	}

	c.logger.Debug("remote.appointments.fetched", out.LogFields{
		"count": len(dtos),
	})
	return dtos, nil
}

func (c *Client) GetAppointment(ctx context.Context, id string) (*out.AppointmentDTO, error) {
	var dto out.AppointmentDTO
	if err := c.call(ctx, http.MethodGet, "/appointments/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) CreateAppointment(ctx context.Context, body out.Body) (*out.AppointmentDTO, error) {
	var dto out.AppointmentDTO
	if err := c.call(ctx, http.MethodPost, "/appointments", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, body out.Body) (*out.AppointmentDTO, error) {
	var dto out.AppointmentDTO
	if err := c.call(ctx, http.MethodPut, "/appointments/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/appointments/"+id, nil, nil)
}

func (c *Client) ListPatients(ctx context.Context) ([]out.PatientDTO, error) {
	var dtos []out.PatientDTO
	if err := c.call(ctx, http.MethodGet, "/patients", nil, &dtos); err != nil {
		return nil, err
	}

	c.logger.Debug("remote.patients.fetched", out.LogFields{
		"count": len(dtos),
	})
	return dtos, nil
}

func (c *Client) GetPatient(ctx context.Context, id string) (*out.PatientDTO, error) {
	var dto out.PatientDTO
	if err := c.call(ctx, http.MethodGet, "/patients/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) CreatePatient(ctx context.Context, body out.Body) (*out.PatientDTO, error) {
	var dto out.PatientDTO
	if err := c.call(ctx, http.MethodPost, "/patients", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id string, body out.Body) (*out.PatientDTO, error) {
	var dto out.PatientDTO
	if err := c.call(ctx, http.MethodPut, "/patients/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/patients/"+id, nil, nil)
}

func (c *Client) ListPayments(ctx context.Context) ([]out.PaymentDTO, error) {
	var dtos []out.PaymentDTO
	if err := c.call(ctx, http.MethodGet, "/payments", nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) CreatePayment(ctx context.Context, body out.Body) (*out.PaymentDTO, error) {
	var dto out.PaymentDTO
	if err := c.call(ctx, http.MethodPost, "/payments", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id string, body out.Body) (*out.PaymentDTO, error) {
	var dto out.PaymentDTO
	if err := c.call(ctx, http.MethodPut, "/payments/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/payments/"+id, nil, nil)
}

func (c *Client) ListPayers(ctx context.Context) ([]out.PayerDTO, error) {
	var dtos []out.PayerDTO
	if err := c.call(ctx, http.MethodGet, "/payers", nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) CreatePayer(ctx context.Context, body out.Body) (*out.PayerDTO, error) {
	var dto out.PayerDTO
	if err := c.call(ctx, http.MethodPost, "/payers", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdatePayer(ctx context.Context, id string, body out.Body) (*out.PayerDTO, error) {
	var dto out.PayerDTO
	if err := c.call(ctx, http.MethodPut, "/payers/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) DeletePayer(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/payers/"+id, nil, nil)
}

func (c *Client) ListGuardians(ctx context.Context) ([]out.LegalGuardianDTO, error) {
	var dtos []out.LegalGuardianDTO
	if err := c.call(ctx, http.MethodGet, "/guardians", nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) CreateGuardian(ctx context.Context, body out.Body) (*out.LegalGuardianDTO, error) {
	var dto out.LegalGuardianDTO
	if err := c.call(ctx, http.MethodPost, "/guardians", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdateGuardian(ctx context.Context, id string, body out.Body) (*out.LegalGuardianDTO, error) {
	var dto out.LegalGuardianDTO
	if err := c.call(ctx, http.MethodPut, "/guardians/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) DeleteGuardian(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/guardians/"+id, nil, nil)
}

func (c *Client) ListPsychologists(ctx context.Context) ([]out.PsychologistDTO, error) {
	var dtos []out.PsychologistDTO
	if err := c.call(ctx, http.MethodGet, "/psychologists", nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) GetPsychologist(ctx context.Context, id string) (*out.PsychologistDTO, error) {
	var dto out.PsychologistDTO
	if err := c.call(ctx, http.MethodGet, "/psychologists/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdatePsychologist(ctx context.Context, id string, body out.Body) (*out.PsychologistDTO, error) {
	var dto out.PsychologistDTO
	if err := c.call(ctx, http.MethodPut, "/psychologists/"+id, body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) GetSettings(ctx context.Context) (*out.UserSettingsDTO, error) {
	var dto out.UserSettingsDTO
	if err := c.call(ctx, http.MethodGet, "/settings", nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) UpdateSettings(ctx context.Context, body out.Body) (*out.UserSettingsDTO, error) {
	var dto out.UserSettingsDTO
	if err := c.call(ctx, http.MethodPut, "/settings", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*out.AuthResponseDTO, error) {
	var dto out.AuthResponseDTO
	body := out.Body{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/auth/login", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) Register(ctx context.Context, body out.Body) (*out.PsychologistDTO, error) {
	var dto out.PsychologistDTO
	if err := c.call(ctx, http.MethodPost, "/auth/register", body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/auth/forgot-password", out.Body{"email": email}, nil)
}
