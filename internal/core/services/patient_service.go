package services

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

const patientsLoadKey = "patients"

type PatientService struct {
	remote out.RemotePort
	logger out.LoggerPort
	loads  *singleflight.Group
	cache  entityCache[domain.Patient]
}

func NewPatientService(remote out.RemotePort, logger out.LoggerPort, loads *singleflight.Group) *PatientService {
	return &PatientService{
		remote: remote,
		logger: logger.WithModule("PatientService"),
		loads:  loads,
	}
}

func (s *PatientService) GetAll(ctx context.Context, force bool) ([]domain.Patient, error) {
	if !force {
		if items, ok := s.cache.snapshot(); ok {
			s.logger.Debug("patients.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.load(ctx)
	}

	v, err, _ := s.loads.Do(patientsLoadKey, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Patient)
	items := make([]domain.Patient, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *PatientService) load(ctx context.Context) ([]domain.Patient, error) {
	dtos, err := s.remote.ListPatients(ctx)
	if err != nil {
		s.logger.Error("patients.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.Patient, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapPatientDTO(dto))
	}

	s.logger.Info("patients.loaded", out.LogFields{
		"count": len(items),
	})

	return s.cache.replace(items), nil
}

// GetByID always fetches; single-record reads never trust the mirror.
func (s *PatientService) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	dto, err := s.remote.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	patient := mapPatientDTO(*dto)
	if s.cache.isLoaded() {
		s.storePatient(patient)
	}
	return &patient, nil
}

func (s *PatientService) Create(ctx context.Context, input in.CreatePatientInput) (*domain.Patient, error) {
	// The write side of the API takes phoneNumber while reads return phone.
	body := out.Body{
		"fullName":         input.Name,
		"cpf":              input.CPF,
		"phoneNumber":      input.Phone,
		"email":            nullable(input.Email),
		"birthDate":        input.BirthDate,
		"address":          nullable(input.Address),
		"notes":            nullable(input.Notes),
		"legalGuardianIds": remoteIDs(input.LegalGuardianIDs),
	}

	dto, err := s.remote.CreatePatient(ctx, body)
	if err != nil {
		s.logger.Error("patients.create.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	patient := mapPatientDTO(*dto)
	// New patients go to the front of the list.
	s.cache.insert(patient, true)

	s.logger.Info("patients.created", out.LogFields{
		"patientId": patient.ID,
	})
	return &patient, nil
}

func (s *PatientService) Update(ctx context.Context, id string, input in.UpdatePatientInput) (*domain.Patient, error) {
	body := out.Body{}
	if input.Name != nil {
		body["fullName"] = *input.Name
	}
	if input.CPF != nil {
		body["cpf"] = *input.CPF
	}
	if input.Phone != nil {
		body["phoneNumber"] = *input.Phone
	}
	if input.Email != nil {
		body["email"] = nullable(*input.Email)
	}
	if input.BirthDate != nil {
		body["birthDate"] = *input.BirthDate
	}
	if input.Address != nil {
		body["address"] = nullable(*input.Address)
	}
	if input.Notes != nil {
		body["notes"] = nullable(*input.Notes)
	}
	if input.LegalGuardianIDs != nil {
		body["legalGuardianIds"] = remoteIDs(*input.LegalGuardianIDs)
	}

	dto, err := s.remote.UpdatePatient(ctx, id, body)
	if err != nil {
		s.logger.Error("patients.update.failed", out.LogFields{
			"patientId": id,
			"error":     err.Error(),
		})
		return nil, err
	}

	patient := mapPatientDTO(*dto)
	s.cache.update(func(p domain.Patient) bool { return p.ID == id }, patient)

	s.logger.Info("patients.updated", out.LogFields{
		"patientId": patient.ID,
	})
	return &patient, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeletePatient(ctx, id); err != nil {
		s.logger.Error("patients.delete.failed", out.LogFields{
			"patientId": id,
			"error":     err.Error(),
		})
		return err
	}

	s.cache.remove(func(p domain.Patient) bool { return p.ID == id })

	s.logger.Info("patients.deleted", out.LogFields{
		"patientId": id,
	})
	return nil
}

func (s *PatientService) ClearCache() {
	s.cache.clear()
	s.logger.Debug("patients.cache.cleared", nil)
}

// ActiveOptions returns label/value pairs for the active patients only, in
// cache order.
func (s *PatientService) ActiveOptions(ctx context.Context) ([]domain.Option, error) {
	patients, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	options := make([]domain.Option, 0, len(patients))
	for _, p := range patients {
		if p.Status != domain.PatientStatusActive {
			continue
		}
		options = append(options, domain.Option{
			Label: p.Name,
			Value: p.ID,
		})
	}
	return options, nil
}

// Search matches active patients by name fragment. A blank needle returns the
// whole active set.
func (s *PatientService) Search(ctx context.Context, name string) ([]domain.Patient, error) {
	patients, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))

	matched := make([]domain.Patient, 0)
	for _, p := range patients {
		if p.Status != domain.PatientStatusActive {
			continue
		}
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *PatientService) storePatient(patient domain.Patient) {
	replaced := false
	s.cache.update(func(p domain.Patient) bool {
		if p.ID == patient.ID {
			replaced = true
			return true
		}
		return false
	}, patient)
	if !replaced {
		s.cache.insert(patient, true)
	}
}

func (s *PatientService) store(dto out.PatientDTO) {
	if !s.cache.isLoaded() {
		return
	}
	s.storePatient(mapPatientDTO(dto))
}

func mapPatientDTO(dto out.PatientDTO) domain.Patient {
	birthDate := ""
	if !dto.BirthDate.Date.IsZero() {
		birthDate = utils.DateString(dto.BirthDate.Date)
	}

	status := domain.PatientStatusActive
	if strings.EqualFold(dto.Status, string(domain.PatientStatusInactive)) {
		status = domain.PatientStatusInactive
	}

	return domain.Patient{
		ID:                formatID(dto.ID),
		Name:              dto.FullName,
		CPF:               dto.CPF,
		Phone:             dto.Phone,
		Email:             strOrEmpty(dto.Email),
		Address:           strOrEmpty(dto.Address),
		Notes:             strOrEmpty(dto.Notes),
		BirthDate:         birthDate,
		Status:            status,
		TotalAppointments: dto.TotalAppointments,
		LastAppointment:   strOrEmpty(dto.LastAppointment),
		LegalGuardianIDs:  formatIDs(dto.LegalGuardianIDs),
	}
}
