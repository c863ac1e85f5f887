package services

import (
	"context"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// CacheService applies externally announced changes to the resource mirrors.
// It is driven by the message listener, never by the HTTP facade.
type CacheService struct {
	appointments *AppointmentService
	patients     *PatientService
	finance      *FinanceService
	guardians    *GuardianService
	psychs       *PsychologistService
	settings     *SettingsService
	logger       out.LoggerPort
}

func NewCacheService(
	appointments *AppointmentService,
	patients *PatientService,
	finance *FinanceService,
	guardians *GuardianService,
	psychs *PsychologistService,
	settings *SettingsService,
	logger out.LoggerPort,
) *CacheService {
	return &CacheService{
		appointments: appointments,
		patients:     patients,
		finance:      finance,
		guardians:    guardians,
		psychs:       psychs,
		settings:     settings,
		logger:       logger.WithModule("CacheService"),
	}
}

// StoreAppointment upserts one announced appointment into a loaded mirror. A
// cold mirror is left alone; the next read loads fresh data anyway.
func (s *CacheService) StoreAppointment(_ context.Context, dto out.AppointmentDTO) {
	s.appointments.store(dto)
	s.logger.Debug("cache.appointment.stored", out.LogFields{
		"appointmentId": dto.ID,
	})
}

func (s *CacheService) InvalidateAppointments(_ context.Context) {
	s.appointments.ClearCache()
	s.logger.Info("cache.appointments.invalidated", nil)
}

func (s *CacheService) StorePatient(_ context.Context, dto out.PatientDTO) {
	s.patients.store(dto)
	s.logger.Debug("cache.patient.stored", out.LogFields{
		"patientId": dto.ID,
	})
}

func (s *CacheService) InvalidatePatients(_ context.Context) {
	s.patients.ClearCache()
	s.logger.Info("cache.patients.invalidated", nil)
}

func (s *CacheService) InvalidateFinance(_ context.Context) {
	s.finance.ClearCache()
	s.logger.Info("cache.finance.invalidated", nil)
}

func (s *CacheService) InvalidateAll(_ context.Context) {
	s.appointments.ClearCache()
	s.patients.ClearCache()
	s.finance.ClearCache()
	s.guardians.ClearCache()
	s.psychs.ClearCache()
	s.settings.ClearCache()
	s.logger.Info("cache.all.invalidated", nil)
}
