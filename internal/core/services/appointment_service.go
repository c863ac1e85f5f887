package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

const appointmentsLoadKey = "appointments"

type AppointmentService struct {
	remote          out.RemotePort
	logger          out.LoggerPort
	loads           *singleflight.Group
	cache           entityCache[domain.Appointment]
	defaultDuration int
}

func NewAppointmentService(
	remote out.RemotePort,
	logger out.LoggerPort,
	loads *singleflight.Group,
	defaultDurationMinutes int,
) *AppointmentService {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = 60
	}
	return &AppointmentService{
		remote:          remote,
		logger:          logger.WithModule("AppointmentService"),
		loads:           loads,
		defaultDuration: defaultDurationMinutes,
	}
}

func (s *AppointmentService) GetAll(ctx context.Context, force bool) ([]domain.Appointment, error) {
	if !force {
		if items, ok := s.cache.snapshot(); ok {
			s.logger.Debug("appointments.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.load(ctx)
	}

	// Concurrent cold reads collapse into a single remote call.
	v, err, _ := s.loads.Do(appointmentsLoadKey, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Appointment)
	items := make([]domain.Appointment, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *AppointmentService) load(ctx context.Context) ([]domain.Appointment, error) {
	dtos, err := s.remote.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("appointments.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapAppointmentDTO(dto))
	}
	sortSlice(items, appointmentBefore)

	s.logger.Info("appointments.loaded", out.LogFields{
		"count": len(items),
	})

	return s.cache.replace(items), nil
}

// GetByID always fetches; single-record reads never trust the mirror.
func (s *AppointmentService) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	dto, err := s.remote.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment := mapAppointmentDTO(*dto)
	if s.cache.isLoaded() {
		s.upsert(appointment)
	}
	return &appointment, nil
}

func (s *AppointmentService) Create(ctx context.Context, input in.CreateAppointmentInput) (*domain.Appointment, error) {
	duration := input.DurationMinutes
	if duration <= 0 {
		duration = s.defaultDuration
	}

	body := out.Body{
		"appointmentDate":    utils.CombineDateTime(input.Date, input.Time),
		"appointmentEndDate": utils.CombineDateTime(input.Date, utils.AddMinutes(input.Time, duration)),
		"type":               input.Type,
		"notes":              nullable(input.Notes),
		"psychologistId":     remoteID(input.PsychologistID),
		"patientIds":         remoteIDs(input.PatientIDs),
	}
	if input.Status != "" {
		body["status"] = remoteAppointmentStatus(input.Status)
	}
	if input.PaymentID != "" {
		body["paymentId"] = remoteID(input.PaymentID)
	}

	dto, err := s.remote.CreateAppointment(ctx, body)
	if err != nil {
		s.logger.Error("appointments.create.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	appointment := mapAppointmentDTO(*dto)
	s.cache.insert(appointment, false)
	s.cache.sortWith(appointmentBefore)

	s.logger.Info("appointments.created", out.LogFields{
		"appointmentId": appointment.ID,
		"date":          appointment.Date,
	})
	return &appointment, nil
}

func (s *AppointmentService) Update(ctx context.Context, id string, input in.UpdateAppointmentInput) (*domain.Appointment, error) {
	body := out.Body{}

	// Rescheduling always resends both combined instants so they cannot
	// drift apart.
	if input.Date != nil && input.Time != nil {
		body["appointmentDate"] = utils.CombineDateTime(*input.Date, *input.Time)

		end := utils.AddMinutes(*input.Time, s.defaultDuration)
		if input.EndTime != nil {
			end = *input.EndTime
		}
		body["appointmentEndDate"] = utils.CombineDateTime(*input.Date, end)
	}
	if input.Status != nil {
		body["status"] = remoteAppointmentStatus(*input.Status)
	}
	if input.Type != nil {
		body["type"] = *input.Type
	}
	if input.Notes != nil {
		body["notes"] = nullable(*input.Notes)
	}
	if input.PatientIDs != nil {
		body["patientIds"] = remoteIDs(*input.PatientIDs)
	}
	if input.PsychologistID != nil {
		body["psychologistId"] = remoteID(*input.PsychologistID)
	}
	if input.PaymentID != nil {
		if *input.PaymentID == "" {
			body["paymentId"] = nil
		} else {
			body["paymentId"] = remoteID(*input.PaymentID)
		}
	}

	dto, err := s.remote.UpdateAppointment(ctx, id, body)
	if err != nil {
		s.logger.Error("appointments.update.failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return nil, err
	}

	appointment := mapAppointmentDTO(*dto)
	s.cache.update(func(a domain.Appointment) bool { return a.ID == id }, appointment)
	s.cache.sortWith(appointmentBefore)

	s.logger.Info("appointments.updated", out.LogFields{
		"appointmentId": appointment.ID,
	})
	return &appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeleteAppointment(ctx, id); err != nil {
		s.logger.Error("appointments.delete.failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return err
	}

	s.cache.remove(func(a domain.Appointment) bool { return a.ID == id })

	s.logger.Info("appointments.deleted", out.LogFields{
		"appointmentId": id,
	})
	return nil
}

func (s *AppointmentService) ClearCache() {
	s.cache.clear()
	s.logger.Debug("appointments.cache.cleared", nil)
}

func (s *AppointmentService) CalendarMonth(ctx context.Context, reference time.Time, selected string) (*domain.CalendarMonth, error) {
	appointments, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return BuildMonth(reference, appointments, selected, time.Now()), nil
}

// upsert folds one entity into an already loaded cache, used both by
// reads that fetched a single record and by the message listener.
func (s *AppointmentService) upsert(appointment domain.Appointment) {
	replaced := false
	s.cache.update(func(a domain.Appointment) bool {
		if a.ID == appointment.ID {
			replaced = true
			return true
		}
		return false
	}, appointment)
	if !replaced {
		s.cache.insert(appointment, false)
	}
	s.cache.sortWith(appointmentBefore)
}

func (s *AppointmentService) store(dto out.AppointmentDTO) {
	if !s.cache.isLoaded() {
		return
	}
	s.upsert(mapAppointmentDTO(dto))
}

func appointmentBefore(a, b domain.Appointment) bool {
	return a.AppointmentDate < b.AppointmentDate
}

func mapAppointmentDTO(dto out.AppointmentDTO) domain.Appointment {
	start := utils.InstantString(dto.AppointmentDate.Date)
	date, clock := utils.SplitDateTime(start)

	appointment := domain.Appointment{
		ID:              formatID(dto.ID),
		AppointmentDate: start,
		Date:            date,
		Time:            clock,
		Status:          appointmentStatusFromRemote(dto.Status),
		RemoteStatus:    dto.Status,
		Type:            dto.Type,
		Notes:           strOrEmpty(dto.Notes),
		Patients:        make([]domain.PatientRef, 0, len(dto.Patients)),
		PaymentStatus:   paymentStatusFromRemote(dto.PaymentStatus),
		PaymentAmount:   dto.PaymentAmount,
	}

	if !dto.AppointmentEndDate.Date.IsZero() {
		end := utils.InstantString(dto.AppointmentEndDate.Date)
		appointment.AppointmentEndDate = end
		_, appointment.EndTime = utils.SplitDateTime(end)
	}
	for _, p := range dto.Patients {
		appointment.Patients = append(appointment.Patients, domain.PatientRef{
			ID:   formatID(p.ID),
			Name: p.FullName,
		})
	}
	if dto.Psychologist != nil {
		appointment.Psychologist = &domain.PsychologistRef{
			ID:   formatID(dto.Psychologist.ID),
			Name: dto.Psychologist.FullName,
		}
	}
	if dto.PaymentID != nil {
		appointment.PaymentID = formatID(*dto.PaymentID)
	}

	return appointment
}

// The remote speaks SCREAMING_SNAKE status codes; the domain keeps the
// lowercase forms the view layer renders. Unknown codes fall back to
// scheduled rather than failing the read.
func appointmentStatusFromRemote(code string) domain.AppointmentStatus {
	switch strings.ToUpper(code) {
	case "COMPLETED":
		return domain.AppointmentStatusCompleted
	case "CANCELLED", "CANCELED":
		return domain.AppointmentStatusCancelled
	case "NO_SHOW":
		return domain.AppointmentStatusNoShow
	default:
		return domain.AppointmentStatusScheduled
	}
}

func remoteAppointmentStatus(status domain.AppointmentStatus) string {
	if status == domain.AppointmentStatusNoShow {
		return "NO_SHOW"
	}
	return strings.ToUpper(string(status))
}

func paymentStatusFromRemote(code string) domain.PaymentStatus {
	switch strings.ToLower(code) {
	case "paid":
		return domain.PaymentStatusPaid
	case "overdue":
		return domain.PaymentStatusOverdue
	default:
		return domain.PaymentStatusPending
	}
}
