package services

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

const psychologistsLoadKey = "psychologists"

type PsychologistService struct {
	remote out.RemotePort
	logger out.LoggerPort
	loads  *singleflight.Group
	cache  entityCache[domain.Psychologist]
}

func NewPsychologistService(remote out.RemotePort, logger out.LoggerPort, loads *singleflight.Group) *PsychologistService {
	return &PsychologistService{
		remote: remote,
		logger: logger.WithModule("PsychologistService"),
		loads:  loads,
	}
}

func (s *PsychologistService) GetAll(ctx context.Context, force bool) ([]domain.Psychologist, error) {
	if !force {
		if items, ok := s.cache.snapshot(); ok {
			s.logger.Debug("psychologists.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.load(ctx)
	}

	v, err, _ := s.loads.Do(psychologistsLoadKey, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Psychologist)
	items := make([]domain.Psychologist, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *PsychologistService) load(ctx context.Context) ([]domain.Psychologist, error) {
	dtos, err := s.remote.ListPsychologists(ctx)
	if err != nil {
		s.logger.Error("psychologists.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.Psychologist, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapPsychologistDTO(dto))
	}

	s.logger.Info("psychologists.loaded", out.LogFields{
		"count": len(items),
	})

	return s.cache.replace(items), nil
}

// GetByID always fetches; single-record reads never trust the mirror.
func (s *PsychologistService) GetByID(ctx context.Context, id string) (*domain.Psychologist, error) {
	dto, err := s.remote.GetPsychologist(ctx, id)
	if err != nil {
		return nil, err
	}

	psychologist := mapPsychologistDTO(*dto)
	return &psychologist, nil
}

func (s *PsychologistService) Update(ctx context.Context, id string, input in.UpdatePsychologistInput) (*domain.Psychologist, error) {
	body := out.Body{}
	if input.FullName != nil {
		body["fullName"] = *input.FullName
	}
	if input.CPF != nil {
		body["cpf"] = *input.CPF
	}
	if input.PhoneNumber != nil {
		body["phoneNumber"] = *input.PhoneNumber
	}
	if input.Email != nil {
		body["email"] = *input.Email
	}
	if input.Password != nil {
		body["password"] = *input.Password
	}
	if input.CRP != nil {
		body["crp"] = nullable(*input.CRP)
	}
	if input.Address != nil {
		body["address"] = nullable(*input.Address)
	}
	if input.Bio != nil {
		body["bio"] = nullable(*input.Bio)
	}
	if input.Specialties != nil {
		body["specialties"] = *input.Specialties
	}
	if input.WorkingHours != nil {
		body["workingHours"] = remoteWorkingHours(*input.WorkingHours)
	}

	dto, err := s.remote.UpdatePsychologist(ctx, id, body)
	if err != nil {
		s.logger.Error("psychologists.update.failed", out.LogFields{
			"psychologistId": id,
			"error":          err.Error(),
		})
		return nil, err
	}

	psychologist := mapPsychologistDTO(*dto)
	s.cache.update(func(p domain.Psychologist) bool { return p.ID == id }, psychologist)

	s.logger.Info("psychologists.updated", out.LogFields{
		"psychologistId": psychologist.ID,
	})
	return &psychologist, nil
}

func (s *PsychologistService) ClearCache() {
	s.cache.clear()
	s.logger.Debug("psychologists.cache.cleared", nil)
}

func remoteWorkingHours(hours []domain.WorkingHour) []out.Body {
	body := make([]out.Body, 0, len(hours))
	for _, h := range hours {
		entry := out.Body{
			"dayOfWeek": strings.ToLower(h.DayOfWeek),
			"enabled":   h.Enabled,
			"startTime": nullable(h.StartTime),
			"endTime":   nullable(h.EndTime),
		}
		if !h.Enabled {
			// Disabled days carry no times.
			entry["startTime"] = nil
			entry["endTime"] = nil
		}
		body = append(body, entry)
	}
	return body
}

func mapPsychologistDTO(dto out.PsychologistDTO) domain.Psychologist {
	specialties := dto.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	hours := make([]domain.WorkingHour, 0, len(dto.WorkingHours))
	for _, h := range dto.WorkingHours {
		hours = append(hours, domain.WorkingHour{
			DayOfWeek: strings.ToLower(h.DayOfWeek),
			StartTime: normalizeClock(strOrEmpty(h.StartTime)),
			EndTime:   normalizeClock(strOrEmpty(h.EndTime)),
			Enabled:   h.Enabled,
		})
	}

	return domain.Psychologist{
		ID:           formatID(dto.ID),
		FullName:     dto.FullName,
		Email:        dto.Email,
		CPF:          dto.CPF,
		PhoneNumber:  dto.PhoneNumber,
		CRP:          strOrEmpty(dto.CRP),
		Address:      strOrEmpty(dto.Address),
		Bio:          strOrEmpty(dto.Bio),
		Specialties:  specialties,
		WorkingHours: hours,
	}
}

// normalizeClock truncates "HH:MM:SS" times to the "HH:MM" form used across
// the domain.
func normalizeClock(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}
