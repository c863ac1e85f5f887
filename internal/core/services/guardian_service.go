package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

const guardiansLoadKey = "guardians"

type GuardianService struct {
	remote out.RemotePort
	logger out.LoggerPort
	loads  *singleflight.Group
	cache  entityCache[domain.LegalGuardian]
}

func NewGuardianService(remote out.RemotePort, logger out.LoggerPort, loads *singleflight.Group) *GuardianService {
	return &GuardianService{
		remote: remote,
		logger: logger.WithModule("GuardianService"),
		loads:  loads,
	}
}

func (s *GuardianService) GetAll(ctx context.Context, force bool) ([]domain.LegalGuardian, error) {
	if !force {
		if items, ok := s.cache.snapshot(); ok {
			s.logger.Debug("guardians.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.load(ctx)
	}

	v, err, _ := s.loads.Do(guardiansLoadKey, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.LegalGuardian)
	items := make([]domain.LegalGuardian, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *GuardianService) load(ctx context.Context) ([]domain.LegalGuardian, error) {
	dtos, err := s.remote.ListGuardians(ctx)
	if err != nil {
		s.logger.Error("guardians.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.LegalGuardian, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapGuardianDTO(dto))
	}

	s.logger.Info("guardians.loaded", out.LogFields{
		"count": len(items),
	})

	return s.cache.replace(items), nil
}

func (s *GuardianService) Create(ctx context.Context, input in.CreateGuardianInput) (*domain.LegalGuardian, error) {
	body := out.Body{
		"fullName":    input.FullName,
		"cpf":         input.CPF,
		"phoneNumber": input.PhoneNumber,
		"patientIds":  remoteIDs(input.PatientIDs),
	}

	dto, err := s.remote.CreateGuardian(ctx, body)
	if err != nil {
		s.logger.Error("guardians.create.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	guardian := mapGuardianDTO(*dto)
	s.cache.insert(guardian, false)

	s.logger.Info("guardians.created", out.LogFields{
		"guardianId": guardian.ID,
	})
	return &guardian, nil
}

func (s *GuardianService) Update(ctx context.Context, id string, input in.UpdateGuardianInput) (*domain.LegalGuardian, error) {
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
	if input.PatientIDs != nil {
		body["patientIds"] = remoteIDs(*input.PatientIDs)
	}

	dto, err := s.remote.UpdateGuardian(ctx, id, body)
	if err != nil {
		s.logger.Error("guardians.update.failed", out.LogFields{
			"guardianId": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	guardian := mapGuardianDTO(*dto)
	s.cache.update(func(g domain.LegalGuardian) bool { return g.ID == id }, guardian)

	s.logger.Info("guardians.updated", out.LogFields{
		"guardianId": guardian.ID,
	})
	return &guardian, nil
}

func (s *GuardianService) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeleteGuardian(ctx, id); err != nil {
		s.logger.Error("guardians.delete.failed", out.LogFields{
			"guardianId": id,
			"error":      err.Error(),
		})
		return err
	}

	s.cache.remove(func(g domain.LegalGuardian) bool { return g.ID == id })

	s.logger.Info("guardians.deleted", out.LogFields{
		"guardianId": id,
	})
	return nil
}

func (s *GuardianService) ClearCache() {
	s.cache.clear()
	s.logger.Debug("guardians.cache.cleared", nil)
}

func mapGuardianDTO(dto out.LegalGuardianDTO) domain.LegalGuardian {
	return domain.LegalGuardian{
		ID:          formatID(dto.ID),
		FullName:    dto.FullName,
		CPF:         dto.CPF,
		PhoneNumber: dto.PhoneNumber,
		PatientIDs:  formatIDs(dto.PatientIDs),
	}
}
