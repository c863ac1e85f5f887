package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

const settingsLoadKey = "settings"

// SettingsService mirrors the single per-user settings record.
type SettingsService struct {
	remote out.RemotePort
	logger out.LoggerPort
	loads  *singleflight.Group

	mu       sync.RWMutex
	settings *domain.UserSettings
}

func NewSettingsService(remote out.RemotePort, logger out.LoggerPort, loads *singleflight.Group) *SettingsService {
	return &SettingsService{
		remote: remote,
		logger: logger.WithModule("SettingsService"),
		loads:  loads,
	}
}

func (s *SettingsService) Get(ctx context.Context, force bool) (*domain.UserSettings, error) {
	if !force {
		s.mu.RLock()
		cached := s.settings
		s.mu.RUnlock()
		if cached != nil {
			s.logger.Debug("settings.cache.hit", nil)
			copied := *cached
			return &copied, nil
		}
	}

	if force {
		return s.load(ctx)
	}

	v, err, _ := s.loads.Do(settingsLoadKey, func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	copied := *v.(*domain.UserSettings)
	return &copied, nil
}

func (s *SettingsService) load(ctx context.Context) (*domain.UserSettings, error) {
	dto, err := s.remote.GetSettings(ctx)
	if err != nil {
		s.logger.Error("settings.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	settings := mapSettingsDTO(*dto)
	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()

	s.logger.Info("settings.loaded", nil)
	copied := settings
	return &copied, nil
}

func (s *SettingsService) Update(ctx context.Context, input in.UpdateSettingsInput) (*domain.UserSettings, error) {
	body := out.Body{}
	if input.EmailReminders != nil {
		body["emailReminders"] = *input.EmailReminders
	}
	if input.SMSReminders != nil {
		body["smsReminders"] = *input.SMSReminders
	}
	if input.AppointmentConfirmations != nil {
		body["appointmentConfirmations"] = *input.AppointmentConfirmations
	}
	if input.PaymentReminders != nil {
		body["paymentReminders"] = *input.PaymentReminders
	}
	if input.PreferredTheme != nil {
		body["preferredTheme"] = *input.PreferredTheme
	}
	if input.Language != nil {
		body["language"] = *input.Language
	}
	if input.AutoBackup != nil {
		body["autoBackup"] = *input.AutoBackup
	}
	if input.SessionTimeoutMinutes != nil {
		body["sessionTimeoutMinutes"] = *input.SessionTimeoutMinutes
	}
	if input.DefaultAppointmentDuration != nil {
		body["defaultAppointmentDuration"] = *input.DefaultAppointmentDuration
	}
	if input.TwoFactorAuth != nil {
		body["twoFactorAuth"] = *input.TwoFactorAuth
	}
	if input.PasswordExpiryDays != nil {
		body["passwordExpiryDays"] = *input.PasswordExpiryDays
	}

	dto, err := s.remote.UpdateSettings(ctx, body)
	if err != nil {
		s.logger.Error("settings.update.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	settings := mapSettingsDTO(*dto)
	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()

	s.logger.Info("settings.updated", nil)
	copied := settings
	return &copied, nil
}

func (s *SettingsService) ClearCache() {
	s.mu.Lock()
	s.settings = nil
	s.mu.Unlock()
	s.logger.Debug("settings.cache.cleared", nil)
}

func mapSettingsDTO(dto out.UserSettingsDTO) domain.UserSettings {
	theme := dto.PreferredTheme
	if theme == "" {
		theme = "system"
	}

	return domain.UserSettings{
		EmailReminders:             dto.EmailReminders,
		SMSReminders:               dto.SMSReminders,
		AppointmentConfirmations:   dto.AppointmentConfirmations,
		PaymentReminders:           dto.PaymentReminders,
		PreferredTheme:             theme,
		Language:                   dto.Language,
		AutoBackup:                 dto.AutoBackup,
		SessionTimeoutMinutes:      dto.SessionTimeoutMinutes,
		DefaultAppointmentDuration: dto.DefaultAppointmentDuration,
		TwoFactorAuth:              dto.TwoFactorAuth,
		PasswordExpiryDays:         dto.PasswordExpiryDays,
	}
}
