package services

import (
	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// Services is the wired set of use cases handed to the inbound adapters.
type Services struct {
	Auth          in.AuthUseCase
	Appointments  in.AppointmentUseCase
	Patients      in.PatientUseCase
	Finance       in.FinanceUseCase
	Guardians     in.GuardianUseCase
	Psychologists in.PsychologistUseCase
	Settings      in.SettingsUseCase
	Dashboard     in.DashboardUseCase
	Cache         in.CacheCoherencyUseCase
}

type Deps struct {
	Remote  out.RemotePort
	Storage out.StoragePort
	Logger  out.LoggerPort
	Config  *config.Config

	// Auth is constructed by the caller before the remote client, which
	// takes it as its token source.
	Auth *AuthService
}

func NewServices(deps Deps) *Services {
	// One in-flight registry shared by every controller, keyed by resource.
	loads := &singleflight.Group{}

	appointments := NewAppointmentService(deps.Remote, deps.Logger, loads, deps.Config.Appointments.DefaultDurationMinutes)
	patients := NewPatientService(deps.Remote, deps.Logger, loads)
	finance := NewFinanceService(deps.Remote, deps.Logger, loads)
	guardians := NewGuardianService(deps.Remote, deps.Logger, loads)
	psychologists := NewPsychologistService(deps.Remote, deps.Logger, loads)
	settings := NewSettingsService(deps.Remote, deps.Logger, loads)
	dashboard := NewDashboardService(appointments, patients, finance, deps.Logger)
	cache := NewCacheService(appointments, patients, finance, guardians, psychologists, settings, deps.Logger)

	// Ending the session drops every mirror so nothing leaks across
	// accounts.
	deps.Auth.OnLogout(func() {
		appointments.ClearCache()
		patients.ClearCache()
		finance.ClearCache()
		guardians.ClearCache()
		psychologists.ClearCache()
		settings.ClearCache()
	})

	return &Services{
		Auth:          deps.Auth,
		Appointments:  appointments,
		Patients:      patients,
		Finance:       finance,
		Guardians:     guardians,
		Psychologists: psychologists,
		Settings:      settings,
		Dashboard:     dashboard,
		Cache:         cache,
	}
}
