package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

const upcomingLimit = 5

// DashboardService aggregates the other controllers' caches into the landing
// page numbers. It holds no cache of its own; every call reflects whatever
// the underlying mirrors currently hold.
type DashboardService struct {
	appointments in.AppointmentUseCase
	patients     in.PatientUseCase
	finance      in.FinanceUseCase
	logger       out.LoggerPort
}

func NewDashboardService(
	appointments in.AppointmentUseCase,
	patients in.PatientUseCase,
	finance in.FinanceUseCase,
	logger out.LoggerPort,
) *DashboardService {
	return &DashboardService{
		appointments: appointments,
		patients:     patients,
		finance:      finance,
		logger:       logger.WithModule("DashboardService"),
	}
}

func (s *DashboardService) GetDashboardData(ctx context.Context) (*domain.DashboardData, error) {
	var (
		appointments []domain.Appointment
		patients     []domain.Patient
		payments     []domain.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = s.appointments.GetAll(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = s.patients.GetAll(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.finance.GetPayments(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	data := &domain.DashboardData{
		Stats: domain.DashboardStats{
			MonthlyRevenue:         monthlyRevenue(payments, now),
			PendingRevenue:         pendingRevenue(appointments),
			ActivePatients:         countActive(patients),
			TodayAppointmentsCount: countToday(appointments, now),
		},
		UpcomingAppointments: upcoming(appointments, now),
	}

	s.logger.Debug("dashboard.loaded", out.LogFields{
		"appointments": len(appointments),
		"patients":     len(patients),
		"payments":     len(payments),
	})
	return data, nil
}

// monthlyRevenue sums the payments dated on or after the first day of the
// current month. Dates compare correctly as strings.
func monthlyRevenue(payments []domain.Payment, now time.Time) json_types.Money {
	firstOfMonth := now.Format("2006-01") + "-01"

	total := decimal.Zero
	for _, p := range payments {
		if p.PaymentDate >= firstOfMonth {
			total = total.Add(p.Amount.Decimal)
		}
	}
	return json_types.NewMoney(total)
}

// pendingRevenue sums the amounts of appointments whose payment is still
// pending. Payments are deliberately left out; a pending appointment has no
// payment record yet.
func pendingRevenue(appointments []domain.Appointment) json_types.Money {
	total := decimal.Zero
	for _, a := range appointments {
		if a.PaymentStatus != domain.PaymentStatusPending {
			continue
		}
		total = total.Add(a.PaymentAmount.Decimal)
	}
	return json_types.NewMoney(total)
}

func countActive(patients []domain.Patient) int {
	count := 0
	for _, p := range patients {
		if p.Status == domain.PatientStatusActive {
			count++
		}
	}
	return count
}

// countToday is a pure date match; cancelled appointments still count.
func countToday(appointments []domain.Appointment, now time.Time) int {
	today := utils.DateString(now)

	count := 0
	for _, a := range appointments {
		if a.Date == today {
			count++
		}
	}
	return count
}

// upcoming returns the next scheduled appointments from now on, at most
// upcomingLimit of them. The input is already sorted by start instant, and
// instants compare correctly as strings in the naive local format.
func upcoming(appointments []domain.Appointment, now time.Time) []domain.Appointment {
	cutoff := utils.InstantString(now)

	result := make([]domain.Appointment, 0, upcomingLimit)
	for _, a := range appointments {
		if a.Status != domain.AppointmentStatusScheduled {
			continue
		}
		if a.AppointmentDate < cutoff {
			continue
		}

		result = append(result, a)
		if len(result) == upcomingLimit {
			break
		}
	}
	return result
}
