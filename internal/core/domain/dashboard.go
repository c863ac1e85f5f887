package domain

import "github.com/ampliar/clinic-data-gateway/internal/core/json_types"

type DashboardStats struct {
	MonthlyRevenue         json_types.Money `json:"monthlyRevenue"`
	PendingRevenue         json_types.Money `json:"pendingRevenue"`
	ActivePatients         int              `json:"activePatients"`
	TodayAppointmentsCount int              `json:"todayAppointmentsCount"`
}

type DashboardData struct {
	Stats                DashboardStats `json:"stats"`
	UpcomingAppointments []Appointment  `json:"upcomingAppointments"`
}
