package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

// SchedulingController exposes appointments, the month grid and the dashboard
// aggregate.
type SchedulingController struct {
	appointments in.AppointmentUseCase
	dashboard    in.DashboardUseCase
}

func NewSchedulingController(appointments in.AppointmentUseCase, dashboard in.DashboardUseCase) *SchedulingController {
	return &SchedulingController{
		appointments: appointments,
		dashboard:    dashboard,
	}
}

func (c *SchedulingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/appointments", c.list)
		api.GET("/appointments/:id", c.get)
		api.POST("/appointments", c.create)
		api.PUT("/appointments/:id", c.update)
		api.DELETE("/appointments/:id", c.delete)

		api.GET("/calendar/:year/:month", c.calendar)
		api.GET("/dashboard", c.dashboardData)
	}
}

type CreateAppointmentRequest struct {
	Date            string   `json:"date" binding:"required"`
	Time            string   `json:"time" binding:"required"`
	DurationMinutes int      `json:"durationMinutes"`
	Type            string   `json:"type" binding:"required"`
	Notes           string   `json:"notes"`
	PatientIDs      []string `json:"patientIds" binding:"required,min=1"`
	PsychologistID  string   `json:"psychologistId" binding:"required"`
	Status          string   `json:"status"`
	PaymentID       string   `json:"paymentId"`
}

type UpdateAppointmentRequest struct {
	Date           *string   `json:"date"`
	Time           *string   `json:"time"`
	EndTime        *string   `json:"endTime"`
	Status         *string   `json:"status"`
	Type           *string   `json:"type"`
	Notes          *string   `json:"notes"`
	PatientIDs     *[]string `json:"patientIds"`
	PsychologistID *string   `json:"psychologistId"`
	PaymentID      *string   `json:"paymentId"`
}

func (c *SchedulingController) list(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	appointments, err := c.appointments.GetAll(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (c *SchedulingController) get(ctx *gin.Context) {
	appointment, err := c.appointments.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func (c *SchedulingController) create(ctx *gin.Context) {
	var req CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.appointments.Create(ctx.Request.Context(), in.CreateAppointmentInput{
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Notes:           req.Notes,
		PatientIDs:      req.PatientIDs,
		PsychologistID:  req.PsychologistID,
		Status:          domain.AppointmentStatus(req.Status),
		PaymentID:       req.PaymentID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, appointment)
}

func (c *SchedulingController) update(ctx *gin.Context) {
	var req UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := in.UpdateAppointmentInput{
		Date:           req.Date,
		Time:           req.Time,
		EndTime:        req.EndTime,
		Type:           req.Type,
		Notes:          req.Notes,
		PatientIDs:     req.PatientIDs,
		PsychologistID: req.PsychologistID,
		PaymentID:      req.PaymentID,
	}
	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		input.Status = &status
	}

	appointment, err := c.appointments.Update(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func (c *SchedulingController) delete(ctx *gin.Context) {
	if err := c.appointments.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

func (c *SchedulingController) calendar(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	reference := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)

	selected := ctx.Query("selected")
	if selected != "" {
		if _, err := utils.ParseDate(selected); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid selected date"})
			return
		}
	}

	grid, err := c.appointments.CalendarMonth(ctx.Request.Context(), reference, selected)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, grid)
}

func (c *SchedulingController) dashboardData(ctx *gin.Context) {
	data, err := c.dashboard.GetDashboardData(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}
