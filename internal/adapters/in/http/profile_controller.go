package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
)

// ProfileController covers psychologists, per-user settings and the manual
// cache reset.
type ProfileController struct {
	psychologists in.PsychologistUseCase
	settings      in.SettingsUseCase
	cache         in.CacheCoherencyUseCase
}

func NewProfileController(
	psychologists in.PsychologistUseCase,
	settings in.SettingsUseCase,
	cache in.CacheCoherencyUseCase,
) *ProfileController {
	return &ProfileController{
		psychologists: psychologists,
		settings:      settings,
		cache:         cache,
	}
}

func (c *ProfileController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/psychologists", c.listPsychologists)
		api.GET("/psychologists/:id", c.getPsychologist)
		api.PUT("/psychologists/:id", c.updatePsychologist)

		api.GET("/settings", c.getSettings)
		api.PUT("/settings", c.updateSettings)

		api.POST("/cache/clear", c.clearCache)
	}
}

type UpdatePsychologistRequest struct {
	FullName     *string               `json:"fullName"`
	CPF          *string               `json:"cpf"`
	PhoneNumber  *string               `json:"phoneNumber"`
	Email        *string               `json:"email"`
	Password     *string               `json:"password"`
	CRP          *string               `json:"crp"`
	Address      *string               `json:"address"`
	Bio          *string               `json:"bio"`
	Specialties  *[]string             `json:"specialties"`
	WorkingHours *[]domain.WorkingHour `json:"workingHours"`
}

type UpdateSettingsRequest struct {
	EmailReminders             *bool   `json:"emailReminders"`
	SMSReminders               *bool   `json:"smsReminders"`
	AppointmentConfirmations   *bool   `json:"appointmentConfirmations"`
	PaymentReminders           *bool   `json:"paymentReminders"`
	PreferredTheme             *string `json:"preferredTheme"`
	Language                   *string `json:"language"`
	AutoBackup                 *bool   `json:"autoBackup"`
	SessionTimeoutMinutes      *int    `json:"sessionTimeoutMinutes"`
	DefaultAppointmentDuration *int    `json:"defaultAppointmentDuration"`
	TwoFactorAuth              *bool   `json:"twoFactorAuth"`
	PasswordExpiryDays         *int    `json:"passwordExpiryDays"`
}

func (c *ProfileController) listPsychologists(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	psychologists, err := c.psychologists.GetAll(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"psychologists": psychologists})
}

func (c *ProfileController) getPsychologist(ctx *gin.Context) {
	psychologist, err := c.psychologists.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, psychologist)
}

func (c *ProfileController) updatePsychologist(ctx *gin.Context) {
	var req UpdatePsychologistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	psychologist, err := c.psychologists.Update(ctx.Request.Context(), ctx.Param("id"), in.UpdatePsychologistInput{
		FullName:     req.FullName,
		CPF:          req.CPF,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Password:     req.Password,
		CRP:          req.CRP,
		Address:      req.Address,
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		WorkingHours: req.WorkingHours,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, psychologist)
}

func (c *ProfileController) getSettings(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	settings, err := c.settings.Get(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

func (c *ProfileController) updateSettings(ctx *gin.Context) {
	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := c.settings.Update(ctx.Request.Context(), in.UpdateSettingsInput{
		EmailReminders:             req.EmailReminders,
		SMSReminders:               req.SMSReminders,
		AppointmentConfirmations:   req.AppointmentConfirmations,
		PaymentReminders:           req.PaymentReminders,
		PreferredTheme:             req.PreferredTheme,
		Language:                   req.Language,
		AutoBackup:                 req.AutoBackup,
		SessionTimeoutMinutes:      req.SessionTimeoutMinutes,
		DefaultAppointmentDuration: req.DefaultAppointmentDuration,
		TwoFactorAuth:              req.TwoFactorAuth,
		PasswordExpiryDays:         req.PasswordExpiryDays,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

func (c *ProfileController) clearCache(ctx *gin.Context) {
	c.cache.InvalidateAll(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"message": "caches cleared"})
}
