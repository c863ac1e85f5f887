package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
)

// RegistryController exposes the people registries: patients and their legal
// guardians.
type RegistryController struct {
	patients  in.PatientUseCase
	guardians in.GuardianUseCase
}

func NewRegistryController(patients in.PatientUseCase, guardians in.GuardianUseCase) *RegistryController {
	return &RegistryController{
		patients:  patients,
		guardians: guardians,
	}
}

func (c *RegistryController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/patients", c.listPatients)
		api.GET("/patients/options", c.patientOptions)
		api.GET("/patients/:id", c.getPatient)
		api.POST("/patients", c.createPatient)
		api.PUT("/patients/:id", c.updatePatient)
		api.DELETE("/patients/:id", c.deletePatient)

		api.GET("/guardians", c.listGuardians)
		api.POST("/guardians", c.createGuardian)
		api.PUT("/guardians/:id", c.updateGuardian)
		api.DELETE("/guardians/:id", c.deleteGuardian)
	}
}

type CreatePatientRequest struct {
	Name             string   `json:"name" binding:"required"`
	CPF              string   `json:"cpf" binding:"required"`
	Phone            string   `json:"phone" binding:"required"`
	Email            string   `json:"email"`
	BirthDate        string   `json:"birthDate" binding:"required"`
	Address          string   `json:"address"`
	Notes            string   `json:"notes"`
	LegalGuardianIDs []string `json:"legalGuardianIds"`
}

type UpdatePatientRequest struct {
	Name             *string   `json:"name"`
	CPF              *string   `json:"cpf"`
	Phone            *string   `json:"phone"`
	Email            *string   `json:"email"`
	BirthDate        *string   `json:"birthDate"`
	Address          *string   `json:"address"`
	Notes            *string   `json:"notes"`
	LegalGuardianIDs *[]string `json:"legalGuardianIds"`
}

type CreateGuardianRequest struct {
	FullName    string   `json:"fullName" binding:"required"`
	CPF         string   `json:"cpf" binding:"required"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
	PatientIDs  []string `json:"patientIds"`
}

type UpdateGuardianRequest struct {
	FullName    *string   `json:"fullName"`
	CPF         *string   `json:"cpf"`
	PhoneNumber *string   `json:"phoneNumber"`
	PatientIDs  *[]string `json:"patientIds"`
}

func (c *RegistryController) listPatients(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	if name := ctx.Query("search"); name != "" {
		patients, err := c.patients.Search(ctx.Request.Context(), name)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"patients": patients})
		return
	}

	patients, err := c.patients.GetAll(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (c *RegistryController) patientOptions(ctx *gin.Context) {
	options, err := c.patients.ActiveOptions(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"options": options})
}

func (c *RegistryController) getPatient(ctx *gin.Context) {
	patient, err := c.patients.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

func (c *RegistryController) createPatient(ctx *gin.Context) {
	var req CreatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := c.patients.Create(ctx.Request.Context(), in.CreatePatientInput{
		Name:             req.Name,
		CPF:              req.CPF,
		Phone:            req.Phone,
		Email:            req.Email,
		BirthDate:        req.BirthDate,
		Address:          req.Address,
		Notes:            req.Notes,
		LegalGuardianIDs: req.LegalGuardianIDs,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, patient)
}

func (c *RegistryController) updatePatient(ctx *gin.Context) {
	var req UpdatePatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := c.patients.Update(ctx.Request.Context(), ctx.Param("id"), in.UpdatePatientInput{
		Name:             req.Name,
		CPF:              req.CPF,
		Phone:            req.Phone,
		Email:            req.Email,
		BirthDate:        req.BirthDate,
		Address:          req.Address,
		Notes:            req.Notes,
		LegalGuardianIDs: req.LegalGuardianIDs,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

func (c *RegistryController) deletePatient(ctx *gin.Context) {
	if err := c.patients.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "patient deleted"})
}

func (c *RegistryController) listGuardians(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	guardians, err := c.guardians.GetAll(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"guardians": guardians})
}

func (c *RegistryController) createGuardian(ctx *gin.Context) {
	var req CreateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guardian, err := c.guardians.Create(ctx.Request.Context(), in.CreateGuardianInput{
		FullName:    req.FullName,
		CPF:         req.CPF,
		PhoneNumber: req.PhoneNumber,
		PatientIDs:  req.PatientIDs,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, guardian)
}

func (c *RegistryController) updateGuardian(ctx *gin.Context) {
	var req UpdateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guardian, err := c.guardians.Update(ctx.Request.Context(), ctx.Param("id"), in.UpdateGuardianInput{
		FullName:    req.FullName,
		CPF:         req.CPF,
		PhoneNumber: req.PhoneNumber,
		PatientIDs:  req.PatientIDs,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, guardian)
}

func (c *RegistryController) deleteGuardian(ctx *gin.Context) {
	if err := c.guardians.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "guardian deleted"})
}
