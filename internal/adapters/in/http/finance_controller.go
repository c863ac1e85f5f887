package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/core/json_types"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
)

type FinanceController struct {
	finance in.FinanceUseCase
}

func NewFinanceController(finance in.FinanceUseCase) *FinanceController {
	return &FinanceController{finance: finance}
}

func (c *FinanceController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/payments", c.listPayments)
		api.POST("/payments", c.createPayment)
		api.PUT("/payments/:id", c.updatePayment)
		api.DELETE("/payments/:id", c.deletePayment)

		api.GET("/payers", c.listPayers)
		api.POST("/payers", c.createPayer)
		api.PUT("/payers/:id", c.updatePayer)
		api.DELETE("/payers/:id", c.deletePayer)
	}
}

type CreatePaymentRequest struct {
	Amount      json_types.Money `json:"amount" binding:"required"`
	PaymentDate string           `json:"paymentDate" binding:"required"`
	PayerID     string           `json:"payerId" binding:"required"`
}

type UpdatePaymentRequest struct {
	Amount      *json_types.Money `json:"amount"`
	PaymentDate *string           `json:"paymentDate"`
	PayerID     *string           `json:"payerId"`
}

type CreatePayerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	CPF         string `json:"cpf" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type UpdatePayerRequest struct {
	FullName    *string `json:"fullName"`
	CPF         *string `json:"cpf"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (c *FinanceController) listPayments(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	payments, err := c.finance.GetPayments(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (c *FinanceController) createPayment(ctx *gin.Context) {
	var req CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := c.finance.CreatePayment(ctx.Request.Context(), in.CreatePaymentInput{
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		PayerID:     req.PayerID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

func (c *FinanceController) updatePayment(ctx *gin.Context) {
	var req UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := c.finance.UpdatePayment(ctx.Request.Context(), ctx.Param("id"), in.UpdatePaymentInput{
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		PayerID:     req.PayerID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

func (c *FinanceController) deletePayment(ctx *gin.Context) {
	if err := c.finance.DeletePayment(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

func (c *FinanceController) listPayers(ctx *gin.Context) {
	force := ctx.Query("refresh") == "true"

	payers, err := c.finance.GetPayers(ctx.Request.Context(), force)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payers": payers})
}

func (c *FinanceController) createPayer(ctx *gin.Context) {
	var req CreatePayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payer, err := c.finance.CreatePayer(ctx.Request.Context(), in.CreatePayerInput{
		FullName:    req.FullName,
		CPF:         req.CPF,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, payer)
}

func (c *FinanceController) updatePayer(ctx *gin.Context) {
	var req UpdatePayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payer, err := c.finance.UpdatePayer(ctx.Request.Context(), ctx.Param("id"), in.UpdatePayerInput{
		FullName:    req.FullName,
		CPF:         req.CPF,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payer)
}

func (c *FinanceController) deletePayer(ctx *gin.Context) {
	if err := c.finance.DeletePayer(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "payer deleted"})
}
