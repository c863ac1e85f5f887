package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
)

type AuthController struct {
	useCase in.AuthUseCase
}

func NewAuthController(useCase in.AuthUseCase) *AuthController {
	return &AuthController{useCase: useCase}
}

func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", c.login)
		auth.POST("/register", c.register)
		auth.POST("/forgot-password", c.forgotPassword)
		auth.POST("/logout", c.logout)
		auth.GET("/state", c.state)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	CPF         string `json:"cpf" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	CRP         string `json:"crp"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (c *AuthController) login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.useCase.Login(ctx.Request.Context(), in.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (c *AuthController) register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.useCase.Register(ctx.Request.Context(), in.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		CPF:         req.CPF,
		PhoneNumber: req.PhoneNumber,
		CRP:         req.CRP,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, state)
}

func (c *AuthController) forgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.useCase.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "reset instructions sent"})
}

func (c *AuthController) logout(ctx *gin.Context) {
	c.useCase.Logout()
	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (c *AuthController) state(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.useCase.State())
}
