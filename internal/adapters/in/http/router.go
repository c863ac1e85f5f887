package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/config"
	"github.com/ampliar/clinic-data-gateway/internal/core/services"
)

// NewRouter assembles the facade. Route registration lives with each
// controller; this only decides the engine mode and the health endpoint.
func NewRouter(cfg *config.Config, svcs *services.Services) *gin.Engine {
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.IsLocal() {
		router.Use(gin.Logger())
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	NewAuthController(svcs.Auth).RegisterRoutes(router)
	NewSchedulingController(svcs.Appointments, svcs.Dashboard).RegisterRoutes(router)
	NewRegistryController(svcs.Patients, svcs.Guardians).RegisterRoutes(router)
	NewFinanceController(svcs.Finance).RegisterRoutes(router)
	NewProfileController(svcs.Psychologists, svcs.Settings, svcs.Cache).RegisterRoutes(router)

	return router
}
