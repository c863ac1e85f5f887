package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ampliar/clinic-data-gateway/internal/adapters/out/remote"
)

// writeError forwards the remote's status when the failure came through the
// gateway, so the facade stays transparent about what the clinic API said.
func writeError(ctx *gin.Context, err error) {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		ctx.JSON(status, gin.H{"error": apiErr.Message})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
