package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-orders/utils"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Checker           HealthChecker
	ExposeErrorDetail bool
}

func NewHealthController(checker HealthChecker, exposeErrorDetail bool) *HealthController {
	return &HealthController{Checker: checker, ExposeErrorDetail: exposeErrorDetail}
}

// Health -> GET /api/v1/health
func (hc *HealthController) Health(c *gin.Context) {
	utils.InfoLogger.Println("[health check]")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := hc.Checker.Ping(ctx); err != nil {
		status := "Database error"
		if hc.ExposeErrorDetail {
			status = fmt.Sprintf("Database error %v", err)
		}
		utils.ErrorLogger.Errorf("health check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy!"})
}
