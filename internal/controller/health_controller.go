package controller

import (
	"time"

	"vidyasetu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	started time.Time
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db, started: time.Now()}
}

// Health godoc
// @Summary Liveness and database connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := gin.H{
		"status":    "ok",
		"uptime":    time.Since(c.started).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		ctx.JSON(503, util.Response{Success: false, Message: "Service degraded", Data: status})
		return
	}

	status["database"] = "ok"
	util.Success(ctx, status)
}
