package ingestion

import (
	"go-payslip/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	uploads := r.Group("/uploads")
	{
		uploads.POST("", handler.Register)
		uploads.GET("/:id", handler.GetById)

		// Ingestion is heavy; keep repeated triggers from one host in check.
		processLimit := middleware.RateLimitByIP(0.5, 3)
		if redisClient != nil {
			uploads.POST("/process", processLimit, middleware.Idempotency(redisClient), handler.Process)
		} else {
			uploads.POST("/process", processLimit, handler.Process)
		}
	}
}
