package mapping

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	mappings := r.Group("/companies/:companyId/csv-mapping")
	{
		mappings.GET("", handler.Get)
		mappings.PUT("", handler.Save)
		mappings.POST("/parse", handler.Parse)
	}
}
