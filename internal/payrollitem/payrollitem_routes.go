package payrollitem

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	items := r.Group("/companies/:companyId/payroll-items")
	{
		items.GET("", handler.GetAll)
		items.PUT("", handler.ReplaceAll)
	}
}
