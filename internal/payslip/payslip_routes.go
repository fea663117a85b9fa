package payslip

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payslips := r.Group("/companies/:companyId/payslips")
	{
		payslips.GET("", handler.GetAll)
		payslips.GET("/:id", handler.GetById)
		payslips.POST("/:id/viewed", handler.MarkViewed)
	}
}
