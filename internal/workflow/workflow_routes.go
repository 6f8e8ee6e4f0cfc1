package workflow

import (
	"github.com/dapphari007/LMS/internal/middleware"
	"github.com/dapphari007/LMS/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	workflows := r.Group("/workflows")
	workflows.Use(middleware.AuthMiddleware())
	{
		workflows.GET("", middleware.RBACAuthorize(rbacService, "workflow", "read"), handler.GetAll)
		workflows.GET("/:id", middleware.RBACAuthorize(rbacService, "workflow", "read"), handler.GetById)
		workflows.POST("", middleware.RBACAuthorize(rbacService, "workflow", "create"), handler.Create)
		workflows.PUT("/:id", middleware.RBACAuthorize(rbacService, "workflow", "update"), handler.Update)
		workflows.DELETE("/:id", middleware.RBACAuthorize(rbacService, "workflow", "delete"), handler.Delete)
	}
}
