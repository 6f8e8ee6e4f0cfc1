package leaverequest

import (
	"github.com/dapphari007/LMS/internal/middleware"
	"github.com/dapphari007/LMS/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			middleware.RateLimitByUser(rate.Limit(5), 10),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetMine)
		requests.GET("/all", middleware.RBACAuthorize(rbacService, "leave_request", "read_all"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetByID)

		// Decision endpoints are idempotency-guarded: a retried approve
		// must not advance the workflow twice.
		requests.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		requests.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
		requests.POST("/:id/cancel",
			middleware.RBACAuthorize(rbacService, "leave_request", "update"),
			handler.Cancel,
		)
		requests.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "leave_request", "delete"),
			handler.Delete,
		)
		requests.POST("/:id/deletion/approve",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.ApproveDeletion,
		)
		requests.POST("/:id/deletion/reject",
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.Idempotency(rdb),
			handler.RejectDeletion,
		)
	}
}
