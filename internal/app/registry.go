package app

import (
	"database/sql"

	"github.com/dapphari007/LMS/internal/auth"
	"github.com/dapphari007/LMS/internal/authz"
	"github.com/dapphari007/LMS/internal/balance"
	"github.com/dapphari007/LMS/internal/holiday"
	"github.com/dapphari007/LMS/internal/leaverequest"
	"github.com/dapphari007/LMS/internal/leavetype"
	"github.com/dapphari007/LMS/internal/messaging/kafka"
	"github.com/dapphari007/LMS/internal/notification"
	"github.com/dapphari007/LMS/internal/rbac"
	"github.com/dapphari007/LMS/internal/role"
	"github.com/dapphari007/LMS/internal/user"
	"github.com/dapphari007/LMS/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	roleRepo := role.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	workflowRepo := workflow.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	requestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Collaborators ---
	resolver := workflow.NewApproverResolver(userRepo)
	authorizer := authz.NewAuthorizer(userRepo)
	notifier := notification.NewOutboxNotifier(outboxRepo)

	// --- Services ---
	authService := auth.NewService(userRepo)
	workflowService := workflow.NewService(db, workflowRepo, roleRepo)
	balanceService := balance.NewService(balanceRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	requestService := leaverequest.NewService(
		db,
		requestRepo,
		balanceRepo,
		balanceService,
		workflowRepo,
		workflowService,
		resolver,
		userRepo,
		leaveTypeRepo,
		holidayRepo,
		authorizer,
		notifier,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	workflowHandler := workflow.NewHandler(workflowService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	requestHandler := leaverequest.NewHandler(requestService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		workflow.RegisterRoutes(api, workflowHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leaverequest.RegisterRoutes(api, requestHandler, rbacService, rdb)
	}

	return nil
}
