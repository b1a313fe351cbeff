package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "scholarship-portal-backend/internal/adapter/http"
	"scholarship-portal-backend/internal/adapter/middleware"
	"scholarship-portal-backend/internal/adapter/repository/mysql"
	"scholarship-portal-backend/internal/config"
	"scholarship-portal-backend/internal/infrastructure/cache"
	"scholarship-portal-backend/internal/infrastructure/db"
	appUsecase "scholarship-portal-backend/internal/usecase/application"
	"scholarship-portal-backend/internal/usecase/dbt"
	"scholarship-portal-backend/internal/usecase/finance"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	appRepo := mysql.NewApplicationRepository(gdb)
	txnRepo := mysql.NewTransactionRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// Roles, document verification and notifications are external
	// collaborators; the default wiring talks to their HTTP/queue front ends
	// configured elsewhere. Tests substitute their own fakes.
	roles := mysql.NewRoleDirectory(gdb)
	docs := mysql.NewDocumentDirectory(gdb)
	notifier := httpadp.NewLogNotifier()

	applications := appUsecase.NewUsecase(appRepo, txnRepo, uow, roles, docs, notifier)
	financeOpts := []finance.Option{}
	if cfg.AllowPhased {
		financeOpts = append(financeOpts, finance.WithPhasedDisbursements())
	}
	financeUC := finance.NewUsecase(uow, roles, notifier, financeOpts...)
	simulator := dbt.NewSimulator(uow, roles, notifier, dbt.WithSuccessRate(cfg.DBTSuccessRate))

	h := httpadp.NewHandler()
	appHandler := httpadp.NewApplicationHandler(applications)
	finHandler := httpadp.NewFinanceHandler(financeUC)
	dbtHandler := httpadp.NewDBTHandler(simulator)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	apps := e.Group("/applications", idemp)
	apps.POST("", appHandler.Create)
	apps.GET("/:application_id", appHandler.Get)
	apps.POST("/:application_id/submit", appHandler.Submit)
	apps.POST("/:application_id/review", appHandler.Review)
	apps.GET("/:application_id/timeline", appHandler.Timeline)

	fin := e.Group("/finance", idemp)
	fin.POST("/calculate", finHandler.Calculate)
	fin.POST("/disbursements/bulk", finHandler.BulkDisburse)
	fin.POST("/payments/status", finHandler.UpdatePaymentStatus)
	fin.POST("/dbt/transfer", dbtHandler.SimulateTransfer)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
