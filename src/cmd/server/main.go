package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/customer"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/controller"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/middleware"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/router"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/postgres"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/config"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
	"github.com/api-sage/fd-account-processor/src/internal/scheduler"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(openCtx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	txnRepo := postgres.NewTransactionRepository(db)
	balanceRepo := postgres.NewBalanceSnapshotRepository(db)
	sequenceRepo := postgres.NewSequenceRepository(db, cfg.SequenceStart)
	userRepo := postgres.NewUserRepository(db)
	branchRepo := postgres.NewBranchRepository(db)
	productCatalog := memory.NewProductCatalog()

	var customerClient service_interfaces.CustomerClient
	if cfg.CustomerServiceURL != "" {
		customerClient = customer.NewClient(cfg.CustomerServiceURL)
	} else {
		customerClient = memory.NewCustomerDirectory(domain.CustomerInfo{
			CustomerID:     "CUST-DEMO-001",
			FullName:       "Asha Venkatraman",
			Classification: "RETAIL",
			Active:         true,
		})
	}

	var batchClock clock.Clock = clock.SystemClock{}
	if cfg.BatchDate != nil {
		batchClock = clock.FixedClock{Date: *cfg.BatchDate}
	}

	publisher := events.NewLogPublisher()
	interest := services.NewInterestService()

	standardGen := services.NewStandardAccountNumberGenerator(sequenceRepo, cfg.DefaultBranchCode)
	ibanGen := services.NewIBANAccountNumberGenerator(sequenceRepo, cfg.DefaultBranchCode, cfg.CountryCode, cfg.BankCode)
	identifierService := services.NewIdentifierService(standardGen, ibanGen, branchRepo, cfg.GeneratorStrategy)

	defaultGen, err := identifierService.GeneratorFor(cfg.GeneratorStrategy)
	if err != nil {
		log.Fatalf("resolve generator strategy: %v", err)
	}

	accountService := services.NewAccountService(
		accountRepo,
		txnRepo,
		balanceRepo,
		branchRepo,
		customerClient,
		productCatalog,
		defaultGen,
		interest,
		publisher,
		batchClock,
	)
	userService := services.NewUserService(userRepo)

	accrualService := services.NewAccrualService(accountRepo, txnRepo, balanceRepo, interest, publisher, batchClock, cfg.BatchWorkers)
	capitalizationService := services.NewCapitalizationService(accountRepo, txnRepo, balanceRepo, publisher, batchClock, cfg.BatchWorkers)
	maturityService := services.NewMaturityService(accountRepo, txnRepo, balanceRepo, interest, publisher, batchClock, cfg.BatchWorkers)

	channelAuth := middleware.ChannelAuth(cfg.ChannelID, cfg.ChannelKey)
	operatorAuth := middleware.OperatorAuth(userService)
	batchAuth := func(next http.Handler) http.Handler {
		return channelAuth(operatorAuth(next))
	}

	mux := router.New(
		controller.NewAccountController(accountService),
		controller.NewCalculatorController(interest),
		controller.NewIdentifierController(identifierService),
		controller.NewUserController(userService),
		controller.NewBranchController(branchRepo, productCatalog),
		controller.NewBatchController(accrualService, capitalizationService, maturityService, batchClock),
		channelAuth,
		batchAuth,
	)

	batchScheduler := scheduler.New(accrualService, capitalizationService, maturityService, cfg.BatchHourUTC)
	go batchScheduler.Start(ctx)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("fd account processor listening", logger.Fields{
		"addr": cfg.HTTPAddr,
	})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve http: %v", err)
	}
}
