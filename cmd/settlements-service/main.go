package main

import (
	"fmt"
	"os"

	"github.com/droneflow/settlements/internal/auth"
	"github.com/droneflow/settlements/internal/config"
	"github.com/droneflow/settlements/internal/db"
	"github.com/droneflow/settlements/internal/excel"
	httphandler "github.com/droneflow/settlements/internal/http"
	"github.com/droneflow/settlements/internal/http/middleware"
	"github.com/droneflow/settlements/internal/logger"
	"github.com/droneflow/settlements/internal/pdf"
	"github.com/droneflow/settlements/internal/repository"
	"github.com/droneflow/settlements/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	serviceRepo := repository.NewServiceRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)
	contributionRepo := repository.NewContributionRepository(database)
	closedMonthRepo := repository.NewClosedMonthRepository(database)
	clientRepo := repository.NewClientRepository(database)

	settlements := service.NewSettlementService(
		serviceRepo,
		expenseRepo,
		contributionRepo,
		closedMonthRepo,
		clientRepo,
		cfg.Business.Rules(),
	)

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(settlements, pdfGenerator, excelGenerator, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting settlements service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
