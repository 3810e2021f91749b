package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/catalog"
	"github.com/jhoicas/retail-ops/internal/application/ordering"
	"github.com/jhoicas/retail-ops/internal/application/reports"
	"github.com/jhoicas/retail-ops/internal/application/supply"
	"github.com/jhoicas/retail-ops/internal/application/users"
	infrapdf "github.com/jhoicas/retail-ops/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-ops/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ops/internal/interfaces/cli"
	"github.com/jhoicas/retail-ops/pkg/config"
	"github.com/jhoicas/retail-ops/pkg/logger"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "uso: %s <dbname> <puerto> <usuario>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// Los argumentos posicionales mandan sobre el entorno.
	port, err := strconv.Atoi(os.Args[2])
	if err != nil || port <= 0 {
		fmt.Fprintf(os.Stderr, "puerto inválido: %q\n", os.Args[2])
		os.Exit(2)
	}
	cfg.DB.DBName = os.Args[1]
	cfg.DB.Port = port
	cfg.DB.User = os.Args[3]

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.DBName).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplyReqRepo := postgres.NewSupplyRequestRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := auth.NewGuard(userRepo, storeRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.TokenConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL(),
	})
	orderUC := ordering.NewPlaceOrderUseCase(guard, storeRepo, productRepo, txRunner)
	catalogUC := catalog.NewCatalogUseCase(guard, storeRepo, productRepo, txRunner)
	supplyUC := supply.NewSupplyUseCase(guard, storeRepo, productRepo, warehouseRepo, supplyReqRepo)
	usersUC := users.NewUsersUseCase(guard, userRepo)
	reportsUC := reports.NewReportsUseCase(guard, reportRepo)

	menu := cli.NewMenu(cli.Deps{
		Prompter:  cli.NewPrompter(cli.NewStdinSource(), os.Stdout),
		Render:    cli.NewRenderer(os.Stdout),
		Log:       log,
		AuthUC:    authUC,
		Guard:     guard,
		OrderUC:   orderUC,
		CatalogUC: catalogUC,
		SupplyUC:  supplyUC,
		UsersUC:   usersUC,
		ReportsUC: reportsUC,
		OrdersPDF: infrapdf.NewOrdersReportGenerator(),
		TokenFile: cfg.Session.File,
	})

	if err := menu.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("lazo de menú")
	}
	log.Info().Msg("aplicación finalizada")
}
