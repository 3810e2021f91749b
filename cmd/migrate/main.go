package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ops/pkg/config"
)

const defaultTimeout = 30 * time.Second

func main() {
	var dsn string
	flag.StringVar(&dsn, "dsn", "", "DSN de PostgreSQL (por defecto se arma desde DB_*)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		cfg, err := config.Load()
		if err != nil {
			fail("cargar configuración: %v", err)
		}
		dsn = cfg.DB.DSN()
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer conn.Close(ctx)

	if err := postgres.Migrate(ctx, conn); err != nil {
		fail("migración fallida: %v", err)
	}
	fmt.Println("esquema aplicado correctamente")
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
