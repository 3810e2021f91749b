package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
	"github.com/jhoicas/retail-ops/internal/infrastructure/postgres"
)

// Estos tests hacen el ciclo completo contra una base PostgreSQL real: aplican
// el esquema embebido con Migrate y pasan una fila por cada adaptador, de modo
// que cualquier divergencia entre schema.sql y las sentencias SQL de los
// repositorios falle aquí y no en producción. Se omiten si TEST_DATABASE_DSN
// no está definido.

// ────────────────────────────────────────────────────────────────────────────
// Infraestructura de prueba
// ────────────────────────────────────────────────────────────────────────────

func abrirPoolDePrueba(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN no definido; se necesita una base PostgreSQL de prueba")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))

	// Base limpia en cada ejecución; las secuencias vuelven a 1.
	_, err = pool.Exec(ctx, `
		TRUNCATE supply_requests, product_updates, orders, products,
		         stores, warehouses, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func sembrarTienda(t *testing.T, pool *pgxpool.Pool, name string, lat, lon float64, managerID int64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO stores (name, latitude, longitude, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING store_id`,
		name, lat, lon, managerID,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func sembrarBodega(t *testing.T, pool *pgxpool.Pool, area int64, lat, lon float64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO warehouses (area, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING warehouse_id`,
		area, lat, lon,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// ────────────────────────────────────────────────────────────────────────────
// Ciclo completo esquema + adaptadores
// ────────────────────────────────────────────────────────────────────────────

func TestAdaptadoresPostgres_CicloCompleto(t *testing.T) {
	pool := abrirPoolDePrueba(t)
	ctx := context.Background()

	users := postgres.NewUserRepository(pool)
	stores := postgres.NewStoreRepository(pool)
	products := postgres.NewProductRepository(pool)
	warehouses := postgres.NewWarehouseRepository(pool)
	updates := postgres.NewProductUpdateRepository(pool)
	supplies := postgres.NewSupplyRequestRepository(pool)
	reports := postgres.NewReportRepository(pool)
	runner := postgres.NewTxRunner(pool)

	manager := &entity.User{Name: "berta", PasswordHash: "$2a$hash", Latitude: 20, Longitude: 20, Role: entity.RoleManager}
	customer := &entity.User{Name: "alicia", PasswordHash: "$2a$hash", Latitude: 10, Longitude: 10, Role: entity.RoleCustomer}

	var storeID, warehouseID int64

	t.Run("usuarios", func(t *testing.T) {
		id, err := users.Create(ctx, manager)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.False(t, manager.CreatedAt.IsZero())

		_, err = users.Create(ctx, customer)
		require.NoError(t, err)

		_, err = users.Create(ctx, &entity.User{Name: "berta", PasswordHash: "x", Latitude: 1, Longitude: 1, Role: entity.RoleCustomer})
		assert.ErrorIs(t, err, domain.ErrNameAlreadyExists)

		got, err := users.GetByName(ctx, "berta")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, manager.ID, got.ID)
		assert.Equal(t, entity.RoleManager, got.Role)

		got, err = users.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alicia", got.Name)

		todos, err := users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, 2)
	})

	t.Run("tiendas", func(t *testing.T) {
		storeID = sembrarTienda(t, pool, "Centro", 15, 15, manager.ID)

		st, err := stores.GetByID(ctx, storeID)
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "Centro", st.Name)
		assert.Equal(t, manager.ID, st.ManagerID)

		ok, err := stores.IsManagedBy(ctx, storeID, manager.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = stores.IsManagedBy(ctx, storeID, customer.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		lista, err := stores.List(ctx)
		require.NoError(t, err)
		assert.Len(t, lista, 1)
	})

	t.Run("productos", func(t *testing.T) {
		precio := decimal.RequireFromString("12.50")
		require.NoError(t, products.Create(ctx, &entity.Product{StoreID: storeID, Name: "Widget", Units: 5, Price: precio}))

		err := products.Create(ctx, &entity.Product{StoreID: storeID, Name: "Widget", Units: 1, Price: precio})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		p, err := products.Get(ctx, storeID, "Widget")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.EqualValues(t, 5, p.Units)
		assert.True(t, p.Price.Equal(precio), "precio leído: %s", p.Price)

		require.NoError(t, products.Overwrite(ctx, &entity.Product{StoreID: storeID, Name: "Widget", Units: 5, Price: decimal.RequireFromString("13.00")}))

		err = products.Overwrite(ctx, &entity.Product{StoreID: storeID, Name: "NoExiste", Units: 1, Price: precio})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		catalogo, err := products.ListByStore(ctx, storeID)
		require.NoError(t, err)
		assert.Len(t, catalogo, 1)
	})

	t.Run("pedido en transacción", func(t *testing.T) {
		pedido := &entity.Order{CustomerID: customer.ID, StoreID: storeID, ProductName: "Widget", Units: 3}
		err := runner.RunOrder(ctx, func(pr repository.ProductRepository, or repository.OrderRepository) error {
			if err := pr.DecrementUnits(ctx, storeID, "Widget", pedido.Units); err != nil {
				return err
			}
			_, err := or.Create(ctx, pedido)
			return err
		})
		require.NoError(t, err)
		assert.NotZero(t, pedido.Number)
		assert.False(t, pedido.OrderTime.IsZero())

		p, err := products.Get(ctx, storeID, "Widget")
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Units)

		// Sin stock suficiente el descuento falla y no toca la fila.
		err = products.DecrementUnits(ctx, storeID, "Widget", 99)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		p, err = products.Get(ctx, storeID, "Widget")
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Units)
	})

	t.Run("edición con auditoría", func(t *testing.T) {
		err := runner.RunCatalog(ctx, func(pr repository.ProductRepository, ur repository.ProductUpdateRepository) error {
			if err := pr.Overwrite(ctx, &entity.Product{StoreID: storeID, Name: "Widget", Units: 20, Price: decimal.RequireFromString("13.00")}); err != nil {
				return err
			}
			_, err := ur.Create(ctx, &entity.ProductUpdate{ManagerID: manager.ID, StoreID: storeID, ProductName: "Widget"})
			return err
		})
		require.NoError(t, err)

		filas, err := reports.RecentUpdatesByStore(ctx, storeID, 5)
		require.NoError(t, err)
		require.Len(t, filas, 1)
		assert.Equal(t, "berta", filas[0].ManagerName)
		assert.Equal(t, "Widget", filas[0].ProductName)
	})

	t.Run("auditoría directa", func(t *testing.T) {
		edicion := &entity.ProductUpdate{ManagerID: manager.ID, StoreID: storeID, ProductName: "Widget"}
		num, err := updates.Create(ctx, edicion)
		require.NoError(t, err)
		assert.NotZero(t, num)
		assert.False(t, edicion.UpdatedOn.IsZero())
	})

	t.Run("bodegas y reposición", func(t *testing.T) {
		warehouseID = sembrarBodega(t, pool, 1000, 40, 40)

		wh, err := warehouses.GetByID(ctx, warehouseID)
		require.NoError(t, err)
		require.NotNil(t, wh)
		assert.EqualValues(t, 1000, wh.Area)

		wh, err = warehouses.GetByID(ctx, warehouseID+999)
		require.NoError(t, err)
		assert.Nil(t, wh)

		solicitud := &entity.SupplyRequest{
			ManagerID:      manager.ID,
			WarehouseID:    warehouseID,
			StoreID:        storeID,
			ProductName:    "Widget",
			UnitsRequested: 50,
		}
		num, err := supplies.Create(ctx, solicitud)
		require.NoError(t, err)
		assert.NotZero(t, num)
		assert.False(t, solicitud.RequestedOn.IsZero())
	})

	t.Run("reportes", func(t *testing.T) {
		recientes, err := reports.RecentOrdersByCustomer(ctx, customer.ID, 5)
		require.NoError(t, err)
		require.Len(t, recientes, 1)
		assert.Equal(t, "alicia", recientes[0].CustomerName)
		assert.Equal(t, "Centro", recientes[0].StoreName)
		assert.EqualValues(t, 3, recientes[0].Units)

		porManager, err := reports.RecentOrdersByManager(ctx, manager.ID, 5)
		require.NoError(t, err)
		assert.Len(t, porManager, 1)

		todos, err := reports.AllOrders(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, 1)

		populares, err := reports.PopularProductsByStore(ctx, storeID, 5)
		require.NoError(t, err)
		require.Len(t, populares, 1)
		assert.Equal(t, "Widget", populares[0].ProductName)
		assert.EqualValues(t, 1, populares[0].Orders)

		clientes, err := reports.PopularCustomers(ctx, 5)
		require.NoError(t, err)
		require.Len(t, clientes, 1)
		assert.Equal(t, customer.ID, clientes[0].CustomerID)
	})

	t.Run("borrado de usuarios", func(t *testing.T) {
		// El cliente tiene pedidos: la FK RESTRICT lo protege.
		err := users.Delete(ctx, customer.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)

		libre := &entity.User{Name: "carlos", PasswordHash: "x", Latitude: 5, Longitude: 5, Role: entity.RoleCustomer}
		_, err = users.Create(ctx, libre)
		require.NoError(t, err)
		require.NoError(t, users.Delete(ctx, libre.ID))

		err = users.Delete(ctx, libre.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ────────────────────────────────────────────────────────────────────────────
// Rollback transaccional
// ────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraStock(t *testing.T) {
	pool := abrirPoolDePrueba(t)
	ctx := context.Background()

	users := postgres.NewUserRepository(pool)
	products := postgres.NewProductRepository(pool)
	runner := postgres.NewTxRunner(pool)

	cliente := &entity.User{Name: "alicia", PasswordHash: "x", Latitude: 10, Longitude: 10, Role: entity.RoleCustomer}
	_, err := users.Create(ctx, cliente)
	require.NoError(t, err)
	storeID := sembrarTienda(t, pool, "Centro", 15, 15, cliente.ID)

	require.NoError(t, products.Create(ctx, &entity.Product{
		StoreID: storeID, Name: "Widget", Units: 5, Price: decimal.RequireFromString("1.00"),
	}))

	// Si el callback falla después del descuento, el Rollback deja el stock intacto.
	err = runner.RunOrder(ctx, func(pr repository.ProductRepository, _ repository.OrderRepository) error {
		if err := pr.DecrementUnits(ctx, storeID, "Widget", 3); err != nil {
			return err
		}
		return domain.ErrInvalidInput
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := products.Get(ctx, storeID, "Widget")
	require.NoError(t, err)
	assert.EqualValues(t, 5, p.Units)
}
