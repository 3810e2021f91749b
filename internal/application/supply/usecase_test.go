package supply_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops/internal/application/apptest"
	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/application/supply"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	products *apptest.ProductRepo
	requests *apptest.SupplyRepo
	uc       *supply.SupplyUseCase

	customer *session.Session
	manager  *session.Session
	admin    *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := apptest.NewUserRepo()
	customer := users.Seed(entity.User{Name: "alice", Role: entity.RoleCustomer})
	manager := users.Seed(entity.User{Name: "bob", Role: entity.RoleManager})
	admin := users.Seed(entity.User{Name: "root", Role: entity.RoleAdmin})

	stores := apptest.NewStoreRepo(
		entity.Store{ID: 1, Name: "Centro", ManagerID: manager.ID},
	)
	products := apptest.NewProductRepo(
		entity.Product{StoreID: 1, Name: "Widget", Units: 5, Price: decimal.NewFromInt(10)},
	)
	warehouses := apptest.NewWarehouseRepo(
		entity.Warehouse{ID: 1, Area: 1000, Latitude: 40, Longitude: 40},
	)
	requests := apptest.NewSupplyRepo()

	guard := auth.NewGuard(users, stores)
	uc := supply.NewSupplyUseCase(guard, stores, products, warehouses, requests)

	return &fixture{
		products: products,
		requests: requests,
		uc:       uc,
		customer: session.New(customer.ID, customer.Name, customer.Role),
		manager:  session.New(manager.ID, manager.Name, manager.Role),
		admin:    session.New(admin.ID, admin.Name, admin.Role),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceRequest
// ──────────────────────────────────────────────────────────────────────────────

// La solicitud queda registrada y el stock de la tienda NO cambia: el ajuste
// ocurre recién cuando la mercancía llega y el manager edita el producto.
func TestPlaceRequest_ManagerRegistraSinTocarStock(t *testing.T) {
	f := newFixture(t)

	req, err := f.uc.PlaceRequest(context.Background(), f.manager, 1, 1, "Widget", 20)
	require.NoError(t, err)

	require.Len(t, f.requests.Rows, 1)
	assert.Equal(t, int64(20), req.UnitsRequested)
	assert.NotZero(t, req.Number)
	assert.Equal(t, int64(5), f.products.Units(1, "Widget"), "la solicitud no ajusta stock")
}

// El flujo es exclusivo de managers: ni customer ni admin pasan.
func TestPlaceRequest_SoloManagers(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceRequest(context.Background(), f.customer, 1, 1, "Widget", 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.PlaceRequest(context.Background(), f.admin, 1, 1, "Widget", 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, f.requests.Rows)
}

func TestPlaceRequest_CantidadNoPositivaRechazada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceRequest(context.Background(), f.manager, 1, 1, "Widget", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceRequest_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.PlaceRequest(ctx, f.manager, 99, 1, "Widget", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound, "tienda inexistente")

	_, err = f.uc.PlaceRequest(ctx, f.manager, 1, 1, "Fantasma", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = f.uc.PlaceRequest(ctx, f.manager, 1, 99, "Widget", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")

	assert.Empty(t, f.requests.Rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados del validador
// ──────────────────────────────────────────────────────────────────────────────

func TestValidators_CasosBasicos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.uc.ValidateStoreExists(ctx, 1))
	assert.ErrorIs(t, f.uc.ValidateStoreExists(ctx, 2), domain.ErrNotFound)

	assert.NoError(t, f.uc.ValidateProductExists(ctx, 1, "Widget"))
	assert.ErrorIs(t, f.uc.ValidateProductExists(ctx, 1, "Gadget"), domain.ErrNotFound)

	assert.NoError(t, f.uc.ValidateWarehouseExists(ctx, 1))
	assert.ErrorIs(t, f.uc.ValidateWarehouseExists(ctx, 2), domain.ErrNotFound)
}
