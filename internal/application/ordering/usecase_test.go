package ordering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ops/internal/application/apptest"
	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/ordering"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	users    *apptest.UserRepo
	stores   *apptest.StoreRepo
	products *apptest.ProductRepo
	orders   *apptest.OrderRepo
	uc       *ordering.PlaceOrderUseCase
	alice    *session.Session
}

// newFixture arma el escenario base: alice (customer) en (10,10), la tienda 1
// a distancia ~7 con 5 unidades de "Widget", y la tienda 2 fuera de rango.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := apptest.NewUserRepo()
	alice := users.Seed(entity.User{
		Name: "alice", Role: entity.RoleCustomer, Latitude: 10, Longitude: 10,
	})
	stores := apptest.NewStoreRepo(
		entity.Store{ID: 1, Name: "Centro", Latitude: 15, Longitude: 15, ManagerID: 99},
		entity.Store{ID: 2, Name: "Norte", Latitude: 90, Longitude: 90, ManagerID: 99},
	)
	products := apptest.NewProductRepo(
		entity.Product{StoreID: 1, Name: "Widget", Units: 5, Price: decimal.NewFromInt(10)},
	)
	orders := apptest.NewOrderRepo()

	guard := auth.NewGuard(users, stores)
	tx := apptest.NewTxRunner(products, orders, apptest.NewUpdateRepo())
	uc := ordering.NewPlaceOrderUseCase(guard, stores, products, tx)

	return &fixture{
		users:    users,
		stores:   stores,
		products: products,
		orders:   orders,
		uc:       uc,
		alice:    session.New(alice.ID, alice.Name, alice.Role),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados del validador
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateStoreInRange_TiendaCercanaPasa(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.uc.ValidateStoreInRange(context.Background(), f.alice, 1))
}

func TestValidateStoreInRange_TiendaLejanaRechazada(t *testing.T) {
	f := newFixture(t)
	err := f.uc.ValidateStoreInRange(context.Background(), f.alice, 2)
	assert.ErrorIs(t, err, domain.ErrStoreOutOfRange)
}

func TestValidateStoreInRange_TiendaInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.ValidateStoreInRange(context.Background(), f.alice, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateStock_CantidadDentroDelStockPasa(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.uc.ValidateStock(context.Background(), 1, "Widget", 3))
}

func TestValidateStock_CantidadSobreElStockRechazada(t *testing.T) {
	f := newFixture(t)
	err := f.uc.ValidateStock(context.Background(), 1, "Widget", 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestValidateStock_CantidadNoPositivaRechazada(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.uc.ValidateStock(context.Background(), 1, "Widget", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.ValidateStock(context.Background(), 1, "Widget", -2), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

// alice pide 3 de un stock de 5: el pedido queda registrado y el stock en 2.
func TestPlaceOrder_DescuentaStockYRegistraPedido(t *testing.T) {
	f := newFixture(t)

	order, err := f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(2), f.products.Units(1, "Widget"), "el stock debe quedar en 2")
	require.Len(t, f.orders.Orders, 1)
	assert.Equal(t, f.alice.UserID, order.CustomerID)
	assert.Equal(t, int64(3), order.Units)
	assert.NotZero(t, order.Number, "el número lo asigna la persistencia")
}

// Con 2 unidades restantes: pedir 3 se rechaza sin tocar el stock, pedir 2
// deja el stock exactamente en 0.
func TestPlaceOrder_StockJustoYAgotado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 3)
	require.NoError(t, err)

	_, err = f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.products.Units(1, "Widget"), "el rechazo no debe tocar el stock")

	_, err = f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.products.Units(1, "Widget"), "el stock puede llegar exactamente a 0")
	assert.Len(t, f.orders.Orders, 2)
}

func TestPlaceOrder_TiendaFueraDeRangoRechazada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), f.alice, 2, "Widget", 1)
	assert.ErrorIs(t, err, domain.ErrStoreOutOfRange)
	assert.Empty(t, f.orders.Orders)
}

func TestPlaceOrder_CantidadNoPositivaRechazada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si la inserción del pedido falla, el descuento de stock se revierte: nunca
// queda stock descontado sin pedido persistido.
func TestPlaceOrder_FalloDeInsercionRevierteElStock(t *testing.T) {
	f := newFixture(t)
	f.orders.CreateErr = errors.New("conexión perdida")

	_, err := f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 3)
	require.Error(t, err)

	assert.Equal(t, int64(5), f.products.Units(1, "Widget"), "el stock debe quedar intacto")
	assert.Empty(t, f.orders.Orders)
}

// Un usuario borrado en otra terminal no puede seguir operando con su sesión.
func TestPlaceOrder_SesionDeUsuarioBorradoRechazada(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.users.Delete(context.Background(), f.alice.UserID))

	_, err := f.uc.PlaceOrder(context.Background(), f.alice, 1, "Widget", 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int64(5), f.products.Units(1, "Widget"))
}
