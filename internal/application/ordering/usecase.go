package ordering

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/geo"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// PlaceOrderUseCase coloca pedidos contra el stock vivo de una tienda.
// El commit (descuento condicional de stock + inserción del pedido) corre en
// una sola transacción; si el descuento no aplica, el pedido no persiste.
type PlaceOrderUseCase struct {
	guard       *auth.Guard
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	tx          TxRunner
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(
	guard *auth.Guard,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	tx TxRunner,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{guard: guard, storeRepo: storeRepo, productRepo: productRepo, tx: tx}
}

// ValidateStoreInRange predicado del validador interactivo: la tienda existe y
// está a menos de geo.NearbyRadius del actor. Devuelve ErrNotFound o
// ErrStoreOutOfRange según el caso.
func (uc *PlaceOrderUseCase) ValidateStoreInRange(ctx context.Context, sess *session.Session, storeID int64) error {
	user, err := uc.guard.User(ctx, sess)
	if err != nil {
		return err
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	if !geo.WithinRadius(user.Position(), store.Position(), geo.NearbyRadius) {
		return domain.ErrStoreOutOfRange
	}
	return nil
}

// ValidateProductExists predicado: el producto existe en la tienda.
func (uc *PlaceOrderUseCase) ValidateProductExists(ctx context.Context, storeID int64, productName string) error {
	p, err := uc.productRepo.Get(ctx, storeID, productName)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ValidateStock predicado previo al commit: el stock actual alcanza para qty.
// Es solo una lectura informativa para el validador; la garantía real la da
// el UPDATE condicional dentro de la transacción de PlaceOrder.
func (uc *PlaceOrderUseCase) ValidateStock(ctx context.Context, storeID int64, productName string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	p, err := uc.productRepo.Get(ctx, storeID, productName)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if p.Units < qty {
		return domain.ErrInsufficientStock
	}
	return nil
}

// PlaceOrder ejecuta el flujo completo: autorización (cualquier rol logueado),
// revalidación de tienda en rango y producto, y commit atómico. La revalidación
// cubre la carrera entre el prompt y el commit; el descuento condicional cubre
// la carrera con otros pedidos concurrentes.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, sess *session.Session, storeID int64, productName string, qty int64) (*entity.Order, error) {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleCustomer, entity.RoleManager, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ValidateStoreInRange(ctx, sess, storeID); err != nil {
		return nil, err
	}

	order := &entity.Order{
		CustomerID:  sess.UserID,
		StoreID:     storeID,
		ProductName: productName,
		Units:       qty,
	}
	err := uc.tx.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := productRepo.DecrementUnits(ctx, storeID, productName, qty); err != nil {
			return err
		}
		_, err := orderRepo.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
