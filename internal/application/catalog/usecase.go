package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/geo"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// CatalogUseCase navegación del catálogo y mutaciones sobre productos:
// actualización (manager de la tienda o admin) y alta/baja (solo admin).
type CatalogUseCase struct {
	guard       *auth.Guard
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	tx          TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	guard *auth.Guard,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	tx TxRunner,
) *CatalogUseCase {
	return &CatalogUseCase{guard: guard, storeRepo: storeRepo, productRepo: productRepo, tx: tx}
}

// StoreWithDistance tienda junto con su distancia al actor.
type StoreWithDistance struct {
	Store    entity.Store
	Distance float64
}

// StoresNearby tiendas a menos de geo.NearbyRadius del actor, más cercana primero.
func (uc *CatalogUseCase) StoresNearby(ctx context.Context, sess *session.Session) ([]StoreWithDistance, error) {
	user, err := uc.guard.User(ctx, sess)
	if err != nil {
		return nil, err
	}
	stores, err := uc.storeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	pos := user.Position()
	var nearby []StoreWithDistance
	for _, s := range stores {
		d := geo.Distance(pos, s.Position())
		if d < geo.NearbyRadius {
			nearby = append(nearby, StoreWithDistance{Store: *s, Distance: d})
		}
	}
	// inserción ordenada: las listas de tiendas son pequeñas
	for i := 1; i < len(nearby); i++ {
		for j := i; j > 0 && nearby[j].Distance < nearby[j-1].Distance; j-- {
			nearby[j], nearby[j-1] = nearby[j-1], nearby[j]
		}
	}
	return nearby, nil
}

// Products catálogo de una tienda. Devuelve ErrNotFound si la tienda no existe.
func (uc *CatalogUseCase) Products(ctx context.Context, storeID int64) ([]*entity.Product, error) {
	if err := uc.ValidateStoreExists(ctx, storeID); err != nil {
		return nil, err
	}
	return uc.productRepo.ListByStore(ctx, storeID)
}

// ValidateStoreExists predicado del validador interactivo.
func (uc *CatalogUseCase) ValidateStoreExists(ctx context.Context, storeID int64) error {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ValidateProductExists predicado del validador interactivo.
func (uc *CatalogUseCase) ValidateProductExists(ctx context.Context, storeID int64, name string) error {
	p, err := uc.productRepo.Get(ctx, storeID, name)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ValidateManagedStore predicado: el actor puede administrar la tienda
// (manager propio o admin). Delegado al guard para que la decisión use el rol
// vigente en la base.
func (uc *CatalogUseCase) ValidateManagedStore(ctx context.Context, sess *session.Session, storeID int64) error {
	return uc.guard.AuthorizeStore(ctx, sess, storeID)
}

// UpdateProduct sobrescribe unidades y precio de un producto y registra la
// fila de auditoría, todo en una transacción. Manager solo sobre sus tiendas;
// admin sobre cualquiera.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, sess *session.Session, storeID int64, name string, units int64, price decimal.Decimal) (*entity.ProductUpdate, error) {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleManager, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := uc.guard.AuthorizeStore(ctx, sess, storeID); err != nil {
		return nil, err
	}
	if units < 0 || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	update := &entity.ProductUpdate{
		ManagerID:   sess.UserID,
		StoreID:     storeID,
		ProductName: name,
	}
	err := uc.tx.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		updateRepo repository.ProductUpdateRepository,
	) error {
		if err := productRepo.Overwrite(ctx, &entity.Product{
			StoreID: storeID,
			Name:    name,
			Units:   units,
			Price:   price,
		}); err != nil {
			return err
		}
		_, err := updateRepo.Create(ctx, update)
		return err
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// AddProduct alta de producto en el catálogo de una tienda (solo admin).
func (uc *CatalogUseCase) AddProduct(ctx context.Context, sess *session.Session, storeID int64, name string, units int64, price decimal.Decimal) error {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		return err
	}
	if name == "" || units < 0 || price.IsNegative() {
		return domain.ErrInvalidInput
	}
	if err := uc.ValidateStoreExists(ctx, storeID); err != nil {
		return err
	}
	return uc.productRepo.Create(ctx, &entity.Product{
		StoreID: storeID,
		Name:    name,
		Units:   units,
		Price:   price,
	})
}

// RemoveProduct baja de producto (solo admin).
func (uc *CatalogUseCase) RemoveProduct(ctx context.Context, sess *session.Session, storeID int64, name string) error {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, storeID, name)
}
