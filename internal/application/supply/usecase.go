// Package supply implementa las solicitudes de reposición hacia bodega.
//
// Decisión de política: la solicitud es append-only y NO ajusta el stock de la
// tienda. El stock cambia cuando la mercancía llega y el manager actualiza el
// producto; ajustar al momento de la solicitud contabilizaría unidades que la
// bodega todavía no confirmó.
package supply

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// SupplyUseCase registro de solicitudes de reposición (solo managers).
type SupplyUseCase struct {
	guard         *auth.Guard
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	requestRepo   repository.SupplyRequestRepository
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(
	guard *auth.Guard,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	requestRepo repository.SupplyRequestRepository,
) *SupplyUseCase {
	return &SupplyUseCase{
		guard:         guard,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		requestRepo:   requestRepo,
	}
}

// ValidateStoreExists predicado del validador interactivo.
func (uc *SupplyUseCase) ValidateStoreExists(ctx context.Context, storeID int64) error {
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
func (uc *SupplyUseCase) ValidateProductExists(ctx context.Context, storeID int64, name string) error {
	p, err := uc.productRepo.Get(ctx, storeID, name)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ValidateWarehouseExists predicado del validador interactivo.
func (uc *SupplyUseCase) ValidateWarehouseExists(ctx context.Context, warehouseID int64) error {
	w, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	return nil
}

// PlaceRequest registra la solicitud. Solo managers: el rol matrix excluye
// tanto a customers como a admins de este flujo.
func (uc *SupplyUseCase) PlaceRequest(ctx context.Context, sess *session.Session, storeID, warehouseID int64, productName string, units int64) (*entity.SupplyRequest, error) {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleManager); err != nil {
		return nil, err
	}
	if units <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ValidateStoreExists(ctx, storeID); err != nil {
		return nil, err
	}
	if err := uc.ValidateProductExists(ctx, storeID, productName); err != nil {
		return nil, err
	}
	if err := uc.ValidateWarehouseExists(ctx, warehouseID); err != nil {
		return nil, err
	}

	req := &entity.SupplyRequest{
		ManagerID:      sess.UserID,
		WarehouseID:    warehouseID,
		StoreID:        storeID,
		ProductName:    productName,
		UnitsRequested: units,
	}
	if _, err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
