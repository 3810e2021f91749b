package reports

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// RecentLimit número de filas de los reportes de recencia y popularidad.
const RecentLimit = 5

// ReportsUseCase reportes de solo lectura con alcance según el rol vigente:
// customer ve lo propio, manager sus tiendas, admin todo.
type ReportsUseCase struct {
	guard      *auth.Guard
	reportRepo repository.ReportRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(guard *auth.Guard, reportRepo repository.ReportRepository) *ReportsUseCase {
	return &ReportsUseCase{guard: guard, reportRepo: reportRepo}
}

// RecentOrders últimos pedidos según el rol: los propios (customer), los de
// las tiendas administradas (manager) o los de toda la cadena (admin).
func (uc *ReportsUseCase) RecentOrders(ctx context.Context, sess *session.Session) ([]repository.OrderReportRow, error) {
	role, err := uc.guard.Role(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleCustomer:
		return uc.reportRepo.RecentOrdersByCustomer(ctx, sess.UserID, RecentLimit)
	case entity.RoleManager:
		return uc.reportRepo.RecentOrdersByManager(ctx, sess.UserID, RecentLimit)
	case entity.RoleAdmin:
		return uc.reportRepo.RecentOrders(ctx, RecentLimit)
	}
	return nil, domain.ErrForbidden
}

// Orders listado completo: admin toda la cadena, manager sus tiendas.
func (uc *ReportsUseCase) Orders(ctx context.Context, sess *session.Session) ([]repository.OrderReportRow, error) {
	role, err := uc.guard.Role(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleManager:
		return uc.reportRepo.OrdersByManager(ctx, sess.UserID)
	case entity.RoleAdmin:
		return uc.reportRepo.AllOrders(ctx)
	}
	return nil, domain.ErrForbidden
}

// RecentUpdates últimas ediciones de producto. El manager indica una de sus
// tiendas (storeID); el admin pasa storeID 0 para el alcance global.
func (uc *ReportsUseCase) RecentUpdates(ctx context.Context, sess *session.Session, storeID int64) ([]repository.UpdateReportRow, error) {
	role, err := uc.guard.Role(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleAdmin:
		if storeID == 0 {
			return uc.reportRepo.RecentUpdates(ctx, RecentLimit)
		}
		return uc.reportRepo.RecentUpdatesByStore(ctx, storeID, RecentLimit)
	case entity.RoleManager:
		if err := uc.guard.AuthorizeStore(ctx, sess, storeID); err != nil {
			return nil, err
		}
		return uc.reportRepo.RecentUpdatesByStore(ctx, storeID, RecentLimit)
	}
	return nil, domain.ErrForbidden
}

// PopularProducts productos más pedidos. Mismo esquema de alcance que RecentUpdates.
func (uc *ReportsUseCase) PopularProducts(ctx context.Context, sess *session.Session, storeID int64) ([]repository.ProductPopularity, error) {
	role, err := uc.guard.Role(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleAdmin:
		if storeID == 0 {
			return uc.reportRepo.PopularProducts(ctx, RecentLimit)
		}
		return uc.reportRepo.PopularProductsByStore(ctx, storeID, RecentLimit)
	case entity.RoleManager:
		if err := uc.guard.AuthorizeStore(ctx, sess, storeID); err != nil {
			return nil, err
		}
		return uc.reportRepo.PopularProductsByStore(ctx, storeID, RecentLimit)
	}
	return nil, domain.ErrForbidden
}

// PopularCustomers clientes con más pedidos: manager sobre sus tiendas, admin global.
func (uc *ReportsUseCase) PopularCustomers(ctx context.Context, sess *session.Session) ([]repository.CustomerPopularity, error) {
	role, err := uc.guard.Role(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch role {
	case entity.RoleManager:
		return uc.reportRepo.PopularCustomersByManager(ctx, sess.UserID, RecentLimit)
	case entity.RoleAdmin:
		return uc.reportRepo.PopularCustomers(ctx, RecentLimit)
	}
	return nil, domain.ErrForbidden
}
