// Package apptest provee fakes en memoria de los puertos de persistencia para
// los tests de los casos de uso. El TxRunner imita el rollback real: toma un
// snapshot del stock antes de ejecutar la función y lo restaura si falla.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// ── UserRepo ──────────────────────────────────────────────────────────────────

// UserRepo fake en memoria de repository.UserRepository.
type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]entity.User
	// Referenced marca usuarios con pedidos asociados: Delete devuelve
	// ErrConflict, como el FK RESTRICT de la base real.
	Referenced map[int64]bool
}

// NewUserRepo construye el fake vacío.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[int64]entity.User{}, Referenced: map[int64]bool{}}
}

// Seed agrega un usuario asignando el siguiente ID y lo devuelve.
func (r *UserRepo) Seed(u entity.User) entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return u
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Name == u.Name {
			return 0, domain.ErrNameAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for id := range r.users {
		u := r.users[id]
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	if r.Referenced[id] {
		return domain.ErrConflict
	}
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

// ── StoreRepo ─────────────────────────────────────────────────────────────────

// StoreRepo fake en memoria de repository.StoreRepository.
type StoreRepo struct {
	Stores map[int64]entity.Store
}

// NewStoreRepo construye el fake con las tiendas dadas.
func NewStoreRepo(stores ...entity.Store) *StoreRepo {
	r := &StoreRepo{Stores: map[int64]entity.Store{}}
	for _, s := range stores {
		r.Stores[s.ID] = s
	}
	return r
}

func (r *StoreRepo) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	s, ok := r.Stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StoreRepo) List(_ context.Context) ([]*entity.Store, error) {
	out := make([]*entity.Store, 0, len(r.Stores))
	for id := range r.Stores {
		s := r.Stores[id]
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StoreRepo) IsManagedBy(_ context.Context, storeID, managerID int64) (bool, error) {
	s, ok := r.Stores[storeID]
	return ok && s.ManagerID == managerID, nil
}

var _ repository.StoreRepository = (*StoreRepo)(nil)

// ── ProductRepo ───────────────────────────────────────────────────────────────

type productKey struct {
	storeID int64
	name    string
}

// ProductRepo fake en memoria de repository.ProductRepository.
type ProductRepo struct {
	mu       sync.Mutex
	products map[productKey]entity.Product
}

// NewProductRepo construye el fake con los productos dados.
func NewProductRepo(products ...entity.Product) *ProductRepo {
	r := &ProductRepo{products: map[productKey]entity.Product{}}
	for _, p := range products {
		r.products[productKey{p.StoreID, p.Name}] = p
	}
	return r
}

func (r *ProductRepo) Get(_ context.Context, storeID int64, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productKey{storeID, name}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) ListByStore(_ context.Context, storeID int64) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for k := range r.products {
		if k.storeID == storeID {
			p := r.products[k]
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := productKey{p.StoreID, p.Name}
	if _, ok := r.products[k]; ok {
		return domain.ErrDuplicate
	}
	r.products[k] = *p
	return nil
}

func (r *ProductRepo) Overwrite(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := productKey{p.StoreID, p.Name}
	if _, ok := r.products[k]; !ok {
		return domain.ErrNotFound
	}
	r.products[k] = *p
	return nil
}

func (r *ProductRepo) DecrementUnits(_ context.Context, storeID int64, name string, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := productKey{storeID, name}
	p, ok := r.products[k]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Units < qty {
		return domain.ErrInsufficientStock
	}
	p.Units -= qty
	r.products[k] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, storeID int64, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := productKey{storeID, name}
	if _, ok := r.products[k]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, k)
	return nil
}

// Units unidades actuales del producto, -1 si no existe. Para asserts.
func (r *ProductRepo) Units(storeID int64, name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productKey{storeID, name}]
	if !ok {
		return -1
	}
	return p.Units
}

func (r *ProductRepo) snapshot() map[productKey]entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[productKey]entity.Product, len(r.products))
	for k, v := range r.products {
		snap[k] = v
	}
	return snap
}

func (r *ProductRepo) restore(snap map[productKey]entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ── OrderRepo / UpdateRepo / SupplyRepo / WarehouseRepo ───────────────────────

// OrderRepo fake append-only de repository.OrderRepository.
type OrderRepo struct {
	mu         sync.Mutex
	nextNumber int64
	Orders     []entity.Order
	// CreateErr fuerza el fallo de la inserción (para probar atomicidad).
	CreateErr error
}

// NewOrderRepo construye el fake vacío.
func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return 0, r.CreateErr
	}
	r.nextNumber++
	o.Number = r.nextNumber
	o.OrderTime = time.Now()
	r.Orders = append(r.Orders, *o)
	return o.Number, nil
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

// UpdateRepo fake append-only de repository.ProductUpdateRepository.
type UpdateRepo struct {
	mu         sync.Mutex
	nextNumber int64
	Rows       []entity.ProductUpdate
}

// NewUpdateRepo construye el fake vacío.
func NewUpdateRepo() *UpdateRepo { return &UpdateRepo{} }

func (r *UpdateRepo) Create(_ context.Context, u *entity.ProductUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextNumber++
	u.Number = r.nextNumber
	u.UpdatedOn = time.Now()
	r.Rows = append(r.Rows, *u)
	return u.Number, nil
}

var _ repository.ProductUpdateRepository = (*UpdateRepo)(nil)

// SupplyRepo fake append-only de repository.SupplyRequestRepository.
type SupplyRepo struct {
	mu         sync.Mutex
	nextNumber int64
	Rows       []entity.SupplyRequest
}

// NewSupplyRepo construye el fake vacío.
func NewSupplyRepo() *SupplyRepo { return &SupplyRepo{} }

func (r *SupplyRepo) Create(_ context.Context, req *entity.SupplyRequest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextNumber++
	req.Number = r.nextNumber
	req.RequestedOn = time.Now()
	r.Rows = append(r.Rows, *req)
	return req.Number, nil
}

var _ repository.SupplyRequestRepository = (*SupplyRepo)(nil)

// WarehouseRepo fake de lectura de repository.WarehouseRepository.
type WarehouseRepo struct {
	Warehouses map[int64]entity.Warehouse
}

// NewWarehouseRepo construye el fake con las bodegas dadas.
func NewWarehouseRepo(ws ...entity.Warehouse) *WarehouseRepo {
	r := &WarehouseRepo{Warehouses: map[int64]entity.Warehouse{}}
	for _, w := range ws {
		r.Warehouses[w.ID] = w
	}
	return r
}

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.Warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner fake que imita la atomicidad de la transacción real: si la función
// falla, restaura el estado del stock previo y descarta lo anexado.
type TxRunner struct {
	Products *ProductRepo
	Orders   *OrderRepo
	Updates  *UpdateRepo
}

// NewTxRunner construye el runner sobre los fakes dados.
func NewTxRunner(products *ProductRepo, orders *OrderRepo, updates *UpdateRepo) *TxRunner {
	return &TxRunner{Products: products, Orders: orders, Updates: updates}
}

// RunOrder ejecuta fn; ante error revierte el stock y los pedidos anexados.
func (t *TxRunner) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := t.Products.snapshot()
	nOrders := len(t.Orders.Orders)
	if err := fn(t.Products, t.Orders); err != nil {
		t.Products.restore(snap)
		t.Orders.Orders = t.Orders.Orders[:nOrders]
		return err
	}
	return nil
}

// RunCatalog ejecuta fn; ante error revierte el stock y la auditoría anexada.
func (t *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	updateRepo repository.ProductUpdateRepository,
) error) error {
	snap := t.Products.snapshot()
	nRows := len(t.Updates.Rows)
	if err := fn(t.Products, t.Updates); err != nil {
		t.Products.restore(snap)
		t.Updates.Rows = t.Updates.Rows[:nRows]
		return err
	}
	return nil
}

// ── ReportRepo ────────────────────────────────────────────────────────────────

// ReportRepo fake de repository.ReportRepository: devuelve filas enlatadas y
// registra el último método invocado para verificar el alcance por rol.
type ReportRepo struct {
	LastCall   string
	LastID     int64
	LastLimit  int
	OrderRows  []repository.OrderReportRow
	UpdateRows []repository.UpdateReportRow
	Products   []repository.ProductPopularity
	Customers  []repository.CustomerPopularity
}

// NewReportRepo construye el fake vacío.
func NewReportRepo() *ReportRepo { return &ReportRepo{} }

func (r *ReportRepo) record(call string, id int64, limit int) {
	r.LastCall, r.LastID, r.LastLimit = call, id, limit
}

func (r *ReportRepo) RecentOrdersByCustomer(_ context.Context, customerID int64, limit int) ([]repository.OrderReportRow, error) {
	r.record("RecentOrdersByCustomer", customerID, limit)
	return r.OrderRows, nil
}

func (r *ReportRepo) RecentOrdersByManager(_ context.Context, managerID int64, limit int) ([]repository.OrderReportRow, error) {
	r.record("RecentOrdersByManager", managerID, limit)
	return r.OrderRows, nil
}

func (r *ReportRepo) RecentOrders(_ context.Context, limit int) ([]repository.OrderReportRow, error) {
	r.record("RecentOrders", 0, limit)
	return r.OrderRows, nil
}

func (r *ReportRepo) OrdersByManager(_ context.Context, managerID int64) ([]repository.OrderReportRow, error) {
	r.record("OrdersByManager", managerID, 0)
	return r.OrderRows, nil
}

func (r *ReportRepo) AllOrders(_ context.Context) ([]repository.OrderReportRow, error) {
	r.record("AllOrders", 0, 0)
	return r.OrderRows, nil
}

func (r *ReportRepo) RecentUpdatesByStore(_ context.Context, storeID int64, limit int) ([]repository.UpdateReportRow, error) {
	r.record("RecentUpdatesByStore", storeID, limit)
	return r.UpdateRows, nil
}

func (r *ReportRepo) RecentUpdates(_ context.Context, limit int) ([]repository.UpdateReportRow, error) {
	r.record("RecentUpdates", 0, limit)
	return r.UpdateRows, nil
}

func (r *ReportRepo) PopularProductsByStore(_ context.Context, storeID int64, limit int) ([]repository.ProductPopularity, error) {
	r.record("PopularProductsByStore", storeID, limit)
	return r.Products, nil
}

func (r *ReportRepo) PopularProducts(_ context.Context, limit int) ([]repository.ProductPopularity, error) {
	r.record("PopularProducts", 0, limit)
	return r.Products, nil
}

func (r *ReportRepo) PopularCustomersByManager(_ context.Context, managerID int64, limit int) ([]repository.CustomerPopularity, error) {
	r.record("PopularCustomersByManager", managerID, limit)
	return r.Customers, nil
}

func (r *ReportRepo) PopularCustomers(_ context.Context, limit int) ([]repository.CustomerPopularity, error) {
	r.record("PopularCustomers", 0, limit)
	return r.Customers, nil
}

var _ repository.ReportRepository = (*ReportRepo)(nil)
