package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/catalog"
	"github.com/jhoicas/retail-ops/internal/application/ordering"
	"github.com/jhoicas/retail-ops/internal/application/reports"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/application/supply"
	"github.com/jhoicas/retail-ops/internal/application/users"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-ops/pkg/logger"
)

// Deps casos de uso y colaboradores que el menú necesita.
type Deps struct {
	Prompter  *Prompter
	Render    *Renderer
	Log       *logger.Logger
	AuthUC    *auth.AuthUseCase
	Guard     *auth.Guard
	OrderUC   *ordering.PlaceOrderUseCase
	CatalogUC *catalog.CatalogUseCase
	SupplyUC  *supply.SupplyUseCase
	UsersUC   *users.UsersUseCase
	ReportsUC *reports.ReportsUseCase
	OrdersPDF *pdf.OrdersReportGenerator
	TokenFile string // "" = sin persistencia de sesión
}

// Menu lazo principal de la aplicación interactiva. Cada opción numérica se
// despacha a un flujo: autorización, validación campo a campo y un único
// commit atómico.
type Menu struct {
	Deps
}

// NewMenu construye el menú.
func NewMenu(deps Deps) *Menu {
	return &Menu{Deps: deps}
}

// Run ejecuta el lazo de menús hasta que el operador sale o se cierra la
// entrada. Intenta primero reanudar una sesión persistida.
func (m *Menu) Run(ctx context.Context) error {
	if sess := m.tryResume(ctx); sess != nil {
		if err := m.userLoop(ctx, sess); err != nil {
			return m.finish(err)
		}
	}
	for {
		m.Render.Println("\nMENÚ PRINCIPAL")
		m.Render.Println("---------------")
		m.Render.Println("1. Crear usuario")
		m.Render.Println("2. Iniciar sesión")
		m.Render.Println("9. Salir")
		choice, err := m.readChoice()
		if err != nil {
			return m.finish(err)
		}
		switch choice {
		case 1:
			err = m.createUser(ctx)
		case 2:
			err = m.login(ctx)
		case 9:
			return nil
		default:
			m.Render.Println("¡Opción no reconocida!")
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

// finish trata el cierre de la entrada como salida ordenada.
func (m *Menu) finish(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}

// readChoice lee la selección numérica del menú.
func (m *Menu) readChoice() (int64, error) {
	return m.Prompter.Int64("Seleccione una opción: ", "¡Entrada inválida!")
}

// tryResume reanuda la sesión persistida si existe un token válido.
func (m *Menu) tryResume(ctx context.Context) *session.Session {
	if m.TokenFile == "" {
		return nil
	}
	raw, err := os.ReadFile(m.TokenFile)
	if err != nil {
		return nil
	}
	sess, err := m.AuthUC.Resume(ctx, string(raw))
	if err != nil {
		// token vencido o usuario borrado: descartar sin molestar al operador
		_ = os.Remove(m.TokenFile)
		return nil
	}
	m.Render.Printf("Sesión reanudada: %s (%s)\n", sess.Name, sess.Role)
	return sess
}

func (m *Menu) createUser(ctx context.Context) error {
	name, err := m.Prompter.NonEmpty("\tNombre: ", "El nombre no puede estar vacío.")
	if err != nil {
		return err
	}
	password, err := m.Prompter.NonEmpty("\tContraseña: ", "La contraseña no puede estar vacía.")
	if err != nil {
		return err
	}
	lat, err := m.promptCoordinate("\tLatitud [0-100]: ")
	if err != nil {
		return err
	}
	long, err := m.promptCoordinate("\tLongitud [0-100]: ")
	if err != nil {
		return err
	}
	user, err := m.AuthUC.Register(ctx, auth.RegisterInput{
		Name: name, Password: password, Latitude: lat, Longitude: long,
	})
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Log.Info().Int64("user_id", user.ID).Msg("usuario registrado")
	m.Render.Println("¡Usuario creado con éxito!")
	return nil
}

// promptCoordinate lee un real dentro del plano [0,100].
func (m *Menu) promptCoordinate(prompt string) (float64, error) {
	for {
		v, err := m.Prompter.Float(prompt, "Debe ser un número.")
		if err != nil {
			return 0, err
		}
		if v >= 0 && v <= 100 {
			return v, nil
		}
		m.Render.Println("El valor debe estar entre 0 y 100.")
	}
}

func (m *Menu) login(ctx context.Context) error {
	name, err := m.Prompter.NonEmpty("\tNombre: ", "El nombre no puede estar vacío.")
	if err != nil {
		return err
	}
	password, err := m.Prompter.NonEmpty("\tContraseña: ", "La contraseña no puede estar vacía.")
	if err != nil {
		return err
	}
	sess, err := m.AuthUC.Login(ctx, name, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			m.Render.Println("Nombre o contraseña incorrectos.")
			return nil
		}
		m.reportError(err)
		return nil
	}
	m.persistSession(sess)
	return m.userLoop(ctx, sess)
}

// persistSession guarda el token de reanudación si hay secret configurado.
func (m *Menu) persistSession(sess *session.Session) {
	if m.TokenFile == "" {
		return
	}
	token, err := m.AuthUC.ResumeToken(sess)
	if err != nil || token == "" {
		return
	}
	if err := os.WriteFile(m.TokenFile, []byte(token), 0o600); err != nil {
		m.Log.Warn().Err(err).Msg("no se pudo persistir el token de sesión")
	}
}

// userLoop menú de la sesión autenticada.
func (m *Menu) userLoop(ctx context.Context, sess *session.Session) error {
	log := m.Log.WithSession(sess.ID, sess.UserID)
	log.Info().Str("role", sess.Role).Msg("sesión iniciada")

	for {
		m.Render.Println("\nMENÚ")
		m.Render.Println("----")
		m.Render.Println("1. Ver tiendas cercanas (radio 30)")
		m.Render.Println("2. Ver productos de una tienda")
		m.Render.Println("3. Hacer un pedido")
		m.Render.Println("4. Ver 5 pedidos recientes")
		m.Render.Println("5. Actualizar producto")
		m.Render.Println("6. Ver 5 ediciones de producto recientes")
		m.Render.Println("7. Ver 5 productos populares")
		m.Render.Println("8. Ver 5 clientes populares")
		m.Render.Println("9. Solicitar reposición a bodega")
		m.Render.Println("10. Ver pedidos (admin y manager)")
		m.Render.Println("11. Ver usuarios (solo admin)")
		m.Render.Println("12. Agregar usuario (solo admin)")
		m.Render.Println("13. Agregar producto (solo admin)")
		m.Render.Println("14. Eliminar usuario (solo admin)")
		m.Render.Println("15. Eliminar producto (solo admin)")
		m.Render.Println("16. Exportar pedidos a PDF (admin y manager)")
		m.Render.Println(".........................")
		m.Render.Println("20. Cerrar sesión")

		choice, err := m.readChoice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = m.viewStores(ctx, sess)
		case 2:
			err = m.viewProducts(ctx)
		case 3:
			err = m.placeOrder(ctx, sess, log)
		case 4:
			err = m.viewRecentOrders(ctx, sess)
		case 5:
			err = m.updateProduct(ctx, sess, log)
		case 6:
			err = m.viewRecentUpdates(ctx, sess)
		case 7:
			err = m.viewPopularProducts(ctx, sess)
		case 8:
			err = m.viewPopularCustomers(ctx, sess)
		case 9:
			err = m.placeSupplyRequest(ctx, sess, log)
		case 10:
			err = m.viewOrders(ctx, sess)
		case 11:
			err = m.viewUsers(ctx, sess)
		case 12:
			err = m.addUser(ctx, sess, log)
		case 13:
			err = m.addProduct(ctx, sess, log)
		case 14:
			err = m.removeUser(ctx, sess, log)
		case 15:
			err = m.removeProduct(ctx, sess, log)
		case 16:
			err = m.exportOrdersPDF(ctx, sess)
		case 20:
			if m.TokenFile != "" {
				_ = os.Remove(m.TokenFile)
			}
			log.Info().Msg("sesión cerrada")
			return nil
		default:
			m.Render.Println("¡Opción no reconocida!")
		}
		if err != nil {
			return err
		}
	}
}

// reportError traduce errores de dominio a mensajes del operador. Ningún
// error se traga en silencio: lo que no tiene mensaje propio se loguea.
func (m *Menu) reportError(err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		m.Render.Println("Usuario no autorizado, regresando al menú.")
	case errors.Is(err, domain.ErrNotFound):
		m.Render.Println("El recurso indicado ya no existe.")
	case errors.Is(err, domain.ErrInsufficientStock):
		m.Render.Println("El stock disponible no alcanza para la cantidad pedida.")
	case errors.Is(err, domain.ErrStoreOutOfRange):
		m.Render.Println("La tienda está fuera de su rango de cercanía.")
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrNameAlreadyExists):
		m.Render.Println("Ya existe un registro con esos datos.")
	case errors.Is(err, domain.ErrConflict):
		m.Render.Println("La operación entra en conflicto con el estado actual (¿referencias existentes?).")
	case errors.Is(err, domain.ErrInvalidInput):
		m.Render.Println("Datos inválidos para la operación.")
	default:
		m.Log.Error().Err(err).Msg("operación fallida")
		m.Render.Println("No se pudo completar la operación; intente de nuevo.")
	}
}

func (m *Menu) viewStores(ctx context.Context, sess *session.Session) error {
	stores, err := m.CatalogUC.StoresNearby(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Stores(stores)
	return nil
}

func (m *Menu) viewProducts(ctx context.Context) error {
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda: ",
		"La tienda seleccionada no existe, elija otra.",
		func(id int64) error { return m.CatalogUC.ValidateStoreExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	products, err := m.CatalogUC.Products(ctx, storeID)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Products(products)
	return nil
}

// swallowReported deja pasar el cierre de entrada y reporta el resto sin
// terminar el lazo de menú.
func (m *Menu) swallowReported(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return err
	}
	m.reportError(err)
	return nil
}

func (m *Menu) placeOrder(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda en su área: ",
		"La tienda no existe o está fuera de su área, elija otra.",
		func(id int64) error { return m.OrderUC.ValidateStoreInRange(ctx, sess, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	productName, err := m.Prompter.Validated(
		"\tNombre del producto: ",
		"El producto seleccionado no existe, elija otro.",
		func(name string) error { return m.OrderUC.ValidateProductExists(ctx, storeID, name) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	qty, err := m.Prompter.Int64Validated(
		"\tCantidad: ",
		"La cantidad supera el stock disponible, indique otra.",
		func(n int64) error { return m.OrderUC.ValidateStock(ctx, storeID, productName, n) },
	)
	if err != nil {
		return m.swallowReported(err)
	}

	order, err := m.OrderUC.PlaceOrder(ctx, sess, storeID, productName, qty)
	if err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().
		Int64("order_number", order.Number).
		Int64("store_id", storeID).
		Str("product", productName).
		Int64("units", qty).
		Msg("pedido registrado")
	m.Render.Printf("Pedido #%d registrado con éxito.\n", order.Number)
	return nil
}

func (m *Menu) viewRecentOrders(ctx context.Context, sess *session.Session) error {
	rows, err := m.ReportsUC.RecentOrders(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Orders(rows)
	return nil
}

func (m *Menu) updateProduct(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleManager, entity.RoleAdmin); err != nil {
		m.reportError(err)
		return nil
	}
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda: ",
		"No administra esa tienda o no existe, elija otra.",
		func(id int64) error { return retryableStore(m.CatalogUC.ValidateManagedStore(ctx, sess, id)) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	productName, err := m.Prompter.Validated(
		"\tProducto a actualizar: ",
		"El producto seleccionado no existe, elija otro.",
		func(name string) error { return m.CatalogUC.ValidateProductExists(ctx, storeID, name) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	units, err := m.promptUnits("\tNuevo número de unidades: ")
	if err != nil {
		return err
	}
	price, err := m.promptPrice("\tNuevo precio por unidad: ")
	if err != nil {
		return err
	}

	update, err := m.CatalogUC.UpdateProduct(ctx, sess, storeID, productName, units, price)
	if err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().
		Int64("update_number", update.Number).
		Int64("store_id", storeID).
		Str("product", productName).
		Msg("producto actualizado")
	m.Render.Printf("Producto actualizado (auditoría #%d).\n", update.Number)
	return nil
}

func (m *Menu) promptUnits(prompt string) (int64, error) {
	for {
		n, err := m.Prompter.Int64(prompt, "Debe ser un número entero.")
		if err != nil {
			return 0, err
		}
		if n >= 0 {
			return n, nil
		}
		m.Render.Println("Las unidades no pueden ser negativas.")
	}
}

func (m *Menu) promptPrice(prompt string) (decimal.Decimal, error) {
	for {
		d, derr := m.Prompter.Decimal(prompt, "Debe ser un número.")
		if derr != nil {
			return decimal.Zero, derr
		}
		if !d.IsNegative() {
			return d, nil
		}
		m.Render.Println("El precio no puede ser negativo.")
	}
}

func (m *Menu) viewRecentUpdates(ctx context.Context, sess *session.Session) error {
	storeID, err := m.promptReportStore(ctx, sess)
	if err != nil {
		return m.swallowReported(err)
	}
	rows, err := m.ReportsUC.RecentUpdates(ctx, sess, storeID)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Updates(rows)
	return nil
}

// promptReportStore para los reportes por tienda: el admin puede pedir el
// alcance global con 0; el manager debe indicar una de sus tiendas.
func (m *Menu) promptReportStore(ctx context.Context, sess *session.Session) (int64, error) {
	role, err := m.Guard.Role(ctx, sess)
	if err != nil {
		return 0, err
	}
	switch role {
	case entity.RoleAdmin:
		return m.Prompter.Int64("\tID de tienda (0 = todas): ", "Debe ser un número entero.")
	case entity.RoleManager:
		return m.Prompter.Int64Validated(
			"\tID de tienda que administra: ",
			"No administra esa tienda, elija otra.",
			func(id int64) error { return retryableStore(m.Guard.AuthorizeStore(ctx, sess, id)) },
		)
	}
	return 0, domain.ErrForbidden
}

// retryableStore convierte el rechazo de tienda ajena en un error de
// validación: para el operador es un ID a corregir, no una sesión inválida.
func retryableStore(err error) error {
	if errors.Is(err, domain.ErrForbidden) {
		return domain.ErrNotFound
	}
	return err
}

func (m *Menu) viewPopularProducts(ctx context.Context, sess *session.Session) error {
	storeID, err := m.promptReportStore(ctx, sess)
	if err != nil {
		return m.swallowReported(err)
	}
	rows, err := m.ReportsUC.PopularProducts(ctx, sess, storeID)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.PopularProducts(rows)
	return nil
}

func (m *Menu) viewPopularCustomers(ctx context.Context, sess *session.Session) error {
	rows, err := m.ReportsUC.PopularCustomers(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.PopularCustomers(rows)
	return nil
}

func (m *Menu) placeSupplyRequest(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleManager); err != nil {
		m.reportError(err)
		return nil
	}
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda destino: ",
		"La tienda seleccionada no existe, elija otra.",
		func(id int64) error { return m.SupplyUC.ValidateStoreExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	productName, err := m.Prompter.Validated(
		"\tProducto a reponer: ",
		"El producto seleccionado no existe, elija otro.",
		func(name string) error { return m.SupplyUC.ValidateProductExists(ctx, storeID, name) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	units, err := m.promptPositiveUnits("\tUnidades a solicitar: ")
	if err != nil {
		return err
	}
	warehouseID, err := m.Prompter.Int64Validated(
		"\tID de bodega origen: ",
		"La bodega seleccionada no existe, elija otra.",
		func(id int64) error { return m.SupplyUC.ValidateWarehouseExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}

	req, err := m.SupplyUC.PlaceRequest(ctx, sess, storeID, warehouseID, productName, units)
	if err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().
		Int64("request_number", req.Number).
		Int64("store_id", storeID).
		Int64("warehouse_id", warehouseID).
		Msg("solicitud de reposición registrada")
	m.Render.Printf("Solicitud de reposición #%d registrada.\n", req.Number)
	return nil
}

func (m *Menu) promptPositiveUnits(prompt string) (int64, error) {
	for {
		n, err := m.Prompter.Int64(prompt, "Debe ser un número entero.")
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		m.Render.Println("La cantidad debe ser mayor que cero.")
	}
}

func (m *Menu) viewOrders(ctx context.Context, sess *session.Session) error {
	rows, err := m.ReportsUC.Orders(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Orders(rows)
	return nil
}

func (m *Menu) viewUsers(ctx context.Context, sess *session.Session) error {
	list, err := m.UsersUC.List(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Users(list)
	return nil
}

func (m *Menu) addUser(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		m.reportError(err)
		return nil
	}
	name, err := m.Prompter.NonEmpty("\tNombre del nuevo usuario: ", "El nombre no puede estar vacío.")
	if err != nil {
		return err
	}
	password, err := m.promptPassword()
	if err != nil {
		return err
	}
	lat, err := m.promptCoordinate("\tLatitud [0-100]: ")
	if err != nil {
		return err
	}
	long, err := m.promptCoordinate("\tLongitud [0-100]: ")
	if err != nil {
		return err
	}
	role, err := m.Prompter.Validated(
		"\tRol (customer, manager, admin): ",
		"Rol desconocido, indique customer, manager o admin.",
		func(r string) error {
			if !entity.ValidRole(r) {
				return domain.ErrInvalidInput
			}
			return nil
		},
	)
	if err != nil {
		return m.swallowReported(err)
	}

	user, err := m.UsersUC.Add(ctx, sess, users.AddInput{
		Name: name, Password: password, Latitude: lat, Longitude: long, Role: role,
	})
	if err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().Int64("new_user_id", user.ID).Str("new_role", role).Msg("usuario agregado por admin")
	m.Render.Printf("Usuario #%d creado con éxito.\n", user.ID)
	return nil
}

func (m *Menu) promptPassword() (string, error) {
	for {
		p, err := m.Prompter.Line("\tContraseña (mínimo 3 caracteres): ")
		if err != nil {
			return "", err
		}
		if len(p) >= 3 {
			return p, nil
		}
		m.Render.Println("La contraseña es demasiado corta.")
	}
}

func (m *Menu) addProduct(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		m.reportError(err)
		return nil
	}
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda: ",
		"La tienda seleccionada no existe, elija otra.",
		func(id int64) error { return m.CatalogUC.ValidateStoreExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	name, err := m.Prompter.NonEmpty("\tNombre del producto: ", "El nombre no puede estar vacío.")
	if err != nil {
		return err
	}
	units, err := m.promptUnits("\tUnidades disponibles: ")
	if err != nil {
		return err
	}
	price, err := m.promptPrice("\tPrecio por unidad: ")
	if err != nil {
		return err
	}

	if err := m.CatalogUC.AddProduct(ctx, sess, storeID, name, units, price); err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().Int64("store_id", storeID).Str("product", name).Msg("producto agregado")
	m.Render.Println("¡Producto creado con éxito!")
	return nil
}

func (m *Menu) removeUser(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		m.reportError(err)
		return nil
	}
	id, err := m.Prompter.Int64Validated(
		"\tID del usuario a eliminar: ",
		"El usuario seleccionado no existe, indique otro.",
		func(id int64) error { return m.UsersUC.ValidateUserExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	if err := m.UsersUC.Remove(ctx, sess, id); err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().Int64("removed_user_id", id).Msg("usuario eliminado")
	m.Render.Println("Usuario eliminado.")
	return nil
}

func (m *Menu) removeProduct(ctx context.Context, sess *session.Session, log *logger.Logger) error {
	if err := m.Guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		m.reportError(err)
		return nil
	}
	storeID, err := m.Prompter.Int64Validated(
		"\tID de tienda: ",
		"La tienda seleccionada no existe, elija otra.",
		func(id int64) error { return m.CatalogUC.ValidateStoreExists(ctx, id) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	name, err := m.Prompter.Validated(
		"\tProducto a eliminar: ",
		"El producto seleccionado no existe en la tienda, indique otro.",
		func(name string) error { return m.CatalogUC.ValidateProductExists(ctx, storeID, name) },
	)
	if err != nil {
		return m.swallowReported(err)
	}
	if err := m.CatalogUC.RemoveProduct(ctx, sess, storeID, name); err != nil {
		m.reportError(err)
		return nil
	}
	log.Info().Int64("store_id", storeID).Str("product", name).Msg("producto eliminado")
	m.Render.Println("Producto eliminado.")
	return nil
}

func (m *Menu) exportOrdersPDF(ctx context.Context, sess *session.Session) error {
	rows, err := m.ReportsUC.Orders(ctx, sess)
	if err != nil {
		m.reportError(err)
		return nil
	}
	if len(rows) == 0 {
		m.Render.Println("No hay pedidos para exportar.")
		return nil
	}
	data, err := m.OrdersPDF.Generate(ctx, fmt.Sprintf("Reporte de pedidos - %s", sess.Name), rows)
	if err != nil {
		m.reportError(err)
		return nil
	}
	path := fmt.Sprintf("pedidos_%s.pdf", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.reportError(err)
		return nil
	}
	m.Render.Printf("Reporte exportado a %s (%d pedidos).\n", path, len(rows))
	return nil
}
