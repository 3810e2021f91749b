package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/retail-ops/internal/application/catalog"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

const timeLayout = "2006-01-02 15:04:05"

// Renderer imprime los resultados de los flujos como tablas alineadas.
type Renderer struct {
	out io.Writer
	pr  *message.Printer
}

// NewRenderer construye el renderer sobre la salida dada.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, pr: message.NewPrinter(language.Spanish)}
}

// Println atajo para mensajes sueltos del menú.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Printf atajo con formato.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// money formatea un precio con separadores de miles según la localidad.
// Trabaja sobre la representación exacta del decimal; nunca pasa por float64,
// que pierde precisión con montos grandes.
func (r *Renderer) money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	dot := strings.LastIndexByte(fixed, '.')
	entero, err := strconv.ParseInt(fixed[:dot], 10, 64)
	if err != nil {
		// Parte entera fuera de int64: sin agrupación, pero exacta.
		return d.StringFixed(2)
	}
	out := r.pr.Sprintf("%d", entero) + "," + fixed[dot+1:]
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

func (r *Renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
}

// Stores tabla de tiendas cercanas con su distancia.
func (r *Renderer) Stores(rows []catalog.StoreWithDistance) {
	if len(rows) == 0 {
		r.Println("No hay tiendas dentro del rango de cercanía.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "TIENDA\tNOMBRE\tDISTANCIA")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", row.Store.ID, row.Store.Name, row.Distance)
	}
	w.Flush()
	r.Printf("total: %d fila(s)\n", len(rows))
}

// Products tabla del catálogo de una tienda.
func (r *Renderer) Products(rows []*entity.Product) {
	if len(rows) == 0 {
		r.Println("La tienda no tiene productos.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "PRODUCTO\tUNIDADES\tPRECIO")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.Units, r.money(p.Price))
	}
	w.Flush()
	r.Printf("total: %d fila(s)\n", len(rows))
}

// Orders tabla de pedidos (reportes de recencia y listados completos).
func (r *Renderer) Orders(rows []repository.OrderReportRow) {
	if len(rows) == 0 {
		r.Println("No hay pedidos para mostrar.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "PEDIDO\tCLIENTE\tTIENDA\tPRODUCTO\tUNIDADES\tFECHA")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s (%d)\t%s\t%d\t%s\n",
			row.Number, row.CustomerName, row.StoreName, row.StoreID,
			row.ProductName, row.Units, row.OrderTime.Format(timeLayout))
	}
	w.Flush()
	r.Printf("total: %d fila(s)\n", len(rows))
}

// Updates tabla de ediciones de producto.
func (r *Renderer) Updates(rows []repository.UpdateReportRow) {
	if len(rows) == 0 {
		r.Println("No hay ediciones para mostrar.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "EDICIÓN\tAUTOR\tTIENDA\tPRODUCTO\tFECHA")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			row.Number, row.ManagerName, row.StoreID, row.ProductName,
			row.UpdatedOn.Format(timeLayout))
	}
	w.Flush()
	r.Printf("total: %d fila(s)\n", len(rows))
}

// PopularProducts tabla de productos por número de pedidos.
func (r *Renderer) PopularProducts(rows []repository.ProductPopularity) {
	if len(rows) == 0 {
		r.Println("No hay pedidos registrados todavía.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "PRODUCTO\tPEDIDOS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\n", row.ProductName, row.Orders)
	}
	w.Flush()
}

// PopularCustomers tabla de clientes por número de pedidos.
func (r *Renderer) PopularCustomers(rows []repository.CustomerPopularity) {
	if len(rows) == 0 {
		r.Println("No hay pedidos registrados todavía.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "CLIENTE\tNOMBRE\tPEDIDOS")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\n", row.CustomerID, row.CustomerName, row.Orders)
	}
	w.Flush()
}

// Users tabla del listado de usuarios (solo admin).
func (r *Renderer) Users(rows []*entity.User) {
	if len(rows) == 0 {
		r.Println("No hay usuarios registrados.")
		return
	}
	w := r.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tROL\tLATITUD\tLONGITUD")
	for _, u := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\n", u.ID, u.Name, u.Role, u.Latitude, u.Longitude)
	}
	w.Flush()
	r.Printf("total: %d fila(s)\n", len(rows))
}
