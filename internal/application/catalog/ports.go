package catalog

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la sobrescritura del producto y
// su fila de auditoría se apliquen como una unidad atómica.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		updateRepo repository.ProductUpdateRepository,
	) error) error
}
