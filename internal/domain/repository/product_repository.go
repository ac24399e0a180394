package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock son el ledger de stock: siempre se usan dentro
// de una transacción (TxRunner) para que la resta/suma sea atómica.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(limit, offset int, activeOnly bool) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock fija la cantidad en stock. La columna tiene CHECK (stock_quantity >= 0)
	// como última defensa; la validación de negocio ocurre antes, con la fila bloqueada.
	UpdateStock(id string, quantity int) error
}
