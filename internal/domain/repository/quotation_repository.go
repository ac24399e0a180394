package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// QuotationRepository define el puerto de persistencia para Quotation y sus líneas.
// ReplaceItems borra las líneas actuales e inserta las nuevas; se invoca junto con
// UpdateTotals dentro de una transacción para que los totales nunca queden desfasados.
type QuotationRepository interface {
	Create(quotation *entity.Quotation) error
	CreateItem(item *entity.QuotationItem) error
	GetByID(id string) (*entity.Quotation, error)
	GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error)
	List(status string, limit, offset int) ([]*entity.Quotation, error)
	UpdateStatus(quotation *entity.Quotation) error
	DeleteItemsByQuotationID(quotationID string) error
	UpdateTotals(quotation *entity.Quotation) error
}
