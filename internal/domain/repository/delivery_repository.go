package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para Delivery y sus líneas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	CreateItem(item *entity.DeliveryItem) error
	GetByID(id string) (*entity.Delivery, error)
	GetItemsByDeliveryID(deliveryID string) ([]*entity.DeliveryItem, error)
	List(status string, limit, offset int) ([]*entity.Delivery, error)
	UpdateStatus(delivery *entity.Delivery) error
}
