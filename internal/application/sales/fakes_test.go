package sales_test

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// memStore estado compartido de los repositorios en memoria para tests.
type memStore struct {
	products       map[string]*entity.Product
	orders         []*entity.Order
	orderItems     []*entity.OrderItem
	quotations     map[string]*entity.Quotation
	quotationItems []*entity.QuotationItem
	deliveries     []*entity.Delivery
	deliveryItems  []*entity.DeliveryItem
	audit          []*entity.AuditLog
	seqs           map[string]int

	// Fallos de unicidad pendientes en orders.Create, para simular la
	// carrera de números duplicados entre procesos.
	orderCreateFailures int

	// Orden en que se pidieron los bloqueos FOR UPDATE de productos.
	lockOrder []string

	nextID int
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		quotations: make(map[string]*entity.Quotation),
		seqs:       make(map[string]int),
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) addProduct(p *entity.Product) *entity.Product {
	if p.ID == "" {
		p.ID = s.id("prod")
	}
	s.products[p.ID] = p
	return p
}

// memSnapshot copia del estado para simular el rollback de una transacción.
type memSnapshot struct {
	products       map[string]entity.Product
	orders         []*entity.Order
	orderItems     []*entity.OrderItem
	quotations     map[string]entity.Quotation
	quotationItems []*entity.QuotationItem
	deliveries     []*entity.Delivery
	deliveryItems  []*entity.DeliveryItem
	audit          []*entity.AuditLog
	seqs           map[string]int
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		products:       make(map[string]entity.Product, len(s.products)),
		orders:         append([]*entity.Order(nil), s.orders...),
		orderItems:     append([]*entity.OrderItem(nil), s.orderItems...),
		quotations:     make(map[string]entity.Quotation, len(s.quotations)),
		quotationItems: append([]*entity.QuotationItem(nil), s.quotationItems...),
		deliveries:     append([]*entity.Delivery(nil), s.deliveries...),
		deliveryItems:  append([]*entity.DeliveryItem(nil), s.deliveryItems...),
		audit:          append([]*entity.AuditLog(nil), s.audit...),
		seqs:           make(map[string]int, len(s.seqs)),
	}
	for id, p := range s.products {
		snap.products[id] = *p
	}
	for id, q := range s.quotations {
		snap.quotations[id] = *q
	}
	for k, v := range s.seqs {
		snap.seqs[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = make(map[string]*entity.Product, len(snap.products))
	for id, p := range snap.products {
		cp := p
		s.products[id] = &cp
	}
	s.quotations = make(map[string]*entity.Quotation, len(snap.quotations))
	for id, q := range snap.quotations {
		cq := q
		s.quotations[id] = &cq
	}
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.quotationItems = snap.quotationItems
	s.deliveries = snap.deliveries
	s.deliveryItems = snap.deliveryItems
	s.audit = snap.audit
	s.seqs = snap.seqs
}

// --- repositorios en memoria ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.addProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) List(limit, offset int, activeOnly bool) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.s.lockOrder = append(r.s.lockOrder, id)
	return r.s.products[id], nil
}

func (r *memProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	if r.s.orderCreateFailures > 0 {
		r.s.orderCreateFailures--
		return domain.ErrDuplicateNumber
	}
	o.ID = r.s.id("order")
	r.s.orders = append(r.s.orders, o)
	return nil
}

func (r *memOrderRepo) CreateItem(it *entity.OrderItem) error {
	it.ID = r.s.id("oitem")
	r.s.orderItems = append(r.s.orderItems, it)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range r.s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memOrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	return r.s.orders, nil
}

func (r *memOrderRepo) UpdateStatus(o *entity.Order) error {
	for i, existing := range r.s.orders {
		if existing.ID == o.ID {
			r.s.orders[i] = o
			return nil
		}
	}
	return domain.ErrNotFound
}

type memQuotationRepo struct{ s *memStore }

func (r *memQuotationRepo) Create(q *entity.Quotation) error {
	q.ID = r.s.id("quote")
	r.s.quotations[q.ID] = q
	return nil
}

func (r *memQuotationRepo) CreateItem(it *entity.QuotationItem) error {
	it.ID = r.s.id("qitem")
	r.s.quotationItems = append(r.s.quotationItems, it)
	return nil
}

func (r *memQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	return r.s.quotations[id], nil
}

func (r *memQuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	var out []*entity.QuotationItem
	for _, it := range r.s.quotationItems {
		if it.QuotationID == quotationID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memQuotationRepo) List(status string, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.s.quotations {
		if status == "" || q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *memQuotationRepo) UpdateStatus(q *entity.Quotation) error {
	if _, ok := r.s.quotations[q.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.quotations[q.ID] = q
	return nil
}

func (r *memQuotationRepo) DeleteItemsByQuotationID(quotationID string) error {
	kept := r.s.quotationItems[:0]
	for _, it := range r.s.quotationItems {
		if it.QuotationID != quotationID {
			kept = append(kept, it)
		}
	}
	r.s.quotationItems = kept
	return nil
}

func (r *memQuotationRepo) UpdateTotals(q *entity.Quotation) error {
	if _, ok := r.s.quotations[q.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.quotations[q.ID] = q
	return nil
}

type memDeliveryRepo struct{ s *memStore }

func (r *memDeliveryRepo) Create(d *entity.Delivery) error {
	d.ID = r.s.id("delivery")
	r.s.deliveries = append(r.s.deliveries, d)
	return nil
}

func (r *memDeliveryRepo) CreateItem(it *entity.DeliveryItem) error {
	it.ID = r.s.id("ditem")
	r.s.deliveryItems = append(r.s.deliveryItems, it)
	return nil
}

func (r *memDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	for _, d := range r.s.deliveries {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDeliveryRepo) GetItemsByDeliveryID(deliveryID string) ([]*entity.DeliveryItem, error) {
	var out []*entity.DeliveryItem
	for _, it := range r.s.deliveryItems {
		if it.DeliveryID == deliveryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memDeliveryRepo) List(status string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDeliveryRepo) UpdateStatus(d *entity.Delivery) error {
	for i, existing := range r.s.deliveries {
		if existing.ID == d.ID {
			r.s.deliveries[i] = d
			return nil
		}
	}
	return domain.ErrNotFound
}

type memSeqRepo struct{ s *memStore }

func (r *memSeqRepo) Next(prefix, period string) (int, error) {
	key := prefix + "-" + period
	r.s.seqs[key]++
	return r.s.seqs[key], nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(entry *entity.AuditLog) error {
	entry.ID = r.s.id("audit")
	r.s.audit = append(r.s.audit, entry)
	return nil
}

func (r *memAuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	return r.s.audit, nil
}

// memTxRunner ejecuta el callback sobre los repos en memoria y revierte el
// estado completo si falla, imitando el rollback de una transacción real.
type memTxRunner struct{ s *memStore }

var _ sales.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memOrderRepo{r.s}, &memProductRepo{r.s}, &memSeqRepo{r.s}, &memAuditRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *memTxRunner) RunQuotation(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memQuotationRepo{r.s}, &memSeqRepo{r.s}, &memAuditRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *memTxRunner) RunConvert(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memQuotationRepo{r.s}, &memOrderRepo{r.s}, &memProductRepo{r.s}, &memSeqRepo{r.s}, &memAuditRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *memTxRunner) RunDelivery(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memDeliveryRepo{r.s}, &memOrderRepo{r.s}, &memSeqRepo{r.s}, &memAuditRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}
