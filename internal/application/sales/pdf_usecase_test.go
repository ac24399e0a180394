package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// stubGenerator devuelve bytes fijos; aquí solo interesa qué llega al renderizador.
type stubGenerator struct {
	lastOrder *sales.OrderDocument
}

func (g *stubGenerator) OrderInvoice(doc *sales.OrderDocument) ([]byte, error) {
	g.lastOrder = doc
	return []byte("%PDF-stub"), nil
}

func (g *stubGenerator) QuotationDocument(doc *sales.QuotationDocument) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func (g *stubGenerator) DeliveryNote(doc *sales.DeliveryNoteDocument) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newPDFUC(store *memStore) (*sales.PDFUseCase, *stubGenerator) {
	gen := &stubGenerator{}
	uc := sales.NewPDFUseCase(
		&memOrderRepo{store}, &memQuotationRepo{store}, &memDeliveryRepo{store}, gen,
	)
	return uc, gen
}

func TestOrderPDF_RenderizaConNumeroValido(t *testing.T) {
	store := newMemStore()
	store.orders = append(store.orders, &entity.Order{
		ID:           "order-1",
		OrderNumber:  "ORD-202608-0001",
		CustomerName: "Ana Pérez",
	})
	uc, gen := newPDFUC(store)

	pdfBytes, filename, err := uc.OrderPDF(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdfBytes)
	assert.Equal(t, "pedido_ORD-202608-0001.pdf", filename)
	require.NotNil(t, gen.lastOrder)
	assert.Equal(t, "ORD-202608-0001", gen.lastOrder.Order.OrderNumber)
}

func TestOrderPDF_NumeroAlmacenadoMalformadoEsError(t *testing.T) {
	store := newMemStore()
	store.orders = append(store.orders, &entity.Order{
		ID:           "order-1",
		OrderNumber:  "PEDIDO-1",
		CustomerName: "Ana Pérez",
	})
	uc, gen := newPDFUC(store)

	// Un número corrupto en la base nunca llega al renderizador.
	_, _, err := uc.OrderPDF(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformado")
	assert.Nil(t, gen.lastOrder)
}
