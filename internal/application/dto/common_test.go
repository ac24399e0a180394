package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ventas-api/internal/application/dto"
)

func TestDefaultPage_NormalizaLimites(t *testing.T) {
	cases := []struct {
		name               string
		in                 dto.PageRequest
		wantLimit, wantOff int
	}{
		{"vacío usa el límite por defecto", dto.PageRequest{}, 20, 0},
		{"límite negativo usa el por defecto", dto.PageRequest{Limit: -5}, 20, 0},
		{"límite excesivo se recorta a 100", dto.PageRequest{Limit: 5000, Offset: 40}, 100, 40},
		{"offset negativo se lleva a cero", dto.PageRequest{Limit: 10, Offset: -3}, 10, 0},
		{"valores válidos no se tocan", dto.PageRequest{Limit: 50, Offset: 100}, 50, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.DefaultPage()
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
			assert.Equal(t, tc.wantOff, tc.in.Offset)
		})
	}
}

func TestNewPage_ReportaElementosDevueltos(t *testing.T) {
	page := dto.NewPage(20, 40, 13)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 40, page.Offset)
	assert.Equal(t, 13, page.Count)
}
