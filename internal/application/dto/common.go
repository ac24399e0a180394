package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// DefaultPage normaliza la página: límite por defecto 20, tope 100, offset no negativo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas. Count es la cantidad de
// elementos devueltos en esta página, no el total de la tabla.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// NewPage arma los metadatos de página de una respuesta de listado.
func NewPage(limit, offset, count int) PageResponse {
	return PageResponse{Limit: limit, Offset: offset, Count: count}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
