package dto

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Search   string `query:"search"`
}

// Normalize aplica valores por defecto y límites.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset devuelve el desplazamiento SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages calcula el número de páginas para un total dado.
func (p PageRequest) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// ListResponse envoltura estándar de listados paginados:
// { data, total, page, pageSize, totalPages }.
type ListResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewListResponse arma la envoltura a partir de la página pedida y el total.
func NewListResponse[T any](data []T, total int, page PageRequest) *ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &ListResponse[T]{
		Data:       data,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(total),
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
