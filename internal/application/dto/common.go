package dto

// PageRequest paginación para listados (?skip=&limit=).
type PageRequest struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto y acota el límite.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse confirmación de operaciones sin cuerpo (bajas lógicas).
type MessageResponse struct {
	Message string `json:"message"`
}
