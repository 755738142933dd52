package dto

// Envelope es el sobre JSON uniforme de la API:
// { "success": bool, "data": ..., "message": "...", "error": "..." }.
// Los handlers nunca serializan DTOs sin este sobre.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK construye un sobre de éxito con data.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage construye un sobre de éxito con data y mensaje.
func OKMessage(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail construye un sobre de error.
func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
