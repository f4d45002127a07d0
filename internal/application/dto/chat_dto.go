package dto

// ChatRequest entrada de POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" example:"¿Qué producto debo reponer primero?"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	Reply string `json:"reply"`
}
