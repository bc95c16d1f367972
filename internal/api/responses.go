package api

// Shared response envelopes referenced by the handler annotations.

type ErrorResponse struct {
	Error string `json:"error" example:"class is full"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
