package dto

import "time"

// CreateOrderRequest is the input accepted when creating an order.
// Customer and item must be present but are otherwise unchecked.
type CreateOrderRequest struct {
	Customer string
	Item     string
	Quantity int `validate:"gt=0"`
}

// OrderResponse represents a stored order as listed over HTTP.
type OrderResponse struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedOrderResponse echoes a newly created order without its timestamp.
type CreatedOrderResponse struct {
	ID       int64  `json:"id"`
	Customer string `json:"customer"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// LivenessResponse reports that the process is up.
type LivenessResponse struct {
	Status string `json:"status"`
}

// DatabaseHealthResponse reports a successful database round trip.
type DatabaseHealthResponse struct {
	DB     string         `json:"db"`
	Result map[string]int `json:"result"`
}
