package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ErrorResponse documents a failed request.
type ErrorResponse struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// HealthResponse documents the health endpoints.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// OrderWebhookExample documents the subset of an order payload the pipeline reads.
type OrderWebhookExample struct {
	ID                int64                    `json:"id" example:"820982911946154500"`
	Name              string                   `json:"name" example:"#1001"`
	CreatedAt         string                   `json:"created_at" example:"2025-04-10T12:30:00+05:30"`
	Currency          string                   `json:"currency" example:"INR"`
	FulfillmentStatus string                   `json:"fulfillment_status" example:"fulfilled"`
	FinancialStatus   string                   `json:"financial_status" example:"paid"`
	LineItems         []LineItemWebhookExample `json:"line_items"`
}

// LineItemWebhookExample documents one order line.
type LineItemWebhookExample struct {
	ID            int64  `json:"id" example:"466157049"`
	ProductID     int64  `json:"product_id" example:"632910392"`
	Title         string `json:"title" example:"Cotton Kurta"`
	SKU           string `json:"sku" example:"KURTA-M-HSN6109"`
	Price         string `json:"price" example:"118.00"`
	Quantity      int    `json:"quantity" example:"3"`
	TotalDiscount string `json:"total_discount" example:"0.00"`
}

// RefundWebhookExample documents a refund payload.
type RefundWebhookExample struct {
	ID              int64  `json:"id" example:"509562969"`
	OrderID         int64  `json:"order_id" example:"820982911946154500"`
	CreatedAt       string `json:"created_at" example:"2025-04-20T09:00:00+05:30"`
	RefundLineItems []struct {
		LineItemID int64 `json:"line_item_id" example:"466157049"`
		Quantity   int   `json:"quantity" example:"1"`
	} `json:"refund_line_items"`
}
