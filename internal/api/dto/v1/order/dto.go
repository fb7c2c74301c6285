package order

// OrderRequest represents an order submission from the storefront contact form.
// Values are relayed verbatim, so binding only enforces presence.
type OrderRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// OrderResponse acknowledges a relayed submission
type OrderResponse struct {
	Success bool `json:"success"`
}
