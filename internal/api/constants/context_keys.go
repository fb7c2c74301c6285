package constants

// Context keys for values set by middleware
const (
	ContextKeyOrder     = "order"
	ContextKeyRequestID = "RequestID"
	ContextKeyErrorCode = "errorCode"
	ContextKeyRelayed   = "orderRelayed"
)
