package orders

// Application error types attached by the fulfillment activity so the
// workflow retry policy can tell business rejections from transient faults.
const (
	OrderNotFoundErrorType     = "OrderNotFound"
	InvalidTransitionErrorType = "InvalidTransition"
	InsufficientStockErrorType = "InsufficientStock"
)
