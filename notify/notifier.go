package notify

// Confirmation is the payload sent out when an order is confirmed.
type Confirmation struct {
	OrderID  uint   `json:"order_id"`
	OrderRef string `json:"order_ref"`
	UserID   string `json:"user_id"`
	Total    string `json:"total"`
}

// Notifier is a one-way hand-off to an external channel (websocket, email
// relay, ...). Send is fire-and-forget from the order workflow's point of
// view: a returned error is logged and surfaced as a soft warning, it never
// rolls back or blocks a confirmed order.
type Notifier interface {
	Send(recipient string, payload Confirmation) error
}
