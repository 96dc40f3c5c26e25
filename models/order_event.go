package models

import "time"

// Event names carried by TableOrdersEvent.
const (
	EventOrdersAdded  = "orders_added"
	EventOrderRemoved = "order_removed"
)

// TableOrdersEvent describes a change to a table's orders together with the
// table's order list as read right after the change.
type TableOrdersEvent struct {
	Event      string      `json:"event"`
	TableID    int16       `json:"table_id"`
	OrderID    *int32      `json:"order_id,omitempty"`
	Orders     []OrderItem `json:"orders"`
	OccurredAt time.Time   `json:"occurred_at"`
}
