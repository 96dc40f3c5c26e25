package models

import (
	"encoding/json"
	"net/http"
)

// OrderItemRequest is a single dish as submitted by a client. TableID is a
// pointer so that a missing id is rejected while an explicit 0 still binds.
type OrderItemRequest struct {
	TableID  *int16  `json:"table_id" binding:"required"`
	ItemName string  `json:"item_name" binding:"required"`
	Note     *string `json:"note"`
}

// TableOrdersRequest is the body of POST /api/v1/tables/{table_id}/orders.
// table_id is repeated on every item and must agree with the path.
type TableOrdersRequest struct {
	TableID *int16             `json:"table_id" binding:"required"`
	Orders  []OrderItemRequest `json:"orders" binding:"required,dive"`
}

// TableOrdersResponse is the full current order list of one table.
type TableOrdersResponse struct {
	StatusCode uint16      `json:"status_code"`
	TableID    int16       `json:"table_id"`
	Orders     []OrderItem `json:"orders"`
}

func NewOrderItemRequest(tableID int16, itemName, note string) OrderItemRequest {
	return OrderItemRequest{TableID: &tableID, ItemName: itemName, Note: &note}
}

func NewOrderItemRequestWithoutNote(tableID int16, itemName string) OrderItemRequest {
	return OrderItemRequest{TableID: &tableID, ItemName: itemName}
}

// Table is the item's table id, 0 when absent.
func (r OrderItemRequest) Table() int16 {
	if r.TableID == nil {
		return 0
	}
	return *r.TableID
}

func NewTableOrdersRequest(tableID int16) *TableOrdersRequest {
	return &TableOrdersRequest{TableID: &tableID, Orders: []OrderItemRequest{}}
}

// Table is the envelope's table id, 0 when absent.
func (r *TableOrdersRequest) Table() int16 {
	if r.TableID == nil {
		return 0
	}
	return *r.TableID
}

// AddOrder appends an item for the request's table.
func (r *TableOrdersRequest) AddOrder(itemName, note string) {
	r.Orders = append(r.Orders, NewOrderItemRequest(r.Table(), itemName, note))
}

func (r *TableOrdersRequest) AddOrderWithoutNote(itemName string) {
	r.Orders = append(r.Orders, NewOrderItemRequestWithoutNote(r.Table(), itemName))
}

// TakeOrders returns the items and leaves the request empty.
func (r *TableOrdersRequest) TakeOrders() []OrderItemRequest {
	orders := r.Orders
	r.Orders = []OrderItemRequest{}
	return orders
}

func (r *TableOrdersRequest) ToJSON() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewTableOrdersResponse(statusCode uint16, tableID int16, orders []OrderItem) TableOrdersResponse {
	if orders == nil {
		orders = []OrderItem{}
	}
	return TableOrdersResponse{StatusCode: statusCode, TableID: tableID, Orders: orders}
}

// OKTableOrders wraps orders in a 200 response.
func OKTableOrders(tableID int16, orders []OrderItem) TableOrdersResponse {
	return NewTableOrdersResponse(http.StatusOK, tableID, orders)
}
