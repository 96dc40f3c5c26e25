package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout is RFC3339 with microsecond precision, the wire format of order timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// UnassignedOrderID marks an order that has not been persisted yet.
const UnassignedOrderID int32 = -1

// OrderItem is one dish ordered for a table. Rows are immutable once stored.
type OrderItem struct {
	OrderID              int32     `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	TableID              int16     `gorm:"column:table_id;not null;index:idx_orders_table_id" json:"table_id"`
	ItemName             string    `gorm:"column:item_name;type:varchar(255);not null;check:chk_orders_item_name,length(item_name) > 0 AND length(item_name) <= 255" json:"item_name"`
	Note                 *string   `gorm:"column:note;type:text" json:"note"`
	CreationTime         time.Time `gorm:"column:creation_time;precision:6;not null" json:"creation_time"`
	EstimatedArrivalTime time.Time `gorm:"column:estimated_arrival_time;precision:6;not null" json:"estimated_arrival_time"`
}

func (OrderItem) TableName() string {
	return "orders"
}

// orderItemWire keeps the JSON field order stable and formats timestamps in UTC.
type orderItemWire struct {
	OrderID              int32   `json:"order_id"`
	TableID              int16   `json:"table_id"`
	ItemName             string  `json:"item_name"`
	Note                 *string `json:"note"`
	CreationTime         string  `json:"creation_time"`
	EstimatedArrivalTime string  `json:"estimated_arrival_time"`
}

func (o OrderItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderItemWire{
		OrderID:              o.OrderID,
		TableID:              o.TableID,
		ItemName:             o.ItemName,
		Note:                 o.Note,
		CreationTime:         o.CreationTime.UTC().Format(TimestampLayout),
		EstimatedArrivalTime: o.EstimatedArrivalTime.UTC().Format(TimestampLayout),
	})
}

func (o *OrderItem) UnmarshalJSON(data []byte) error {
	var wire orderItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	created, err := time.Parse(time.RFC3339Nano, wire.CreationTime)
	if err != nil {
		return err
	}
	arrival, err := time.Parse(time.RFC3339Nano, wire.EstimatedArrivalTime)
	if err != nil {
		return err
	}
	*o = OrderItem{
		OrderID:              wire.OrderID,
		TableID:              wire.TableID,
		ItemName:             wire.ItemName,
		Note:                 wire.Note,
		CreationTime:         created.UTC(),
		EstimatedArrivalTime: arrival.UTC(),
	}
	return nil
}

// ArrivalOffset is the time between creation and estimated arrival.
func (o OrderItem) ArrivalOffset() time.Duration {
	return o.EstimatedArrivalTime.Sub(o.CreationTime)
}
