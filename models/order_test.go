package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kapao() OrderItem {
	note := "With fried egg"
	return OrderItem{
		OrderID:              1,
		TableID:              11,
		ItemName:             "Kapao",
		Note:                 &note,
		CreationTime:         time.Date(2024, 1, 11, 15, 26, 0, 281247000, time.UTC),
		EstimatedArrivalTime: time.Date(2024, 1, 11, 15, 30, 0, 0, time.UTC),
	}
}

func TestOrderItemMarshalJSON(t *testing.T) {
	b, err := json.Marshal(kapao())
	require.NoError(t, err)

	expected := `{"order_id":1,"table_id":11,"item_name":"Kapao","note":"With fried egg",` +
		`"creation_time":"2024-01-11T15:26:00.281247Z","estimated_arrival_time":"2024-01-11T15:30:00.000000Z"}`
	assert.Equal(t, expected, string(b))
}

func TestOrderItemMarshalJSONNullNoteAndUTC(t *testing.T) {
	item := kapao()
	item.Note = nil
	item.CreationTime = item.CreationTime.In(time.FixedZone("ICT", 7*3600))

	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"note":null`)
	assert.Contains(t, string(b), `"creation_time":"2024-01-11T15:26:00.281247Z"`)
}

func TestOrderItemUnmarshalJSON(t *testing.T) {
	var item OrderItem
	err := json.Unmarshal([]byte(`{"order_id":2,"table_id":11,"item_name":"Ramen","note":null,`+
		`"creation_time":"2024-01-11T22:25:00.281247+07:00","estimated_arrival_time":"2024-01-11T15:40:00Z"}`), &item)
	require.NoError(t, err)

	assert.Equal(t, int32(2), item.OrderID)
	assert.Nil(t, item.Note)
	assert.Equal(t, time.UTC, item.CreationTime.Location())
	assert.True(t, item.CreationTime.Equal(time.Date(2024, 1, 11, 15, 25, 0, 281247000, time.UTC)))
	assert.Equal(t, 14*time.Minute+59*time.Second+718753*time.Microsecond, item.ArrivalOffset())

	assert.Error(t, json.Unmarshal([]byte(`{"creation_time":"yesterday"}`), &item))
}

func TestTableOrdersRequestBuilders(t *testing.T) {
	req := NewTableOrdersRequest(11)
	req.AddOrder("Kapao", "With fried egg")
	req.AddOrderWithoutNote("Ramen")

	require.Len(t, req.Orders, 2)
	assert.Equal(t, int16(11), req.Orders[1].Table())
	assert.Equal(t, int16(11), req.Table())
	require.NotNil(t, req.Orders[0].Note)
	assert.Equal(t, "With fried egg", *req.Orders[0].Note)
	assert.Nil(t, req.Orders[1].Note)

	out, err := req.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"item_name": "Kapao"`)

	taken := req.TakeOrders()
	assert.Len(t, taken, 2)
	assert.NotNil(t, req.Orders)
	assert.Empty(t, req.Orders)
}

func TestNewTableOrdersResponse(t *testing.T) {
	resp := OKTableOrders(100, nil)
	assert.Equal(t, uint16(http.StatusOK), resp.StatusCode)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status_code":200,"table_id":100,"orders":[]}`, string(b))
}

func TestTableOrdersEventJSON(t *testing.T) {
	removed := int32(1)
	event := TableOrdersEvent{
		Event:      EventOrderRemoved,
		TableID:    11,
		OrderID:    &removed,
		Orders:     []OrderItem{},
		OccurredAt: time.Date(2024, 1, 11, 15, 27, 0, 0, time.UTC),
	}
	b, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"order_removed","table_id":11,"order_id":1,"orders":[],"occurred_at":"2024-01-11T15:27:00Z"}`, string(b))

	event.OrderID = nil
	b, err = json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "order_id")
}

func TestTableOfMissingID(t *testing.T) {
	assert.Zero(t, OrderItemRequest{ItemName: "Kapao"}.Table())
	assert.Zero(t, (&TableOrdersRequest{}).Table())

	req := NewTableOrdersRequest(0)
	req.AddOrderWithoutNote("Kapao")
	require.NotNil(t, req.Orders[0].TableID)
	assert.Zero(t, *req.Orders[0].TableID)
}
