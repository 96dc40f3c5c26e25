package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/utils"
)

const (
	MinArrivalMinutes = 5
	MaxArrivalMinutes = 15
)

// OrderStore is the persistence capability the service needs.
type OrderStore interface {
	AddTableOrders(ctx context.Context, items []models.OrderItem) error
	GetTableOrders(ctx context.Context, tableID int16) ([]models.OrderItem, error)
	GetSpecificOrder(ctx context.Context, tableID int16, orderID int32) ([]models.OrderItem, error)
	RemoveOrder(ctx context.Context, tableID int16, orderID int32) error
}

// OrderNotifier receives the new state of a table after orders were added or removed.
type OrderNotifier interface {
	NotifyTableOrders(ctx context.Context, event models.TableOrdersEvent) error
}

// ArrivalEstimator returns the delay between taking an order and serving it.
type ArrivalEstimator func() time.Duration

// RandomArrival draws a whole number of minutes uniformly from [5, 15].
func RandomArrival() time.Duration {
	minutes := MinArrivalMinutes + rand.Intn(MaxArrivalMinutes-MinArrivalMinutes+1)
	return time.Duration(minutes) * time.Minute
}

// OrderService validates order requests and runs them against the store.
// It keeps no state between requests.
//
// Add and delete read the table back in a separate statement after the
// mutation, so a concurrent writer may be visible in the returned list.
type OrderService struct {
	store     OrderStore
	maxTables int16
	now       func() time.Time
	estimate  ArrivalEstimator
	notifiers []OrderNotifier
}

type Option func(*OrderService)

// WithClock overrides the source of creation times.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

// WithArrivalEstimator overrides the arrival delay policy.
func WithArrivalEstimator(estimate ArrivalEstimator) Option {
	return func(s *OrderService) { s.estimate = estimate }
}

// WithNotifier registers a notifier for table order changes.
func WithNotifier(n OrderNotifier) Option {
	return func(s *OrderService) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

func NewOrderService(store OrderStore, maxTables int16, opts ...Option) *OrderService {
	s := &OrderService{
		store:     store,
		maxTables: maxTables,
		now:       time.Now,
		estimate:  RandomArrival,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildOrderItems turns requests into unsaved orders sharing one creation time.
func BuildOrderItems(requests []models.OrderItemRequest, now time.Time, estimate ArrivalEstimator) []models.OrderItem {
	created := now.UTC().Truncate(time.Microsecond)
	items := make([]models.OrderItem, 0, len(requests))
	for _, req := range requests {
		var note *string
		if req.Note != nil {
			n := *req.Note
			note = &n
		}
		items = append(items, models.OrderItem{
			OrderID:              models.UnassignedOrderID,
			TableID:              req.Table(),
			ItemName:             req.ItemName,
			Note:                 note,
			CreationTime:         created,
			EstimatedArrivalTime: created.Add(estimate()),
		})
	}
	return items
}

// AddOrders stores the request's orders for tableID and returns the table's orders.
func (s *OrderService) AddOrders(ctx context.Context, tableID int16, req models.TableOrdersRequest) (*models.TableOrdersResponse, error) {
	utils.InfoLogger.WithFields(logrus.Fields{"table_id": tableID, "max_tables": s.maxTables}).Info("[add] orders requested")

	if err := ValidateTableID(tableID, s.maxTables); err != nil {
		return nil, err
	}
	if err := ValidateTableConsistency(req.Orders, tableID); err != nil {
		return nil, err
	}

	items := BuildOrderItems(req.TakeOrders(), s.now(), s.estimate)
	utils.InfoLogger.WithField("table_id", tableID).Infof("[add] adding orders (size=%d)", len(items))

	if err := s.store.AddTableOrders(ctx, items); err != nil {
		return nil, err
	}
	orders, err := s.store.GetTableOrders(ctx, tableID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, models.TableOrdersEvent{Event: models.EventOrdersAdded, TableID: tableID, Orders: orders})
	resp := models.OKTableOrders(tableID, orders)
	return &resp, nil
}

// ListTableOrders returns every order of tableID.
func (s *OrderService) ListTableOrders(ctx context.Context, tableID int16) (*models.TableOrdersResponse, error) {
	utils.InfoLogger.WithField("table_id", tableID).Info("[get all] orders requested")

	if err := ValidateTableID(tableID, s.maxTables); err != nil {
		return nil, err
	}
	orders, err := s.store.GetTableOrders(ctx, tableID)
	if err != nil {
		return nil, err
	}
	resp := models.OKTableOrders(tableID, orders)
	return &resp, nil
}

// GetOrder returns one order of tableID.
func (s *OrderService) GetOrder(ctx context.Context, tableID int16, orderID int32) (*models.TableOrdersResponse, error) {
	utils.InfoLogger.WithFields(logrus.Fields{"table_id": tableID, "order_id": orderID}).Info("[get specific] order requested")

	if err := ValidateTableID(tableID, s.maxTables); err != nil {
		return nil, err
	}
	if err := ValidateOrderID(orderID); err != nil {
		return nil, err
	}
	orders, err := s.store.GetSpecificOrder(ctx, tableID, orderID)
	if err != nil {
		return nil, err
	}
	resp := models.OKTableOrders(tableID, orders)
	return &resp, nil
}

// RemoveOrder deletes one order and returns the table's remaining orders.
func (s *OrderService) RemoveOrder(ctx context.Context, tableID int16, orderID int32) (*models.TableOrdersResponse, error) {
	utils.InfoLogger.WithFields(logrus.Fields{"table_id": tableID, "order_id": orderID}).Info("[delete] order removal requested")

	if err := ValidateTableID(tableID, s.maxTables); err != nil {
		return nil, err
	}
	if err := ValidateOrderID(orderID); err != nil {
		return nil, err
	}
	if err := s.store.RemoveOrder(ctx, tableID, orderID); err != nil {
		return nil, err
	}
	orders, err := s.store.GetTableOrders(ctx, tableID)
	if err != nil {
		return nil, err
	}

	removed := orderID
	s.notify(ctx, models.TableOrdersEvent{Event: models.EventOrderRemoved, TableID: tableID, OrderID: &removed, Orders: orders})
	resp := models.OKTableOrders(tableID, orders)
	return &resp, nil
}

// notify delivers event to every notifier. Delivery problems are logged only.
func (s *OrderService) notify(ctx context.Context, event models.TableOrdersEvent) {
	if len(s.notifiers) == 0 {
		return
	}
	event.OccurredAt = s.now().UTC()
	for _, n := range s.notifiers {
		if err := n.NotifyTableOrders(ctx, event); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"table_id": event.TableID,
				"event":    event.Event,
			}).Warnf("order notification failed: %v", err)
		}
	}
}
