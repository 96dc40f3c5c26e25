package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/utils"
)

// GormOrderStore persists orders through gorm. Every failure it returns is a
// *utils.APIError of kind storage or order-not-found.
type GormOrderStore struct {
	DB *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{DB: db}
}

// AddTableOrders inserts all items as one batch in a single transaction.
// The store assigns order ids; the ids carried by items are ignored.
func (s *GormOrderStore) AddTableOrders(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]models.OrderItem, len(items))
	copy(rows, items)
	for i := range rows {
		rows[i].OrderID = 0
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return translateError("could not insert orders", err)
	}
	return nil
}

// GetTableOrders lists a table's orders by ascending order id. A table without
// orders yields an empty slice.
func (s *GormOrderStore) GetTableOrders(ctx context.Context, tableID int16) ([]models.OrderItem, error) {
	orders := make([]models.OrderItem, 0)
	err := s.DB.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("order_id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, translateError("could not query table orders", err)
	}
	return normalize(orders), nil
}

// GetSpecificOrder returns the matching order as a single-element slice, or
// ErrOrderNotFound when (tableID, orderID) matches nothing.
func (s *GormOrderStore) GetSpecificOrder(ctx context.Context, tableID int16, orderID int32) ([]models.OrderItem, error) {
	orders := make([]models.OrderItem, 0, 1)
	err := s.DB.WithContext(ctx).
		Where("table_id = ? AND order_id = ?", tableID, orderID).
		Limit(1).
		Find(&orders).Error
	if err != nil {
		return nil, translateError("could not query specific table order", err)
	}
	if len(orders) == 0 {
		return nil, utils.ErrOrderNotFound
	}
	return normalize(orders), nil
}

// RemoveOrder deletes one order. Existence is decided by the affected row count
// of the delete itself, so of two racing deletes only one succeeds.
func (s *GormOrderStore) RemoveOrder(ctx context.Context, tableID int16, orderID int32) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("table_id = ? AND order_id = ?", tableID, orderID).Delete(&models.OrderItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		return translateError("could not delete order", err)
	}
	return nil
}

// Ping checks that the database answers.
func (s *GormOrderStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return translateError("could not access connection pool", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return translateError("database is unreachable", err)
	}
	return nil
}

// translateError folds driver and gorm errors into the domain error set.
func translateError(reason string, err error) error {
	if errors.Is(err, utils.ErrOrderNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrOrderNotFound
	}

	fields := logrus.Fields{"reason": reason}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields["sqlstate"] = pgErr.Code
		fields["constraint"] = pgErr.ConstraintName
	}
	utils.ErrorLogger.WithFields(fields).Errorf("storage failure: %v", err)

	return utils.NewStorageError(reason, err)
}

// normalize reports timestamps in UTC whatever zone the driver returned.
func normalize(orders []models.OrderItem) []models.OrderItem {
	for i := range orders {
		orders[i].CreationTime = orders[i].CreationTime.UTC()
		orders[i].EstimatedArrivalTime = orders[i].EstimatedArrivalTime.UTC()
	}
	return orders
}
