package services

import (
	"math"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/utils"
)

// TableIDMismatchReason is reported when item table ids disagree with each other or with the path.
const TableIDMismatchReason = "table id in json request (or path) is incorrect"

// ValidateTableID checks that tableID lies in [1, maxTables].
func ValidateTableID(tableID, maxTables int16) error {
	if !inRange(int64(tableID), int64(maxTables)) {
		utils.ErrorLogger.Warnf("out of range input value=%d range=[1,%d]", tableID, maxTables)
		return utils.ErrTableNotFound
	}
	return nil
}

// ValidateOrderID checks that orderID lies in [1, MaxInt32].
func ValidateOrderID(orderID int32) error {
	if !inRange(int64(orderID), math.MaxInt32) {
		utils.ErrorLogger.Warnf("out of range input value=%d range=[1,%d]", orderID, math.MaxInt32)
		return utils.ErrOrderNotFound
	}
	return nil
}

// ValidateTableConsistency requires a non-empty item list whose items all carry
// the same table id as the first one, and that id must equal pathTableID.
func ValidateTableConsistency(items []models.OrderItemRequest, pathTableID int16) error {
	if len(items) == 0 {
		return utils.NewBadRequest(TableIDMismatchReason)
	}
	head := items[0].Table()
	for _, item := range items[1:] {
		if item.Table() != head {
			return utils.NewBadRequest(TableIDMismatchReason)
		}
	}
	if head != pathTableID {
		return utils.NewBadRequest(TableIDMismatchReason)
	}
	return nil
}

func inRange(value, max int64) bool {
	return value >= 1 && value <= max
}
