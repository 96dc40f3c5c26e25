package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/services"
	"github.com/yeremiapane/table-orders/utils"
)

type OrderController struct {
	Service           *services.OrderService
	ExposeErrorDetail bool
}

func NewOrderController(service *services.OrderService, exposeErrorDetail bool) *OrderController {
	return &OrderController{Service: service, ExposeErrorDetail: exposeErrorDetail}
}

// AddOrders -> POST /api/v1/tables/:table_id/orders
func (oc *OrderController) AddOrders(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		utils.RespondError(c, err, oc.ExposeErrorDetail)
		return
	}

	var body models.TableOrdersRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, utils.NewInvalidJSONError(err), oc.ExposeErrorDetail)
		return
	}

	resp, err := oc.Service.AddOrders(c.Request.Context(), tableID, body)
	oc.respond(c, resp, err)
}

// GetTableOrders -> GET /api/v1/tables/:table_id/orders
func (oc *OrderController) GetTableOrders(c *gin.Context) {
	tableID, err := parseTableID(c)
	if err != nil {
		utils.RespondError(c, err, oc.ExposeErrorDetail)
		return
	}

	resp, err := oc.Service.ListTableOrders(c.Request.Context(), tableID)
	oc.respond(c, resp, err)
}

// GetOrderByID -> GET /api/v1/tables/:table_id/orders/:order_id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	tableID, orderID, err := parseTableAndOrderID(c)
	if err != nil {
		utils.RespondError(c, err, oc.ExposeErrorDetail)
		return
	}

	resp, err := oc.Service.GetOrder(c.Request.Context(), tableID, orderID)
	oc.respond(c, resp, err)
}

// DeleteOrder -> DELETE /api/v1/tables/:table_id/orders/:order_id
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	tableID, orderID, err := parseTableAndOrderID(c)
	if err != nil {
		utils.RespondError(c, err, oc.ExposeErrorDetail)
		return
	}

	resp, err := oc.Service.RemoveOrder(c.Request.Context(), tableID, orderID)
	oc.respond(c, resp, err)
}

func (oc *OrderController) respond(c *gin.Context, resp *models.TableOrdersResponse, err error) {
	if err != nil {
		utils.RespondError(c, err, oc.ExposeErrorDetail)
		return
	}
	utils.RespondJSON(c, http.StatusOK, resp)
}

// parseTableID reads :table_id as a signed 16-bit integer. Range checks are the service's job.
func parseTableID(c *gin.Context) (int16, error) {
	id, err := strconv.ParseInt(c.Param("table_id"), 10, 16)
	if err != nil {
		return 0, utils.NewInvalidPathError(err)
	}
	return int16(id), nil
}

func parseTableAndOrderID(c *gin.Context) (int16, int32, error) {
	tableID, err := parseTableID(c)
	if err != nil {
		return 0, 0, err
	}
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 32)
	if err != nil {
		return 0, 0, utils.NewInvalidPathError(err)
	}
	return tableID, int32(orderID), nil
}
