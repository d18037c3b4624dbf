package controllers

import (
	"strconv"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/evinas93/Fuji-PoS-sub001/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.Created(c, order)
}

func (oc *OrderController) List(c *gin.Context) {
	var f repository.OrderFilter
	f.Status = c.Query("status")
	f.OrderType = c.Query("type")
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			f.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			f.To = &t
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := oc.Service.List(f, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Service.Detail(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

type addItemsReq struct {
	Items []services.OrderItemIn `json:"items" binding:"required,min=1"`
}

func (oc *OrderController) AddItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.AddItems(id, req.Items)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	order, err := oc.Service.RemoveItem(id, itemID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) SendToKitchen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Service.SendToKitchen(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.UpdateOrderStatus(id, req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Service.UpdateItemStatus(id, itemID, req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, item)
}

type reasonReq struct {
	Reason string `json:"reason" binding:"required"`
}

func (oc *OrderController) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "a reason is required")
		return
	}

	order, err := oc.Service.Cancel(id, req.Reason, utils.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

type completeReq struct {
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash credit"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
}

func (oc *OrderController) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Complete(id, req.PaymentMethod, req.AmountPaid)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) Void(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reasonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "a reason is required")
		return
	}

	order, err := oc.Service.Void(id, req.Reason, utils.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

type splitReq struct {
	Groups [][]uint `json:"groups" binding:"required,min=1"`
}

func (oc *OrderController) Split(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req splitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := oc.Service.SplitOrder(id, req.Groups, utils.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, result)
}

type transferReq struct {
	TableID uint `json:"tableId" binding:"required"`
}

func (oc *OrderController) Transfer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req transferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.TransferTable(id, req.TableID)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

type discountReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (oc *OrderController) SetDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req discountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.SetDiscount(id, req.Amount, utils.CurrentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) Estimate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	minutes, err := oc.Service.OrderEstimate(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, gin.H{"estimatedMinutes": minutes})
}
