package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/evinas93/Fuji-PoS-sub001/utils"
	"github.com/gin-gonic/gin"
)

type ReceiptController struct {
	Service *services.ReceiptService
}

func NewReceiptController(service *services.ReceiptService) *ReceiptController {
	return &ReceiptController{Service: service}
}

func (rc *ReceiptController) List(c *gin.Context) {
	var f repository.ReceiptFilter
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
	if v := c.Query("orderNumber"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.OrderNumber = &n
		}
	}
	f.OrderType = c.Query("type")
	f.PaymentMethod = c.Query("paymentMethod")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := rc.Service.List(f, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

func (rc *ReceiptController) Get(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	receipt, err := rc.Service.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, receipt)
}

// Thermal คืนข้อความ fixed-width สำหรับเครื่องพิมพ์ใบเสร็จ
func (rc *ReceiptController) Thermal(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	receipt, err := rc.Service.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.String(http.StatusOK, services.FormatThermal(receipt))
}

func (rc *ReceiptController) LogPrint(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	// ตรวจว่าใบเสร็จมีจริงก่อน log
	if _, err := rc.Service.Get(id); err != nil {
		serviceError(c, err)
		return
	}
	if err := rc.Service.LogPrint(id, utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"logged": true})
}
