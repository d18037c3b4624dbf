package controllers

import (
	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/gin-gonic/gin"
)

type KitchenController struct {
	Service *services.OrderService
}

func NewKitchenController(service *services.OrderService) *KitchenController {
	return &KitchenController{Service: service}
}

// Queue คืน item ที่รอครัว เรียง FIFO
func (kc *KitchenController) Queue(c *gin.Context) {
	rows, err := kc.Service.KitchenQueue()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

func (kc *KitchenController) WaitTime(c *gin.Context) {
	minutes, err := kc.Service.EstimatedWaitTime()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"estimatedWaitMinutes": minutes})
}
