package controllers

import (
	"strconv"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/gin-gonic/gin"
)

type ForecastController struct {
	Service *services.ForecastService
}

func NewForecastController(service *services.ForecastService) *ForecastController {
	return &ForecastController{Service: service}
}

func (fc *ForecastController) Next7Days(c *gin.Context) {
	forecast, err := fc.Service.Next7Days()
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, forecast)
}

func (fc *ForecastController) Accuracy(c *gin.Context) {
	window, _ := strconv.Atoi(c.DefaultQuery("window", "14"))
	acc, err := fc.Service.Accuracy(window)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, acc)
}
