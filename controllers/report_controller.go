package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{Service: service}
}

func (rc *ReportController) Daily(c *gin.Context) {
	date := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			resp.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		date = t
	}
	row, err := rc.Service.Daily(date)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, row)
}

func yearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		resp.BadRequest(c, "invalid year")
		return 0, 0, false
	}
	m, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || m < 1 || m > 12 {
		resp.BadRequest(c, "invalid month")
		return 0, 0, false
	}
	return year, time.Month(m), true
}

func (rc *ReportController) Monthly(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	report, err := rc.Service.Monthly(year, month)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, report)
}

func (rc *ReportController) GrandTotals(c *gin.Context) {
	report, err := rc.Service.GrandTotals()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, report)
}

func (rc *ReportController) SnapshotDaily(c *gin.Context) {
	date := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			resp.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		date = t
	}
	ds, err := rc.Service.SnapshotDaily(date)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ds)
}

func attach(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (rc *ReportController) ExportMonthly(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	name, f, err := rc.Service.ExportMonthlyXLSX(year, month)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	attach(c, name)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		resp.ServerError(c, err)
	}
}

func (rc *ReportController) ExportGrand(c *gin.Context) {
	name, f, err := rc.Service.ExportGrandXLSX()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	attach(c, name)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		resp.ServerError(c, err)
	}
}

func (rc *ReportController) ExportCSV(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	name, data, err := rc.Service.ExportCSV(year, month)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	attach(c, name)
	c.Data(http.StatusOK, "text/csv", data)
}
