package controllers

import (
	"net/http"
	"strconv"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/evinas93/Fuji-PoS-sub001/utils"
	"github.com/gin-gonic/gin"
)

type ImportController struct {
	Service *services.ImportService
}

func NewImportController(service *services.ImportService) *ImportController {
	return &ImportController{Service: service}
}

func (ic *ImportController) Template(c *gin.Context) {
	t, err := ic.Service.Template(c.Param("type"))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	c.String(http.StatusOK, t)
}

// Upload: multipart form กับ field `type` และ `file`
func (ic *ImportController) Upload(c *gin.Context) {
	typ := c.PostForm("type")
	if !services.ValidImportType(typ) {
		resp.BadRequest(c, "unknown import type")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	defer f.Close()

	actor := utils.CurrentUserID(c)
	result, err := ic.Service.Import(typ, f, fileHeader.Filename, actor)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if !result.Success {
		// batch โดน validator ปัดตก → controller เป็นคน log
		ic.Service.LogRejected(result, actor)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "data": result})
		return
	}
	resp.OK(c, result)
}

func (ic *ImportController) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := ic.Service.History(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}
