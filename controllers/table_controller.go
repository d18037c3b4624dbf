package controllers

import (
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/gin-gonic/gin"
)

type TableController struct {
	Repo *repository.TableRepository
}

func NewTableController(repo *repository.TableRepository) *TableController {
	return &TableController{Repo: repo}
}

// List คืน floor board: โต๊ะไหนว่าง โต๊ะไหนมี order อยู่
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.Repo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, tables)
}

type createTableReq struct {
	Number  int    `json:"number" binding:"required,min=1"`
	Section string `json:"section"`
	Seats   int    `json:"seats" binding:"omitempty,min=1"`
}

func (tc *TableController) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Seats == 0 {
		req.Seats = 4
	}

	t := entity.RestaurantTable{Number: req.Number, Section: req.Section, Seats: req.Seats}
	if err := tc.Repo.Create(&t); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, t)
}
