package controllers

import (
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/pkg/resp"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuController struct {
	Repo *repository.MenuRepository
}

func NewMenuController(repo *repository.MenuRepository) *MenuController {
	return &MenuController{Repo: repo}
}

func (mc *MenuController) List(c *gin.Context) {
	onlyAvailable := c.Query("all") == ""
	items, err := mc.Repo.List(c.Query("category"), onlyAvailable)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

type menuItemReq struct {
	Name            string          `json:"name" binding:"required"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	PrepTimeMinutes int             `json:"prepTimeMinutes"`
}

func (mc *MenuController) Create(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Price.IsNegative() {
		resp.BadRequest(c, "price must not be negative")
		return
	}
	if req.PrepTimeMinutes <= 0 {
		req.PrepTimeMinutes = 10
	}

	m := entity.MenuItem{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Price:           req.Price,
		PrepTimeMinutes: req.PrepTimeMinutes,
		IsAvailable:     true,
	}
	if err := mc.Repo.Create(&m); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, m)
}

type menuItemPatch struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	PrepTimeMinutes *int             `json:"prepTimeMinutes"`
	IsAvailable     *bool            `json:"isAvailable"`
}

func (mc *MenuController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req menuItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			resp.BadRequest(c, "price must not be negative")
			return
		}
		updates["price"] = *req.Price
	}
	if req.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *req.PrepTimeMinutes
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	if err := mc.Repo.Update(id, updates); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := mc.Repo.Get(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	resp.OK(c, m)
}
