package repository

import (
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Get(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) List(category string, onlyAvailable bool) ([]entity.MenuItem, error) {
	q := r.DB.Model(&entity.MenuItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var items []entity.MenuItem
	err := q.Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}
