package requestresponse

import "food-inventory/internal/model"

// CategoryRequest : создание и изменение категории
type CategoryRequest struct {
	Name        string `json:"name" example:"Dairy"`
	Description string `json:"description" example:"Milk, cheese and yoghurt"`
}

// ProductRequest : создание и изменение продукта
type ProductRequest struct {
	Name                 string `json:"name" example:"Milk"`
	Description          string `json:"description" example:"Whole milk 1L"`
	DurationConservation int    `json:"durationConservation" example:"5"`
	CategoryID           int64  `json:"categoryId" example:"1"`
}

// ProductsByCategoriesRequest : продукты нескольких категорий
type ProductsByCategoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds" example:"1,2"`
}

// AddStocksRequest : по одной открытой единице на каждый продукт
type AddStocksRequest struct {
	ProductIDs []int64 `json:"productIds" example:"3,4"`
}

// UpdateStockRequest : новый статус (0 InProgress, 1 Expired, 2 Error, 3 Consumed)
type UpdateStockRequest struct {
	Status model.StockStatus `json:"status" example:"3"`
}

// ItemResponse : одна сущность склада
type ItemResponse struct {
	Response interface{} `json:"response"`
}

// ListResponse : список сущностей склада
type ListResponse struct {
	Response interface{} `json:"response"`
}
