package handler

import (
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/model/requestresponse"
	"food-inventory/internal/ports"
	"food-inventory/internal/security"
	pkgerrors "food-inventory/pkg/errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// accessRule : роли для чтения списка, чтения одной записи и изменения.
// nil означает, что операция для сущности не публикуется
type accessRule struct {
	list  []string
	get   []string
	write []string
}

var (
	anyUser   = []string{model.RoleAdmin, model.RoleUser}
	adminOnly = []string{model.RoleAdmin}
)

// entityAccess : таблица доступа к сущностям склада
var entityAccess = map[model.EntityKind]accessRule{
	model.KindCategory:   {list: anyUser, get: adminOnly, write: adminOnly},
	model.KindProduct:    {list: anyUser, get: anyUser, write: adminOnly},
	model.KindStock:      {list: anyUser, get: anyUser, write: anyUser},
	model.KindHistorical: {list: adminOnly},
}

// entityKinds : порядок монтирования маршрутов
var entityKinds = []model.EntityKind{model.KindCategory, model.KindProduct, model.KindStock, model.KindHistorical}

type entityEndpoints struct {
	list   http.HandlerFunc
	get    http.HandlerFunc
	create http.HandlerFunc
	update http.HandlerFunc
	remove http.HandlerFunc
	extra  func(r chi.Router)
}

type InventoryHandler struct {
	inventoryService ports.InventoryService
}

func NewInventoryHandler(inventoryService ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) endpoints(kind model.EntityKind) entityEndpoints {
	switch kind {
	case model.KindCategory:
		return entityEndpoints{
			list: h.ListCategories, get: h.GetCategory,
			create: h.CreateCategory, update: h.UpdateCategory, remove: h.DeleteCategory,
		}
	case model.KindProduct:
		return entityEndpoints{
			list: h.ListProducts, get: h.GetProduct,
			create: h.CreateProduct, update: h.UpdateProduct, remove: h.DeleteProduct,
			extra: func(r chi.Router) {
				r.With(security.RequireRoles(entityAccess[model.KindProduct].list...)).
					Get("/by-categories", h.ProductsByCategoryIDs)
			},
		}
	case model.KindStock:
		return entityEndpoints{
			list: h.ListStocks, get: h.GetStock,
			create: h.AddStocks, update: h.UpdateStock,
		}
	case model.KindHistorical:
		return entityEndpoints{list: h.ListHistoricals}
	}
	return entityEndpoints{}
}

// Mount : маршруты /{kind} и /{kind}/{id} для каждой сущности склада с проверкой ролей по таблице
func (h *InventoryHandler) Mount(r chi.Router) {
	for _, kind := range entityKinds {
		rule := entityAccess[kind]
		ep := h.endpoints(kind)

		r.Route("/"+string(kind), func(r chi.Router) {
			if ep.extra != nil {
				ep.extra(r)
			}
			if ep.list != nil && rule.list != nil {
				r.With(security.RequireRoles(rule.list...)).Get("/", ep.list)
			}
			if ep.get != nil && rule.get != nil {
				r.With(security.RequireRoles(rule.get...)).Get("/{id}", ep.get)
			}
			if rule.write == nil {
				return
			}
			write := security.RequireRoles(rule.write...)
			if ep.create != nil {
				r.With(write).Post("/", ep.create)
			}
			if ep.update != nil {
				r.With(write).Put("/{id}", ep.update)
			}
			if ep.remove != nil {
				r.With(write).Delete("/{id}", ep.remove)
			}
		})
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		sendErrorResponse(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func respondItem(w http.ResponseWriter, status int, item interface{}, err error) {
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, status, requestresponse.ItemResponse{Response: item})
}

func respondList(w http.ResponseWriter, items interface{}, err error) {
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, requestresponse.ListResponse{Response: items})
}

// Категории

// ListCategories godoc
// @Summary Список категорий с количеством продуктов
// @Tags Inventory
// @Produce json
// @Success 200 {object} requestresponse.ListResponse
// @Router /api/categories [get]
// @Security BearerAuth
func (h *InventoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventoryService.ListCategories(r.Context())
	respondList(w, categories, err)
}

// GetCategory godoc
// @Summary Категория по id
// @Tags Inventory
// @Produce json
// @Param id path int true "id категории"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/categories/{id} [get]
// @Security BearerAuth
func (h *InventoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	category, err := h.inventoryService.GetCategory(r.Context(), id)
	respondItem(w, http.StatusOK, category, err)
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags Inventory
// @Accept json
// @Produce json
// @Param body body requestresponse.CategoryRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/categories [post]
// @Security BearerAuth
func (h *InventoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	category, err := h.inventoryService.CreateCategory(r.Context(), &model.Category{Name: req.Name, Description: req.Description})
	respondItem(w, http.StatusCreated, category, err)
}

// UpdateCategory godoc
// @Summary Изменение категории
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "id категории"
// @Param body body requestresponse.CategoryRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/categories/{id} [put]
// @Security BearerAuth
func (h *InventoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req requestresponse.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	category := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	err := h.inventoryService.UpdateCategory(r.Context(), category)
	respondItem(w, http.StatusOK, category, err)
}

// DeleteCategory godoc
// @Summary Удаление категории
// @Tags Inventory
// @Param id path int true "id категории"
// @Success 204
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/categories/{id} [delete]
// @Security BearerAuth
func (h *InventoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteCategory(r.Context(), id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Продукты

// ListProducts godoc
// @Summary Список продуктов с категорией и количеством открытых единиц
// @Tags Inventory
// @Produce json
// @Success 200 {object} requestresponse.ListResponse
// @Router /api/products [get]
// @Security BearerAuth
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.ListProducts(r.Context())
	respondList(w, products, err)
}

// GetProduct godoc
// @Summary Продукт по id
// @Tags Inventory
// @Produce json
// @Param id path int true "id продукта"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [get]
// @Security BearerAuth
func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	product, err := h.inventoryService.GetProduct(r.Context(), id)
	respondItem(w, http.StatusOK, product, err)
}

// ProductsByCategoryIDs godoc
// @Summary Продукты нескольких категорий
// @Tags Inventory
// @Produce json
// @Param ids query string true "id категорий через запятую" example(1,2)
// @Success 200 {object} requestresponse.ListResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/products/by-categories [get]
// @Security BearerAuth
func (h *InventoryHandler) ProductsByCategoryIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	products, err := h.inventoryService.ProductsByCategoryIDs(r.Context(), ids)
	respondList(w, products, err)
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func productFromRequest(id int64, req requestresponse.ProductRequest) *model.Product {
	return &model.Product{
		ID:                   id,
		Name:                 req.Name,
		Description:          req.Description,
		DurationConservation: req.DurationConservation,
		CategoryID:           req.CategoryID,
	}
}

// CreateProduct godoc
// @Summary Создание продукта
// @Tags Inventory
// @Accept json
// @Produce json
// @Param body body requestresponse.ProductRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/products [post]
// @Security BearerAuth
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	product, err := h.inventoryService.CreateProduct(r.Context(), productFromRequest(0, req))
	respondItem(w, http.StatusCreated, product, err)
}

// UpdateProduct godoc
// @Summary Изменение продукта
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "id продукта"
// @Param body body requestresponse.ProductRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [put]
// @Security BearerAuth
func (h *InventoryHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req requestresponse.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	product := productFromRequest(id, req)
	err := h.inventoryService.UpdateProduct(r.Context(), product)
	respondItem(w, http.StatusOK, product, err)
}

// DeleteProduct godoc
// @Summary Удаление продукта
// @Tags Inventory
// @Param id path int true "id продукта"
// @Success 204
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/products/{id} [delete]
// @Security BearerAuth
func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteProduct(r.Context(), id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Остатки

// ListStocks godoc
// @Summary Открытые единицы со сроком годности, обратным отсчетом и историей
// @Tags Inventory
// @Produce json
// @Success 200 {object} requestresponse.ListResponse
// @Router /api/stocks [get]
// @Security BearerAuth
func (h *InventoryHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.inventoryService.ListStocks(r.Context())
	respondList(w, stocks, err)
}

// GetStock godoc
// @Summary Единица по id
// @Tags Inventory
// @Produce json
// @Param id path int true "id единицы"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/stocks/{id} [get]
// @Security BearerAuth
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	stock, err := h.inventoryService.GetStock(r.Context(), id)
	respondItem(w, http.StatusOK, stock, err)
}

// AddStocks godoc
// @Summary Открытие единиц по списку продуктов
// @Tags Inventory
// @Accept json
// @Produce json
// @Param body body requestresponse.AddStocksRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ListResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/stocks [post]
// @Security BearerAuth
func (h *InventoryHandler) AddStocks(w http.ResponseWriter, r *http.Request) {
	principal, err := security.GetPrincipalFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req requestresponse.AddStocksRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	stocks, err := h.inventoryService.AddStocks(r.Context(), req.ProductIDs, principal.UserName)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, requestresponse.ListResponse{Response: stocks})
}

// UpdateStock godoc
// @Summary Смена статуса единицы
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "id единицы"
// @Param body body requestresponse.UpdateStockRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/stocks/{id} [put]
// @Security BearerAuth
func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	principal, err := security.GetPrincipalFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req requestresponse.UpdateStockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if !req.Status.Valid() {
		sendServiceError(w, fmt.Errorf("status %d: %w", int(req.Status), pkgerrors.ErrInvalidInput))
		return
	}

	stock, err := h.inventoryService.UpdateStock(r.Context(), id, req.Status, principal.UserName)
	respondItem(w, http.StatusOK, stock, err)
}

// ListHistoricals godoc
// @Summary Журнал изменений единиц
// @Tags Inventory
// @Produce json
// @Success 200 {object} requestresponse.ListResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/historicals [get]
// @Security BearerAuth
func (h *InventoryHandler) ListHistoricals(w http.ResponseWriter, r *http.Request) {
	historicals, err := h.inventoryService.ListHistoricals(r.Context())
	respondList(w, historicals, err)
}
