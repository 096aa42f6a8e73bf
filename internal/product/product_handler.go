package product

import (
	"net/http"
	"strconv"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"
	producterrors "go-couture-api/internal/product/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("product.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.handler")
	}
	return &Handler{service: s, logger: l}
}

// PublicList serves GET /api/products for non-interactive consumers. It
// answers with a bare JSON array of in-stock products, newest first.
func (h *Handler) PublicList(c *gin.Context) {
	f := Filter{
		Category:    c.Query("category"),
		OnlyInStock: true,
		Sort:        SortNewest,
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}

	products, _, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("public product list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": producterrors.ErrDataUnavailable.Message})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", err.Error())
		return
	}
	q.applyDefaults()

	h.list(c, q, Filter{
		Category:     q.Category,
		OnlyInStock:  q.InStock,
		OnlyFeatured: q.Featured,
		Search:       q.Search,
		Sort:         Sort(q.Sort),
		Limit:        q.Limit,
		Page:         q.Page,
	})
}

// AdminList ignores stock and featured flags so every product is reachable.
func (h *Handler) AdminList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", err.Error())
		return
	}
	q.applyDefaults()

	h.list(c, q, Filter{
		Category: q.Category,
		Search:   q.Search,
		Sort:     Sort(q.Sort),
		Limit:    q.Limit,
		Page:     q.Page,
	})
}

func (h *Handler) list(c *gin.Context, q ListQuery, f Filter) {
	products, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, products, response.NewPaginationMeta(q.Page, q.Limit, total))
}

func (h *Handler) GetByID(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, p, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", producterrors.ErrMissingFields.Message, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, p, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", producterrors.ErrMissingFields.Message, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, p, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, nil, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, stats, nil)
}
