package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/core/service"
)

// userIDHeader is set by the upstream authentication layer. The handlers
// turn it into an explicit argument; no ambient user state exists below
// this layer.
const userIDHeader = "X-User-Id"

const userIDKey = "userID"

type response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type HTTPHandler struct {
	orders    *service.OrderService
	goods     *service.GoodsService
	balances  *service.BalanceService
	addresses *service.AddressService
	logger    *slog.Logger
}

func NewHTTPHandler(
	orders *service.OrderService,
	goods *service.GoodsService,
	balances *service.BalanceService,
	addresses *service.AddressService,
	logger *slog.Logger,
) *HTTPHandler {
	return &HTTPHandler{
		orders:    orders,
		goods:     goods,
		balances:  balances,
		addresses: addresses,
		logger:    logger,
	}
}

func (h *HTTPHandler) Register(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")

	// Goods operations are not user-scoped; they are also called
	// service-to-service without an authenticated user.
	api.PUT("/goods/deduct", h.DeductInventory)
	api.POST("/goods/simple", h.GoodsSummaries)
	api.POST("/goods/authoritative", h.AuthoritativeGoodsSummaries)
	api.POST("/goods/info", h.GoodsByIDs)
	api.GET("/goods", h.PageSimpleGoods)

	api.POST("/address/ids", h.AddressesByIDs)

	user := api.Group("", h.requireUser)
	user.POST("/order", h.CreateOrder)
	user.GET("/order", h.PageOrderDetails)

	user.GET("/balance", h.GetBalance)
	user.PUT("/balance/deduct", h.DeductBalance)

	user.POST("/address", h.CreateAddresses)
	user.GET("/address", h.AddressesByUser)
}

// requireUser rejects requests without an authenticated user id and makes
// the id available to the handlers.
func (h *HTTPHandler) requireUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.GetHeader(userIDHeader), 10, 64)
	if err != nil || userID <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response{
			Code:    http.StatusUnauthorized,
			Message: "missing or invalid user identity",
		})
		return
	}
	c.Set(userIDKey, userID)
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func (h *HTTPHandler) CreateOrder(c *gin.Context) {
	var info domain.OrderInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		h.fail(c, domain.ErrInvalidRequest)
		return
	}

	tableID, err := h.orders.CreateOrder(c.Request.Context(), currentUserID(c), info)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, tableID)
}

func (h *HTTPHandler) PageOrderDetails(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	details, err := h.orders.PageOrderDetails(c.Request.Context(), currentUserID(c), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, details)
}

func (h *HTTPHandler) DeductInventory(c *gin.Context) {
	var items []domain.OrderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		h.fail(c, domain.ErrInvalidRequest)
		return
	}

	if err := h.goods.DeductInventory(c.Request.Context(), items); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, true)
}

func (h *HTTPHandler) GoodsSummaries(c *gin.Context) {
	ids, ok := h.bindTableID(c)
	if !ok {
		return
	}

	summaries, err := h.goods.Summaries(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, summaryList(ids, summaries))
}

func (h *HTTPHandler) AuthoritativeGoodsSummaries(c *gin.Context) {
	ids, ok := h.bindTableID(c)
	if !ok {
		return
	}

	summaries, err := h.goods.AuthoritativeSummaries(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, summaryList(ids, summaries))
}

func (h *HTTPHandler) GoodsByIDs(c *gin.Context) {
	ids, ok := h.bindTableID(c)
	if !ok {
		return
	}

	goods, err := h.goods.GoodsByIDs(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, goods)
}

func (h *HTTPHandler) PageSimpleGoods(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	goodsPage, err := h.goods.PageSimpleGoods(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, goodsPage)
}

func (h *HTTPHandler) GetBalance(c *gin.Context) {
	balance, err := h.balances.GetOrInit(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, balance)
}

func (h *HTTPHandler) DeductBalance(c *gin.Context) {
	var body struct {
		Balance int64 `json:"balance"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, domain.ErrInvalidRequest)
		return
	}

	balance, err := h.balances.Deduct(c.Request.Context(), currentUserID(c), body.Balance)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, balance)
}

func (h *HTTPHandler) CreateAddresses(c *gin.Context) {
	var items []domain.AddressItem
	if err := c.ShouldBindJSON(&items); err != nil {
		h.fail(c, domain.ErrInvalidRequest)
		return
	}

	tableID, err := h.addresses.CreateAddresses(c.Request.Context(), currentUserID(c), items)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, tableID)
}

func (h *HTTPHandler) AddressesByUser(c *gin.Context) {
	addresses, err := h.addresses.AddressesByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, addresses)
}

func (h *HTTPHandler) AddressesByIDs(c *gin.Context) {
	ids, ok := h.bindTableID(c)
	if !ok {
		return
	}

	addresses, err := h.addresses.AddressesByIDs(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, addresses)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) bindTableID(c *gin.Context) ([]int64, bool) {
	var tableID domain.TableID
	if err := c.ShouldBindJSON(&tableID); err != nil || len(tableID.IDs) == 0 {
		h.fail(c, domain.ErrInvalidRequest)
		return nil, false
	}
	return tableID.IDs, true
}

func (h *HTTPHandler) ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response{Code: 0, Message: "success", Data: data})
}

func (h *HTTPHandler) fail(c *gin.Context, err error) {
	var bizErr *domain.BizError
	if errors.As(err, &bizErr) {
		c.JSON(statusFor(bizErr), response{Code: bizErr.Code, Message: bizErr.Message})
		return
	}

	h.logger.Error("request failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, response{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func statusFor(err *domain.BizError) int {
	switch err {
	case domain.ErrAddressNotFound, domain.ErrGoodsNotFound:
		return http.StatusNotFound
	case domain.ErrBalanceNotEnough, domain.ErrInventoryNotEnough:
		return http.StatusConflict
	case domain.ErrInvalidRequest, domain.ErrInvalidGoodsCount,
		domain.ErrGoodsCountMismatch, domain.ErrDuplicateGoods:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// summaryList orders the resolved summaries by the requested ids, dropping
// ids that did not resolve.
func summaryList(ids []int64, summaries map[int64]domain.GoodsSummary) []domain.GoodsSummary {
	out := make([]domain.GoodsSummary, 0, len(summaries))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := summaries[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
