package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

const pageSize = 10

// SagaState names the steps of one order-creation run. Steps commit in this
// fixed order; a failure aborts the run where it stands.
type SagaState string

const (
	SagaStart             SagaState = "start"
	SagaAddressValidated  SagaState = "address_validated"
	SagaOrderPersisted    SagaState = "order_persisted"
	SagaInventoryDeducted SagaState = "inventory_deducted"
	SagaBalanceDeducted   SagaState = "balance_deducted"
	SagaEventPublished    SagaState = "event_published"
	SagaAborted           SagaState = "aborted"
)

// OrderService coordinates order creation across the account, goods and
// logistics collaborators, and assembles the paged order-detail view. It
// owns no storage besides the order records themselves.
//
// Known consistency gap, inherited deliberately: once a step has committed
// (order persisted, inventory deducted, balance deducted), a later step's
// failure aborts the saga WITHOUT compensating the committed steps. The
// order row, the stock deduction and the balance deduction stay in place
// and the abort is logged with the state it happened in.
type OrderService struct {
	orders    port.OrderRepository
	goods     port.GoodsResolver
	balances  port.BalanceLedger
	addresses port.AddressDirectory
	publisher port.LogisticsPublisher
	topic     string
	logger    *slog.Logger
}

func NewOrderService(
	orders port.OrderRepository,
	goods port.GoodsResolver,
	balances port.BalanceLedger,
	addresses port.AddressDirectory,
	publisher port.LogisticsPublisher,
	topic string,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		goods:     goods,
		balances:  balances,
		addresses: addresses,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// SagaError reports where an order-creation run aborted.
type SagaError struct {
	SagaID string
	// State is the last state the saga reached before aborting. Any state at
	// or past order_persisted means committed effects were left in place.
	State SagaState
	Err   error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("saga %s aborted after %s: %v", e.SagaID, e.State, e.Err)
}

func (e *SagaError) Unwrap() error { return e.Err }

// CreateOrder runs the order-creation saga:
// address validation → order persistence → inventory deduction → balance
// deduction → logistics event. Pricing reads authoritative storage, never
// the display cache. Returns the new order id.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, info domain.OrderInfo) (domain.TableID, error) {
	if info.AddressID <= 0 || len(info.Items) == 0 {
		return domain.TableID{}, domain.ErrInvalidRequest
	}

	sagaID := uuid.New().String()
	state := SagaStart
	s.logger.Info("create order saga start", "sagaId", sagaID, "userId", userID, "addressId", info.AddressID)

	// Address validation has no side effects; a miss aborts cleanly.
	addresses, err := s.addresses.AddressesByIDs(ctx, []int64{info.AddressID})
	if err != nil {
		return domain.TableID{}, s.abort(sagaID, state, fmt.Errorf("resolve address %d: %w", info.AddressID, err))
	}
	if len(addresses) == 0 {
		return domain.TableID{}, s.abort(sagaID, state, domain.ErrAddressNotFound)
	}
	state = SagaAddressValidated

	// The order is persisted before inventory and balance effects so they
	// can reference its id.
	order, err := domain.NewOrder(userID, info.AddressID, info.Items)
	if err != nil {
		return domain.TableID{}, s.abort(sagaID, state, fmt.Errorf("encode order items: %w", err))
	}
	orderID, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.TableID{}, s.abort(sagaID, state, fmt.Errorf("persist order: %w", err))
	}
	state = SagaOrderPersisted
	s.logger.Info("order persisted", "sagaId", sagaID, "orderId", orderID)

	if err := s.goods.DeductInventory(ctx, info.Items); err != nil {
		return domain.TableID{}, s.abort(sagaID, state, err)
	}
	state = SagaInventoryDeducted

	total, err := s.totalPrice(ctx, info.Items)
	if err != nil {
		return domain.TableID{}, s.abort(sagaID, state, err)
	}
	if _, err := s.balances.Deduct(ctx, userID, total); err != nil {
		return domain.TableID{}, s.abort(sagaID, state, err)
	}
	state = SagaBalanceDeducted
	s.logger.Info("balance deducted", "sagaId", sagaID, "orderId", orderID, "total", total)

	message := domain.LogisticsMessage{
		UserID:    userID,
		OrderID:   orderID,
		AddressID: info.AddressID,
		ExtraInfo: nil,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return domain.TableID{}, s.abort(sagaID, state, fmt.Errorf("encode logistics message: %w", err))
	}
	if err := s.publisher.Publish(ctx, s.topic, payload); err != nil {
		return domain.TableID{}, s.abort(sagaID, state, fmt.Errorf("%w: %w", domain.ErrLogisticsPublish, err))
	}
	state = SagaEventPublished
	s.logger.Info("create order saga done", "sagaId", sagaID, "orderId", orderID, "state", state)

	return domain.TableID{IDs: []int64{orderID}}, nil
}

// totalPrice resolves prices from authoritative storage and sums price×count.
func (s *OrderService) totalPrice(ctx context.Context, items []domain.OrderItem) (int64, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.GoodsID)
	}
	summaries, err := s.goods.AuthoritativeSummaries(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("resolve goods prices: %w", err)
	}

	var total int64
	for _, item := range items {
		summary, ok := summaries[item.GoodsID]
		if !ok {
			return 0, domain.ErrGoodsNotFound
		}
		total += summary.Price * int64(item.Count)
	}
	if total <= 0 {
		return 0, domain.ErrInvalidRequest
	}
	return total, nil
}

func (s *OrderService) abort(sagaID string, at SagaState, err error) error {
	if at == SagaOrderPersisted || at == SagaInventoryDeducted || at == SagaBalanceDeducted {
		s.logger.Error("saga aborted with committed steps left in place, no compensation runs",
			"sagaId", sagaID, "state", at, "err", err)
	} else {
		s.logger.Warn("saga aborted", "sagaId", sagaID, "state", at, "err", err)
	}
	return &SagaError{SagaID: sagaID, State: at, Err: err}
}

// PageOrderDetails returns one page of the user's orders, newest first, each
// joined against goods summaries (cache-tolerant path) and address records.
// A line item or address that no longer resolves renders as the id -1
// sentinel instead of failing the page.
func (s *OrderService) PageOrderDetails(ctx context.Context, userID int64, page int) (domain.OrderDetailPage, error) {
	if page < 1 {
		page = 1
	}

	orders, total, err := s.orders.PageByUser(ctx, userID, page, pageSize)
	if err != nil {
		return domain.OrderDetailPage{}, fmt.Errorf("page orders for user %d: %w", userID, err)
	}
	if len(orders) == 0 {
		return domain.OrderDetailPage{Orders: []domain.OrderDetailView{}, HasMore: false}, nil
	}

	itemsByOrder := make(map[int64][]domain.OrderItem, len(orders))
	var goodsIDs, addressIDs []int64
	for _, order := range orders {
		items, err := order.Items()
		if err != nil {
			s.logger.Error("undecodable order detail", "orderId", order.ID, "err", err)
			items = nil
		}
		itemsByOrder[order.ID] = items
		for _, item := range items {
			goodsIDs = append(goodsIDs, item.GoodsID)
		}
		addressIDs = append(addressIDs, order.AddressID)
	}

	summaries, err := s.goods.Summaries(ctx, goodsIDs)
	if err != nil {
		return domain.OrderDetailPage{}, fmt.Errorf("resolve goods for order page: %w", err)
	}
	addresses, err := s.addresses.AddressesByIDs(ctx, addressIDs)
	if err != nil {
		return domain.OrderDetailPage{}, fmt.Errorf("resolve addresses for order page: %w", err)
	}
	addressByID := make(map[int64]domain.Address, len(addresses))
	for _, a := range addresses {
		addressByID[a.ID] = a
	}

	views := make([]domain.OrderDetailView, 0, len(orders))
	for _, order := range orders {
		view := domain.OrderDetailView{ID: order.ID}

		if address, ok := addressByID[order.AddressID]; ok {
			view.Address = address.ToView()
		} else {
			view.Address = domain.UnknownAddressView()
		}

		items := itemsByOrder[order.ID]
		view.Goods = make([]domain.OrderGoodsView, 0, len(items))
		for _, item := range items {
			summary, ok := summaries[item.GoodsID]
			if !ok {
				summary = domain.UnknownGoodsSummary()
			}
			view.Goods = append(view.Goods, domain.OrderGoodsView{Goods: summary, Count: item.Count})
		}

		views = append(views, view)
	}

	return domain.OrderDetailPage{
		Orders:  views,
		HasMore: totalPages(total) > page,
	}, nil
}

func totalPages(total int64) int {
	return int((total + pageSize - 1) / pageSize)
}
