package service

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGoodsRepo is an in-memory GoodsRepository.
type fakeGoodsRepo struct {
	goods      map[int64]domain.Goods
	findCalls  int
	findErr    error
	deductErr  error
	deductions int
}

func newFakeGoodsRepo(goods ...domain.Goods) *fakeGoodsRepo {
	m := make(map[int64]domain.Goods, len(goods))
	for _, g := range goods {
		m[g.ID] = g
	}
	return &fakeGoodsRepo{goods: m}
}

func (f *fakeGoodsRepo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Goods, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []domain.Goods
	for _, id := range ids {
		if g, ok := f.goods[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoodsRepo) FindPage(ctx context.Context, page, size int) ([]domain.Goods, int64, error) {
	ids := make([]int64, 0, len(f.goods))
	for id := range f.goods {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	start := (page - 1) * size
	if start >= len(ids) {
		return nil, int64(len(ids)), nil
	}
	end := start + size
	if end > len(ids) {
		end = len(ids)
	}
	var out []domain.Goods
	for _, id := range ids[start:end] {
		out = append(out, f.goods[id])
	}
	return out, int64(len(ids)), nil
}

func (f *fakeGoodsRepo) DeductInventory(ctx context.Context, items []domain.OrderItem) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	for _, item := range items {
		g, ok := f.goods[item.GoodsID]
		if !ok || g.Inventory < int64(item.Count) {
			return domain.ErrInventoryNotEnough
		}
	}
	for _, item := range items {
		g := f.goods[item.GoodsID]
		g.Inventory -= int64(item.Count)
		f.goods[item.GoodsID] = g
	}
	f.deductions++
	return nil
}

// fakeGoodsCache is an in-memory GoodsCache.
type fakeGoodsCache struct {
	entries map[int64]string
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func newFakeGoodsCache() *fakeGoodsCache {
	return &fakeGoodsCache{entries: make(map[int64]string)}
}

func (f *fakeGoodsCache) MultiGet(ctx context.Context, ids []int64) (map[int64]string, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[int64]string)
	for _, id := range ids {
		if raw, ok := f.entries[id]; ok {
			out[id] = raw
		}
	}
	return out, nil
}

func (f *fakeGoodsCache) MultiSet(ctx context.Context, entries map[int64]string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	for id, raw := range entries {
		f.entries[id] = raw
	}
	return nil
}

func (f *fakeGoodsCache) warm(summaries ...domain.GoodsSummary) {
	for _, s := range summaries {
		raw, _ := domain.EncodeSummary(s)
		f.entries[s.ID] = raw
	}
}

// fakeBalanceRepo is an in-memory BalanceRepository.
type fakeBalanceRepo struct {
	byUser  map[int64]domain.Balance
	nextID  int64
	creates int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{byUser: make(map[int64]domain.Balance), nextID: 1}
}

func (f *fakeBalanceRepo) FindByUser(ctx context.Context, userID int64) (*domain.Balance, error) {
	if b, ok := f.byUser[userID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBalanceRepo) Create(ctx context.Context, balance domain.Balance) (domain.Balance, error) {
	balance.ID = f.nextID
	f.nextID++
	f.creates++
	f.byUser[balance.UserID] = balance
	return balance, nil
}

func (f *fakeBalanceRepo) DeductBalance(ctx context.Context, userID, amount int64) (*domain.Balance, error) {
	b, ok := f.byUser[userID]
	if !ok || b.Balance < amount {
		return nil, nil
	}
	b.Balance -= amount
	f.byUser[userID] = b
	return &b, nil
}

// fakeAddressRepo is an in-memory AddressRepository.
type fakeAddressRepo struct {
	byID   map[int64]domain.Address
	nextID int64
}

func newFakeAddressRepo(addresses ...domain.Address) *fakeAddressRepo {
	f := &fakeAddressRepo{byID: make(map[int64]domain.Address), nextID: 1}
	for _, a := range addresses {
		f.byID[a.ID] = a
		if a.ID >= f.nextID {
			f.nextID = a.ID + 1
		}
	}
	return f
}

func (f *fakeAddressRepo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Address, error) {
	var out []domain.Address
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) FindByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAddressRepo) SaveAll(ctx context.Context, addresses []domain.Address) ([]int64, error) {
	ids := make([]int64, 0, len(addresses))
	for _, a := range addresses {
		a.ID = f.nextID
		f.nextID++
		f.byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// fakeOrderRepo is an in-memory OrderRepository.
type fakeOrderRepo struct {
	orders    []domain.Order
	nextID    int64
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order domain.Order) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	f.orders = append(f.orders, order)
	return order.ID, nil
}

func (f *fakeOrderRepo) PageByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, int64, error) {
	var mine []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })

	total := int64(len(mine))
	start := (page - 1) * size
	if start >= len(mine) {
		return nil, total, nil
	}
	end := start + size
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], total, nil
}

// fakePublisher records published logistics events.
type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}
