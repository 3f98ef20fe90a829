package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"dealership/internal/domain"
)

// fakeAuctionRepo implements the same conditional-update semantics as the
// MySQL repository, guarded by a mutex so concurrent admission races are
// observable in tests.
type fakeAuctionRepo struct {
	mu       sync.Mutex
	auctions map[string]*domain.Auction

	getErr   error
	raiseErr error

	// beforeRaise and beforeUpdate run before the respective call takes the
	// lock; tests use them to interleave a competing write between a read
	// and its write-back.
	beforeRaise  func()
	beforeUpdate func()
}

func newFakeAuctionRepo() *fakeAuctionRepo {
	return &fakeAuctionRepo{auctions: make(map[string]*domain.Auction)}
}

func (r *fakeAuctionRepo) put(a *domain.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.auctions[a.ID] = &copied
}

func (r *fakeAuctionRepo) Create(ctx context.Context, a *domain.Auction) error {
	r.put(a)
	return nil
}

func (r *fakeAuctionRepo) Get(ctx context.Context, id string) (*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.auctions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAuctionRepo) ListByStatus(ctx context.Context, status domain.AuctionStatus) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Auction
	for _, a := range r.auctions {
		if a.Status == status {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out, nil
}

func (r *fakeAuctionRepo) ListExpired(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Auction
	for _, a := range r.auctions {
		if a.Status == domain.AuctionActive && a.EndTime.Before(now) {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAuctionRepo) Update(ctx context.Context, a *domain.Auction) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.auctions[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Descriptive fields only, mirroring the SQL statement.
	existing.CarName = a.CarName
	existing.Description = a.Description
	existing.ImageURL = a.ImageURL
	existing.EndTime = a.EndTime
	return nil
}

func (r *fakeAuctionRepo) SetStartingBid(ctx context.Context, id string, amount float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.auctions[id]
	if !ok || a.TotalBids != 0 {
		return false, nil
	}
	a.CurrentBid = amount
	return true, nil
}

func (r *fakeAuctionRepo) SetStatus(ctx context.Context, id string, status domain.AuctionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.auctions[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAuctionRepo) RaiseBid(ctx context.Context, id string, amount float64) (bool, error) {
	if r.beforeRaise != nil {
		r.beforeRaise()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raiseErr != nil {
		return false, r.raiseErr
	}
	a, ok := r.auctions[id]
	if !ok || a.Status != domain.AuctionActive || amount <= a.CurrentBid {
		return false, nil
	}
	a.CurrentBid = amount
	a.TotalBids++
	return true, nil
}

func (r *fakeAuctionRepo) Close(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.auctions[id]
	if !ok || a.Status != domain.AuctionActive {
		return false, nil
	}
	a.Status = domain.AuctionClosed
	return true, nil
}

type fakeBidRepo struct {
	mu   sync.Mutex
	bids []*domain.Bid

	insertErr  error
	highestErr error
}

func (r *fakeBidRepo) Insert(ctx context.Context, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	copied := *bid
	r.bids = append(r.bids, &copied)
	return nil
}

func (r *fakeBidRepo) Delete(ctx context.Context, bidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bids {
		if b.ID == bidID {
			r.bids = append(r.bids[:i], r.bids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeBidRepo) Highest(ctx context.Context, auctionID string) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.highestErr != nil {
		return nil, r.highestErr
	}
	var best *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID {
			continue
		}
		if best == nil || b.BidAmount > best.BidAmount ||
			(b.BidAmount == best.BidAmount && b.CreatedAt.Before(best.CreatedAt)) {
			best = b
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (r *fakeBidRepo) Recent(ctx context.Context, auctionID string, limit int) ([]*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Bid
	for _, b := range r.bids {
		if b.AuctionID == auctionID {
			copied := *b
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBidRepo) count(auctionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bids {
		if b.AuctionID == auctionID {
			n++
		}
	}
	return n
}

type fakeSalesRepo struct {
	mu    sync.Mutex
	sales []*domain.SalesTransaction

	insertErr error
	// insertErrFor fails inserts for specific auctions only, so sweep tests
	// can break one auction while the rest of the batch succeeds.
	insertErrFor map[string]error
}

func (r *fakeSalesRepo) Insert(ctx context.Context, tx *domain.SalesTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if err := r.insertErrFor[tx.AuctionID]; err != nil {
		return err
	}
	copied := *tx
	r.sales = append(r.sales, &copied)
	return nil
}

func (r *fakeSalesRepo) List(ctx context.Context, saleType domain.SaleType, limit int) ([]*domain.SalesTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SalesTransaction
	for _, s := range r.sales {
		if saleType == "" || s.SaleType == saleType {
			copied := *s
			out = append(out, &copied)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCarRepo struct {
	mu   sync.Mutex
	cars map[string]*domain.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: make(map[string]*domain.Car)}
}

func (r *fakeCarRepo) Create(ctx context.Context, car *domain.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *car
	r.cars[car.ID] = &copied
	return nil
}

func (r *fakeCarRepo) Get(ctx context.Context, id string) (*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *car
	return &copied, nil
}

func (r *fakeCarRepo) ListByStatus(ctx context.Context, status domain.CarStatus) ([]*domain.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Car
	for _, car := range r.cars {
		if car.Status == status {
			copied := *car
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car *domain.Car) error {
	return r.Create(ctx, car)
}

func (r *fakeCarRepo) SetStatus(ctx context.Context, id string, status domain.CarStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	car, ok := r.cars[id]
	if !ok {
		return domain.ErrNotFound
	}
	car.Status = status
	return nil
}

type fakeFloorCache struct {
	mu     sync.Mutex
	floors map[string][2]float64 // currentBid, totalBids
}

func newFakeFloorCache() *fakeFloorCache {
	return &fakeFloorCache{floors: make(map[string][2]float64)}
}

func (c *fakeFloorCache) SetFloor(ctx context.Context, auctionID string, currentBid float64, totalBids int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.floors[auctionID] = [2]float64{currentBid, float64(totalBids)}
	return nil
}

func (c *fakeFloorCache) GetFloor(ctx context.Context, auctionID string) (float64, int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.floors[auctionID]
	if !ok {
		return 0, 0, false, nil
	}
	return f[0], int(f[1]), true, nil
}

func (c *fakeFloorCache) Evict(ctx context.Context, auctionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.floors, auctionID)
	return nil
}

func (c *fakeFloorCache) has(auctionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.floors[auctionID]
	return ok
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []*domain.AuctionEvent
}

func (p *fakeEventPublisher) PublishAuctionEvent(ctx context.Context, event *domain.AuctionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := *event
	p.events = append(p.events, &copied)
	return nil
}

func (p *fakeEventPublisher) byType(t domain.AuctionEventType) []*domain.AuctionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*domain.AuctionEvent
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
