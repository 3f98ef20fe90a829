package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership/internal/domain"
	"dealership/pkg/logger"
)

func newTestAdmin() (*AdminService, *fakeAuctionRepo, *fakeFloorCache, *fakeEventPublisher) {
	auctionRepo := newFakeAuctionRepo()
	cache := newFakeFloorCache()
	pub := &fakeEventPublisher{}
	svc := NewAdminService(auctionRepo, newFakeCarRepo(), &fakeSalesRepo{}, cache, pub, logger.NewNop())
	return svc, auctionRepo, cache, pub
}

func TestCreateAuction(t *testing.T) {
	svc, auctionRepo, cache, _ := newTestAdmin()

	auction, err := svc.CreateAuction(context.Background(), CreateAuctionRequest{
		CarName:     "1967 Shelby GT500",
		StartingBid: 10000,
		EndTime:     time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AuctionActive, auction.Status)
	assert.Equal(t, 10000.0, auction.CurrentBid)
	assert.Equal(t, 0, auction.TotalBids)

	stored, err := auctionRepo.Get(context.Background(), auction.ID)
	require.NoError(t, err)
	assert.Equal(t, "1967 Shelby GT500", stored.CarName)
	assert.True(t, cache.has(auction.ID), "floor cache is seeded at creation")
}

func TestCreateAuction_Validation(t *testing.T) {
	svc, _, _, _ := newTestAdmin()
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name  string
		req   CreateAuctionRequest
		field string
	}{
		{"missing name", CreateAuctionRequest{StartingBid: 100, EndTime: future}, "car_name"},
		{"zero starting bid", CreateAuctionRequest{CarName: "Car", EndTime: future}, "starting_bid"},
		{"past end time", CreateAuctionRequest{CarName: "Car", StartingBid: 100, EndTime: time.Now().Add(-time.Hour)}, "end_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAuction(context.Background(), tc.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUpdateAuction_StartingBidFrozenAfterFirstBid(t *testing.T) {
	svc, auctionRepo, _, _ := newTestAdmin()
	a := activeAuction("auc-1", 10100, time.Hour)
	a.TotalBids = 1
	auctionRepo.put(a)

	updated, err := svc.UpdateAuction(context.Background(), "auc-1", CreateAuctionRequest{
		Description: "Restored in 2019",
		StartingBid: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Restored in 2019", updated.Description)
	assert.Equal(t, 10100.0, updated.CurrentBid, "the floor never moves backwards once bids exist")
}

func TestUpdateAuction_StartingBidEditableWithoutBids(t *testing.T) {
	svc, auctionRepo, _, pub := newTestAdmin()
	auctionRepo.put(activeAuction("auc-1", 10000, time.Hour))

	updated, err := svc.UpdateAuction(context.Background(), "auc-1", CreateAuctionRequest{
		StartingBid: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, 12000.0, updated.CurrentBid)
	assert.Len(t, pub.byType(domain.EventAuctionUpdated), 1)
}

func TestUpdateAuction_DoesNotRollBackConcurrentBid(t *testing.T) {
	svc, auctionRepo, _, _ := newTestAdmin()
	auctionRepo.put(activeAuction("auc-1", 10000, time.Hour))

	// A bid is admitted after the admin service has read the auction but
	// before its descriptive write-back lands.
	auctionRepo.beforeUpdate = func() {
		auctionRepo.beforeUpdate = nil
		raised, err := auctionRepo.RaiseBid(context.Background(), "auc-1", 10100)
		require.NoError(t, err)
		require.True(t, raised)
	}

	updated, err := svc.UpdateAuction(context.Background(), "auc-1", CreateAuctionRequest{
		Description: "Numbers-matching engine",
	})
	require.NoError(t, err)
	assert.Equal(t, "Numbers-matching engine", updated.Description)
	assert.Equal(t, 10100.0, updated.CurrentBid, "a description edit must not move the floor")

	latest, err := auctionRepo.Get(context.Background(), "auc-1")
	require.NoError(t, err)
	assert.Equal(t, 10100.0, latest.CurrentBid)
	assert.Equal(t, 1, latest.TotalBids)
}

func TestUpdateAuction_StartingBidLosesRaceToFirstBid(t *testing.T) {
	svc, auctionRepo, _, _ := newTestAdmin()
	auctionRepo.put(activeAuction("auc-1", 10000, time.Hour))

	// The first bid lands while the admin is editing the starting bid; the
	// guarded write must yield to it.
	auctionRepo.beforeUpdate = func() {
		auctionRepo.beforeUpdate = nil
		raised, err := auctionRepo.RaiseBid(context.Background(), "auc-1", 10100)
		require.NoError(t, err)
		require.True(t, raised)
	}

	updated, err := svc.UpdateAuction(context.Background(), "auc-1", CreateAuctionRequest{
		StartingBid: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, 10100.0, updated.CurrentBid, "the floor never moves backwards once bids exist")
}

func TestDeactivateAuction(t *testing.T) {
	svc, auctionRepo, cache, pub := newTestAdmin()
	auctionRepo.put(activeAuction("auc-1", 10000, time.Hour))
	require.NoError(t, cache.SetFloor(context.Background(), "auc-1", 10000, 0))

	require.NoError(t, svc.DeactivateAuction(context.Background(), "auc-1"))

	latest, err := auctionRepo.Get(context.Background(), "auc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AuctionInactive, latest.Status)
	assert.False(t, cache.has("auc-1"))
	assert.Len(t, pub.byType(domain.EventAuctionUpdated), 1)
}

func TestListSales_LimitClamped(t *testing.T) {
	auctionRepo := newFakeAuctionRepo()
	salesRepo := &fakeSalesRepo{}
	svc := NewAdminService(auctionRepo, newFakeCarRepo(), salesRepo, newFakeFloorCache(), &fakeEventPublisher{}, logger.NewNop())

	for i := 0; i < 150; i++ {
		require.NoError(t, salesRepo.Insert(context.Background(), &domain.SalesTransaction{
			ID: fmt.Sprintf("sale-%d", i), SaleType: domain.SalePurchase,
		}))
	}

	sales, err := svc.ListSales(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, sales, 100, "a missing limit falls back to the default page size")
}
