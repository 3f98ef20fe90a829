package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BidsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bids_submitted_total",
			Help: "Bid submissions by outcome",
		},
		[]string{"outcome"},
	)

	AuctionsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auctions_closed_total",
			Help: "Auctions closed by the sweep, by result",
		},
		[]string{"result"},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auction_sweep_duration_seconds",
			Help:    "Duration of a full sweep over ended auctions",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Currently connected auction subscribers",
		},
	)
)

// Bid outcomes
const (
	OutcomeAccepted     = "accepted"
	OutcomeValidation   = "validation_error"
	OutcomeNotBiddable  = "not_biddable"
	OutcomeTooLow       = "too_low"
	OutcomeStorageError = "storage_error"
)

// Sweep results
const (
	ResultWinner = "winner"
	ResultNoBids = "no_bids"
	ResultFailed = "failed"
)
