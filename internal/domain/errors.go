package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed bidder input. Field names the offending
// form field so the client can attach the message to it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuctionNotBiddableError covers every way an auction can refuse bids:
// missing, closed, inactive, or past its end time.
type AuctionNotBiddableError struct {
	AuctionID string
	Reason    string
}

func (e *AuctionNotBiddableError) Error() string {
	return fmt.Sprintf("auction %s not biddable: %s", e.AuctionID, e.Reason)
}

// BidTooLowError carries the floor observed at rejection time so the bidder
// can resubmit above it. Losing a race to a concurrent higher bid surfaces
// here too, with the post-race floor.
type BidTooLowError struct {
	CurrentBid float64
	MinimumBid float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid too low: current bid is %.2f, minimum accepted is %.2f", e.CurrentBid, e.MinimumBid)
}

// StorageUnavailableError wraps store failures that are not domain outcomes.
// The caller may retry the whole operation; the engine never retries.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}
