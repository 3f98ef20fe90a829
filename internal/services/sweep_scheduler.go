package services

import (
	"context"
	"fmt"
	"time"

	"dealership/internal/domain"
	"dealership/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SweepScheduler runs the Closer on a fixed interval. Leadership gates the
// scheduled run so a fleet of instances sweeps once, not N times; the sweep
// itself stays safe to run anywhere (admin trigger included).
type SweepScheduler struct {
	cron       *cron.Cron
	closer     *Closer
	leader     domain.LeaderElection
	instanceID string
	interval   time.Duration
	log        logger.Logger
}

func NewSweepScheduler(closer *Closer, leader domain.LeaderElection, instanceID string,
	interval time.Duration, log logger.Logger) *SweepScheduler {
	return &SweepScheduler{
		cron:       cron.New(cron.WithSeconds()),
		closer:     closer,
		leader:     leader,
		instanceID: instanceID,
		interval:   interval,
		log:        log,
	}
}

func (s *SweepScheduler) Start(ctx context.Context) error {
	s.log.Info("Starting sweep scheduler", "interval", s.interval)

	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, func() {
		s.runScheduledSweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *SweepScheduler) Stop() error {
	s.log.Info("Stopping sweep scheduler")
	s.cron.Stop()
	return nil
}

func (s *SweepScheduler) runScheduledSweep(ctx context.Context) {
	isLeader, err := s.leader.IsLeader(ctx, s.instanceID)
	if err != nil {
		s.log.Error("Leader check failed, skipping sweep", "error", err)
		return
	}
	if !isLeader {
		return
	}

	summary, err := s.closer.SweepEndedAuctions(ctx)
	if err != nil {
		s.log.Error("Scheduled sweep failed", "error", err)
		return
	}

	if summary.Processed > 0 {
		s.log.Info("Scheduled sweep finished", "processed", summary.Processed)
	}
}
