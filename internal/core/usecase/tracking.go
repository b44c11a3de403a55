package usecase

import (
	"context"
	"time"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

type TrackingConfig struct {
	Start    int
	Step     int
	Interval time.Duration
}

func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		Start:    80,
		Step:     2,
		Interval: time.Second,
	}
}

func (c TrackingConfig) normalize() TrackingConfig {
	out := c
	def := DefaultTrackingConfig()
	if out.Start < 0 {
		out.Start = 0
	}
	if out.Start > 100 {
		out.Start = 100
	}
	if out.Step <= 0 {
		out.Step = def.Step
	}
	if out.Interval <= 0 {
		out.Interval = def.Interval
	}
	return out
}

// Tracker follows a submitted declaration through clearance.
type Tracker struct {
	cfg TrackingConfig
}

func NewTracker(cfg TrackingConfig) *Tracker {
	return &Tracker{cfg: cfg.normalize()}
}

const trackingTimeLayout = "02/01 15:04"

// Timeline returns the five clearance stages of a declaration. Filing and
// documentary validation are done, the AfCFTA check is running and the
// remaining stages are planned.
func (t *Tracker) Timeline(decl domain.Declaration) []domain.TimelineStage {
	filed := decl.CreatedAt
	return []domain.TimelineStage{
		{Name: "Electronic filing", When: filed.Format(trackingTimeLayout), Status: domain.StageCompleted},
		{Name: "Documentary validation", When: filed.Add(75 * time.Minute).Format(trackingTimeLayout), Status: domain.StageCompleted},
		{Name: "AfCFTA compliance check", When: "in progress", Status: domain.StageCurrent},
		{Name: "Duty assessment", When: "planned " + filed.Add(23*time.Hour+30*time.Minute).Format(trackingTimeLayout), Status: domain.StagePending},
		{Name: "Release and removal order", When: "planned " + filed.Add(26*time.Hour).Format(trackingTimeLayout), Status: domain.StagePending},
	}
}

// Progress emits the clearance percentage, rising by Step every Interval
// until it reaches 100. The channel is closed at 100 or when ctx ends.
func (t *Tracker) Progress(ctx context.Context) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		ticker := time.NewTicker(t.cfg.Interval)
		defer ticker.Stop()

		value := t.cfg.Start
		for {
			select {
			case out <- value:
			case <-ctx.Done():
				return
			}
			if value >= 100 {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
			value = min(value+t.cfg.Step, 100)
		}
	}()
	return out
}
