package poller

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"remo-dashboard/config"
	"remo-dashboard/internal/metrics"
	"remo-dashboard/internal/model"
	"remo-dashboard/internal/notification"
	"remo-dashboard/internal/remo"
	"remo-dashboard/internal/store"
	"remo-dashboard/internal/view"
)

// Source is the part of the vendor client the poller reads from.
type Source interface {
	ListDevices(ctx context.Context) ([]model.Device, error)
	ListAppliances(ctx context.Context) ([]model.Appliance, error)
}

// Service periodically reads the account's hubs and appliances, exports
// them as metrics and publishes power changes.
type Service struct {
	cfg      config.PollerConfig
	source   Source
	history  store.Store
	recorder *metrics.Recorder
	pool     *notification.WorkerPool

	mu    sync.Mutex
	power map[string]view.Power
}

// NewService creates a poller. pool may be nil when no broker is configured.
func NewService(cfg config.PollerConfig, source Source, history store.Store, recorder *metrics.Recorder, pool *notification.WorkerPool) *Service {
	return &Service{
		cfg:      cfg,
		source:   source,
		history:  history,
		recorder: recorder,
		pool:     pool,
		power:    make(map[string]view.Power),
	}
}

// Run polls in a loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Poller is disabled. Not starting.")
		return
	}
	log.Println("Starting poller service...")

	s.PollOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Poller service shutting down.")
			return
		case <-timer.C:
			s.PollOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// PollOnce performs a single read of devices and appliances.
func (s *Service) PollOnce(ctx context.Context) {
	now := time.Now().UTC()

	devices, err := s.source.ListDevices(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	s.recorder.ObserveDevices(devices)

	appliances, err := s.source.ListAppliances(ctx)
	if err != nil {
		s.fail(err)
		return
	}

	changed := 0
	for _, a := range appliances {
		power, ok := s.powerOf(a)
		if !ok {
			continue
		}
		if s.observe(a, power, now) {
			changed++
		}
	}

	s.recorder.ObservePoll(true, now)
	log.Printf("Poll finished: %d devices, %d appliances, %d power changes", len(devices), len(appliances), changed)
}

func (s *Service) fail(err error) {
	if errors.Is(err, remo.ErrMissingAPIKey) {
		log.Println("Poll skipped: NATURE_REMO_API_KEY is not configured.")
	} else {
		log.Printf("Poll failed: %v", err)
	}
	s.recorder.ObservePoll(false, time.Now())
}

// powerOf reports the power state of appliances that have one.
func (s *Service) powerOf(a model.Appliance) (view.Power, bool) {
	switch {
	case a.Type == model.ApplianceTypeAC && a.Settings != nil:
		var last *store.ButtonRecord
		if s.history != nil {
			if rec, ok := s.history.LastButton(a.ID); ok {
				if view.HistoryApplies(rec, a.Settings) {
					last = &rec
				} else {
					// The vendor has caught up with the command.
					s.history.Forget(a.ID)
				}
			}
		}
		return view.DerivePower(a, last), true
	case a.Type == model.ApplianceTypeLight && a.Light != nil:
		if a.Light.State.Power == string(view.PowerOn) {
			return view.PowerOn, true
		}
		return view.PowerOff, true
	default:
		return "", false
	}
}

// observe records the state and reports whether it differs from the
// previous poll. The first observation of an appliance is never a change.
func (s *Service) observe(a model.Appliance, power view.Power, now time.Time) bool {
	s.mu.Lock()
	prev, seen := s.power[a.ID]
	s.power[a.ID] = power
	s.mu.Unlock()

	changed := seen && prev != power
	s.recorder.ObservePower(a, power == view.PowerOn, changed)

	if changed && s.pool != nil {
		s.pool.TryDispatch(notification.Event{
			Kind:          notification.EventStatus,
			ApplianceID:   a.ID,
			ApplianceName: a.Nickname,
			Type:          string(a.Type),
			Power:         string(power),
			Timestamp:     now,
		})
	}
	return changed
}
