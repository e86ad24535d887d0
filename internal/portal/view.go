package portal

import (
	"context"
	"sync"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/models"
)

type FetchFunc func(ctx context.Context) ([]models.Application, error)

// ApplicationsView is a list that re-fetches on a fixed interval while mounted.
// Whichever fetch resolves last wins.
type ApplicationsView struct {
	fetch    FetchFunc
	interval time.Duration

	mu       sync.Mutex
	apps     []models.Application
	err      error
	loaded   bool
	cancel   context.CancelFunc
	done     chan struct{}
	onChange func()
}

func NewApplicationsView(fetch FetchFunc, interval time.Duration) *ApplicationsView {
	if interval <= 0 {
		interval = PollInterval
	}
	return &ApplicationsView{fetch: fetch, interval: interval}
}

// OnChange registers a callback run after every fetch.
func (v *ApplicationsView) OnChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Mount fetches immediately and then on every tick until Unmount or ctx is done.
func (v *ApplicationsView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.cancel != nil {
		v.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.cancel = cancel
	v.done = done
	v.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()

		_ = v.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = v.Refresh(ctx)
			}
		}
	}()
}

// Unmount stops polling and waits for the poll goroutine to exit.
func (v *ApplicationsView) Unmount() {
	v.mu.Lock()
	cancel, done := v.cancel, v.done
	v.cancel, v.done = nil, nil
	v.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (v *ApplicationsView) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cancel != nil
}

func (v *ApplicationsView) Refresh(ctx context.Context) error {
	apps, err := v.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		// unmounted mid-request
		return err
	}

	v.mu.Lock()
	if err == nil {
		v.apps = apps
		v.loaded = true
	}
	v.err = err
	onChange := v.onChange
	v.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return err
}

// Snapshot returns the last successful list and the error of the latest fetch.
func (v *ApplicationsView) Snapshot() ([]models.Application, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Application, len(v.apps))
	copy(out, v.apps)
	return out, v.err
}

func (v *ApplicationsView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}
