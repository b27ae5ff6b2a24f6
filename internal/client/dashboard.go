package client

import (
	"context"
	"sync"

	"spendwize/internal/logger"
	"spendwize/internal/reports"
)

// DashboardFetcher loads dashboard data for a range.
type DashboardFetcher interface {
	Dashboard(ctx context.Context, r reports.Range) (*Dashboard, error)
}

// DashboardState is a snapshot of what the dashboard currently shows.
type DashboardState struct {
	Range      reports.Range
	Window     reports.Window
	Points     []reports.Point
	Categories []reports.Slice
	Loading    bool
	Err        error
}

// DashboardView holds the displayed series and breakdown. Range changes may
// overlap; only the response to the most recent one is applied.
type DashboardView struct {
	fetcher DashboardFetcher
	seq     reports.Sequencer

	mu    sync.RWMutex
	state DashboardState
}

// NewDashboardView creates a view that loads through fetcher.
func NewDashboardView(fetcher DashboardFetcher) *DashboardView {
	return &DashboardView{fetcher: fetcher}
}

// State returns the current snapshot.
func (v *DashboardView) State() DashboardState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// SelectRange switches the view to r and loads it. A response that arrives
// after a newer SelectRange started is dropped and nil is returned. If the
// latest request fails the displayed data is cleared and the error is kept
// in the state.
func (v *DashboardView) SelectRange(ctx context.Context, r reports.Range) error {
	seq := v.seq.Next()

	v.mu.Lock()
	v.state.Range = r
	v.state.Loading = true
	v.mu.Unlock()

	dashboard, err := v.fetcher.Dashboard(ctx, r)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.seq.Check(seq) != nil {
		logger.Named("client").Debugw("dropping stale dashboard response", "range", r, "seq", seq)
		return nil
	}

	v.state.Loading = false
	if err != nil {
		v.state.Window = reports.Window{}
		v.state.Points = nil
		v.state.Categories = nil
		v.state.Err = err
		return err
	}

	v.state.Window = dashboard.Series.Window
	v.state.Points = dashboard.Series.Points
	v.state.Categories = dashboard.Categories
	v.state.Err = nil
	return nil
}
