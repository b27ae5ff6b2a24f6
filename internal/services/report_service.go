package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/models"
	"spendwize/internal/reports"
	"spendwize/internal/store"
)

// reportService builds chart data from the user's expense rows.
type reportService struct {
	entries  store.Table[reports.Entry]
	location *time.Location
	now      func() time.Time
}

// NewReportService creates a new ReportServicer. Windows end on the current
// calendar day in loc; now defaults to time.Now.
func NewReportService(entries store.Table[reports.Entry], loc *time.Location, now func() time.Time) ReportServicer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &reportService{entries: entries, location: loc, now: now}
}

// ExpenseSeries returns the user's expenses bucketed over the window for r.
func (s *reportService) ExpenseSeries(ctx context.Context, userID string, r reports.Range) (*ExpenseSeries, error) {
	w, err := reports.NewWindow(r, s.now().In(s.location))
	if err != nil {
		if errors.Is(err, reports.ErrUnknownRange) {
			return nil, apperrors.ErrInvalidRange
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows, err := s.entries.Select(ctx, userID, store.Query{
		Columns: reports.EntryColumns,
		Filters: []store.Filter{
			store.Eq("type", models.TransactionTypeExpense),
			store.Gte("transaction_date", w.From),
			store.Lte("transaction_date", w.To),
		},
	})
	if err != nil {
		return nil, storeError(err)
	}

	return &ExpenseSeries{Window: w, Points: reports.ExpenseSeries(w, rows)}, nil
}

// ExpensesByCategory returns the user's all-time expenses grouped by category.
func (s *reportService) ExpensesByCategory(ctx context.Context, userID string) ([]reports.Slice, error) {
	rows, err := s.entries.Select(ctx, userID, store.Query{
		Columns: reports.EntryColumns,
		Filters: []store.Filter{store.Eq("type", models.TransactionTypeExpense)},
		Order: []store.Order{
			{Column: "transaction_date"},
			{Column: "created_at"},
		},
	})
	if err != nil {
		return nil, storeError(err)
	}

	slices := reports.ExpensesByCategory(rows)
	if slices == nil {
		slices = []reports.Slice{}
	}
	return slices, nil
}

// Dashboard computes the series and the breakdown concurrently. If either
// fails the other is cancelled and no partial result is returned.
func (s *reportService) Dashboard(ctx context.Context, userID string, r reports.Range) (*Dashboard, error) {
	var (
		series     *ExpenseSeries
		categories []reports.Slice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = s.ExpenseSeries(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.ExpensesByCategory(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{Series: *series, Categories: categories}, nil
}
