package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"spendwize/internal/client"
	"spendwize/internal/logger"
	"spendwize/internal/reports"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Report error: %v", err)
	}
}

func run() error {
	apiURL := flag.String("api", envOr("SPENDWIZE_API_URL", "http://localhost:8080"), "API base URL")
	email := flag.String("email", os.Getenv("SPENDWIZE_EMAIL"), "account email")
	rangeFlag := flag.String("range", string(reports.RangeWeek), "week, month or year")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	r, err := reports.ParseRange(*rangeFlag)
	if err != nil {
		return err
	}
	password := os.Getenv("SPENDWIZE_PASSWORD")
	if *email == "" || password == "" {
		return fmt.Errorf("usage: report -email <email> [-range week|month|year] (password from SPENDWIZE_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := client.New(*apiURL, &http.Client{Timeout: *timeout})
	if err := api.Login(ctx, *email, password); err != nil {
		return err
	}

	view := client.NewDashboardView(api)
	if err := view.SelectRange(ctx, r); err != nil {
		return err
	}

	printDashboard(view.State())
	return nil
}

func printDashboard(s client.DashboardState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "Expenses, %s to %s\t\n", s.Window.From.Format("2006-01-02"), s.Window.To.Format("2006-01-02"))
	for _, p := range s.Points {
		fmt.Fprintf(w, "%s\t%s\t\n", p.Label, p.Total.StringFixed(2))
	}

	fmt.Fprintln(w, "\t\t")
	fmt.Fprintln(w, "By category\t\t")
	for _, sl := range s.Categories {
		fmt.Fprintf(w, "%s\t%s\t\n", sl.Label, sl.Total.StringFixed(2))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
