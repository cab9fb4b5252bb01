package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type benchStats struct {
	Success     uint64
	Failed      uint64
	Latencies   []time.Duration
	StatusCodes map[int]int
	mu          sync.Mutex
}

func newBenchCmd() *cobra.Command {
	var (
		total       int
		concurrency int
		writes      bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Load test the board endpoints",
		Long:  "bench hammers GET /api/data and, with --writes, POST /api/entry. Write phase entries use throwaway bench-* names.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 || concurrency <= 0 {
				return fmt.Errorf("--requests and --concurrency must be positive")
			}

			base := strings.TrimRight(serverURL, "/")
			hc := &http.Client{
				Timeout: timeout,
				Transport: &http.Transport{
					MaxIdleConns:        1000,
					MaxIdleConnsPerHost: concurrency + 50,
					IdleConnTimeout:     90 * time.Second,
				},
			}

			if _, err := newClient().Health(cmd.Context()); err != nil {
				pterm.Error.Printf("Server is DOWN! (%s)\n", base)
				return err
			}
			pterm.Success.Printf("Server is UP! (%s)\n", base)

			report := runBench(cmd.Context(), "READ /api/data", total, concurrency, func(ctx context.Context) int {
				return benchRequest(ctx, hc, http.MethodGet, base+"/api/data", nil)
			})
			printBenchReport(report.stats, report.elapsed, total)

			if writes {
				fmt.Println()
				report = runBench(cmd.Context(), "WRITE /api/entry", total, concurrency, func(ctx context.Context) int {
					payload, _ := json.Marshal(map[string]any{
						"name":     "bench-" + uuid.NewString()[:8],
						"calories": 100,
					})
					return benchRequest(ctx, hc, http.MethodPost, base+"/api/entry", payload)
				})
				printBenchReport(report.stats, report.elapsed, total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&total, "requests", "n", 1000, "Requests per phase")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 50, "Requests in flight")
	cmd.Flags().BoolVar(&writes, "writes", false, "Also run the write phase (adds entries to the board)")
	return cmd
}

type benchReport struct {
	stats   *benchStats
	elapsed time.Duration
}

func runBench(ctx context.Context, name string, total, concurrency int, operation func(context.Context) int) benchReport {
	bar, _ := pterm.DefaultProgressbar.WithTotal(total).WithTitle(name).WithRemoveWhenDone(true).Start()

	stats := &benchStats{
		StatusCodes: make(map[int]int),
		Latencies:   make([]time.Duration, 0, total),
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	start := time.Now()

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			t0 := time.Now()
			code := operation(ctx)
			dur := time.Since(t0)

			stats.mu.Lock()
			stats.Latencies = append(stats.Latencies, dur)
			stats.StatusCodes[code]++
			stats.mu.Unlock()

			if code >= 200 && code < 300 {
				atomic.AddUint64(&stats.Success, 1)
			} else {
				atomic.AddUint64(&stats.Failed, 1)
			}

			bar.Increment()
		}()
	}

	wg.Wait()
	return benchReport{stats: stats, elapsed: time.Since(start)}
}

// benchRequest returns the status code, or 0 when the request never got an
// answer.
func benchRequest(ctx context.Context, hc *http.Client, method, url string, body []byte) int {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(float64(len(sorted)) * p)
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

func printBenchReport(s *benchStats, totalTime time.Duration, totalReq int) {
	if len(s.Latencies) == 0 {
		return
	}

	sort.Slice(s.Latencies, func(i, j int) bool { return s.Latencies[i] < s.Latencies[j] })

	data := pterm.TableData{
		{"Metric", "Value"},
		{"Throughput", fmt.Sprintf("%.2f Req/sec", float64(totalReq)/totalTime.Seconds())},
		{"Success Rate", fmt.Sprintf("%.2f%%", float64(atomic.LoadUint64(&s.Success))/float64(totalReq)*100)},
		{"P50 Latency", percentile(s.Latencies, 0.50).String()},
		{"P95 Latency", percentile(s.Latencies, 0.95).String()},
		{"P99 Latency", percentile(s.Latencies, 0.99).String()},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if atomic.LoadUint64(&s.Failed) > 0 {
		pterm.Warning.Println("Status Code Breakdown (Errors):")
		for code, cnt := range s.StatusCodes {
			if code >= 400 || code == 0 {
				fmt.Printf("HTTP %d: %d\n", code, cnt)
			}
		}
	}
}
