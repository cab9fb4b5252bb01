package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"calboard/pkg/client"
)

var seedNames = []string{"Alice", "Bob", "Chen", "Dana", "Emre", "Fatma", "Gus", "Hana"}

type seedResult struct {
	Name    string
	Success bool
	Error   error
}

func newSeedCmd() *cobra.Command {
	var (
		count   int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the board with random entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 || workers <= 0 {
				return fmt.Errorf("--count and --workers must be positive")
			}
			return runSeed(cmd.Context(), newClient(), count, workers)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 50, "Number of entries to create")
	cmd.Flags().IntVarP(&workers, "workers", "w", 5, "Concurrent requests")
	return cmd
}

func runSeed(ctx context.Context, c *client.Client, count, workers int) error {
	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgLightMagenta)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("CALBOARD SEEDER")
	pterm.Println()

	data := pterm.TableData{
		{"Target Server", color.New(color.FgCyan).Sprint(c.BaseURL)},
		{"Total Entries", color.New(color.FgYellow).Sprintf("%d", count)},
		{"Concurrency", color.New(color.FgYellow).Sprintf("%d workers", workers)},
	}
	_ = pterm.DefaultTable.WithBoxed().WithData(data).Render()
	pterm.Println()

	bar, _ := pterm.DefaultProgressbar.
		WithTotal(count).
		WithTitle("Seeding entries...").
		WithShowCount(true).
		WithShowElapsedTime(true).
		Start()

	results := seed(ctx, c, count, workers, func() { bar.Increment() })
	_, _ = bar.Stop()

	var failures []seedResult
	for _, res := range results {
		if !res.Success {
			failures = append(failures, res)
		}
	}

	pterm.Println()
	if len(failures) == 0 {
		pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgGreen)).Println("SEEDING COMPLETED")
		pterm.Info.Printf("Added %d entries.\n", len(results))
		return nil
	}

	pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgYellow)).Println("COMPLETED WITH ERRORS")
	pterm.Info.Printf("Success: %d | Failed: %d\n", len(results)-len(failures), len(failures))
	pterm.Println()
	pterm.Error.Println("Failure Report:")
	for _, f := range failures {
		fmt.Printf(" • %s: %v\n", color.RedString(f.Name), f.Error)
	}
	return fmt.Errorf("%d of %d entries failed", len(failures), count)
}

// seed posts count random entries using a fixed pool of workers. tick is
// called once per finished job.
func seed(ctx context.Context, c *client.Client, count, workers int, tick func()) []seedResult {
	var wg sync.WaitGroup
	jobs := make(chan int, count)
	results := make(chan seedResult, count)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				name := seedNames[rand.Intn(len(seedNames))]
				_, err := c.AddEntry(ctx, client.Entry{
					Name:     name,
					Calories: int64(rand.Intn(900) + 50),
				})
				results <- seedResult{Name: name, Success: err == nil, Error: err}
				tick()
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]seedResult, 0, count)
	for res := range results {
		out = append(out, res)
	}
	return out
}
