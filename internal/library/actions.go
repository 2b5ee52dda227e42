// Package library implements the library CLI command: list what the
// ledger knows, best books first.
package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"bookdepth/pkg/ledger"
	"bookdepth/pkg/report"
)

func Action(c *cli.Context) error {
	ledgerPath := c.String("ledger")
	if ledgerPath == "" {
		ledgerPath = filepath.Join(c.String("output-dir"), ledger.DefaultName)
	}

	led, err := ledger.Open(ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer led.Close()
	if led.Recovered() {
		fmt.Println("Warning: ledger store was corrupt and has been replaced; it is now empty.")
	}

	entries, err := led.List()
	if err != nil {
		return fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No books analyzed yet")
		return nil
	}

	fmt.Printf("%-8s %-50s %-10s %-12s\n", "Rating", "File", "Chapters", "Analyzed")
	fmt.Println(strings.Repeat("-", 84))
	for _, e := range entries {
		name := e.FileName
		if len(name) > 48 {
			name = name[:45] + "..."
		}
		fmt.Printf("%-8s %-50s %-10d %-12s\n",
			fmt.Sprintf("%d/10", e.Rating), name, e.ChapterCount, e.AnalyzedAt.Format("2006-01-02"))
	}
	fmt.Printf("\nTotal: %d books\n", len(entries))

	if c.Bool("write-summary") {
		writer, err := report.NewWriter(c.String("output-dir"))
		if err != nil {
			return err
		}
		path, err := writer.WriteMaster(entries)
		if err != nil {
			return err
		}
		fmt.Printf("Master summary saved to: %s\n", path)
	}

	if c.Bool("runs") {
		runs, err := led.ListRuns(c.Int("limit"))
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		fmt.Printf("\n%-6s %-20s %-8s %-10s %-8s %-8s\n", "ID", "Created", "Found", "Analyzed", "Skipped", "Failed")
		fmt.Println(strings.Repeat("-", 66))
		for _, run := range runs {
			fmt.Printf("%-6d %-20s %-8d %-10d %-8d %-8d\n",
				run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.BookCount, run.AnalyzedCount, run.SkippedCount, run.FailedCount)
		}
	}
	return nil
}
