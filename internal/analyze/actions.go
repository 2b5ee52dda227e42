// Package analyze implements the analyze CLI command: scan a folder for
// books, check each against the ledger, run the analysis pipeline, and
// record the results.
package analyze

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"bookdepth/models"
	"bookdepth/pkg/analyzer"
	"bookdepth/pkg/dictionary"
	"bookdepth/pkg/langid"
	"bookdepth/pkg/ledger"
	"bookdepth/pkg/report"
	"bookdepth/pkg/storage"
	"bookdepth/pkg/textcache"
)

const cacheTTL = 30 * 24 * time.Hour

func Action(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"))

	config := &models.AnalyzeConfig{
		Folder:      c.String("folder"),
		OutputDir:   c.String("output-dir"),
		LedgerPath:  c.String("ledger"),
		ConfigPath:  c.String("config"),
		CacheDir:    c.String("cache-dir"),
		WorkerCount: c.Int("workers"),
		Force:       c.Bool("force"),
		Auto:        c.Bool("auto"),
		NoCache:     c.Bool("no-cache"),
	}
	applyConfigDefaults(config)

	// An unusable dictionary is the one fatal condition: scoring against
	// zero keywords would corrupt every rating.
	dict, err := dictionary.Load(config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary config: %w", err)
	}

	if err := storage.EnsureDir(config.OutputDir); err != nil {
		return err
	}
	led, err := ledger.Open(config.LedgerPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer led.Close()
	if led.Recovered() {
		logger.Warn("Ledger store was corrupt and has been replaced; all documents appear unseen",
			"path", led.Path())
	}

	writer, err := report.NewWriter(config.OutputDir)
	if err != nil {
		return err
	}

	var cache *textcache.Cache
	if !config.NoCache {
		cache, err = textcache.New(config.CacheDir, cacheTTL)
		if err != nil {
			logger.Warn("Chapter cache unavailable, decoding every book", "error", err)
			cache = nil
		}
	}

	books, err := scanFolder(config.Folder)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Printf("No .epub or .pdf files found in %s\n", config.Folder)
		return nil
	}
	logger.Info("Found books", "folder", config.Folder, "count", len(books))

	jobs, summary := selectJobs(logger, led, config, books)

	an := analyzer.New(dict, langid.New())
	results := runWorkers(logger, an, writer, cache, jobs, config.WorkerCount)

	// Ledger writes happen here, on the collecting goroutine only, so
	// the store always has a single writer regardless of worker count.
	for _, result := range results {
		if result.Analysis == nil {
			summary.Failed++
			continue
		}
		if result.Err != nil {
			summary.Failed++
		} else {
			summary.Analyzed++
		}
		entry := ledger.Entry{
			Identity:     result.Analysis.Identity,
			FileName:     result.Analysis.FileName,
			FilePath:     result.Analysis.FilePath,
			Rating:       result.Analysis.Rating,
			ChapterCount: result.Analysis.ChapterCount(),
			AnalyzedAt:   result.Analysis.AnalyzedAt,
			ReportPath:   result.ReportPath,
		}
		if err := led.Upsert(entry); err != nil {
			logger.Error("Failed to record analysis in ledger", "file", result.Job.Path, "error", err)
		}
	}

	if _, err := led.RecordRun(ledger.RunRecord{
		Folder:        config.Folder,
		BookCount:     summary.Found,
		AnalyzedCount: summary.Analyzed,
		SkippedCount:  summary.Skipped,
		FailedCount:   summary.Failed,
	}); err != nil {
		logger.Warn("Failed to record run summary", "error", err)
	}

	if entries, err := led.List(); err == nil {
		if _, err := writer.WriteMaster(entries); err != nil {
			logger.Warn("Failed to write master summary", "error", err)
		}
	} else {
		logger.Warn("Failed to enumerate ledger for master summary", "error", err)
	}

	printRunSummary(summary)
	return nil
}

// selectJobs applies the per-book ledger gate. The ledger only reports
// state; the decision to skip, prompt, or force lives here. A ledger
// entry whose report file has vanished is treated as not yet analyzed,
// which is how a partial failure from a previous run gets repaired.
func selectJobs(logger *slog.Logger, led *ledger.Ledger, config *models.AnalyzeConfig, books []string) ([]Job, RunSummary) {
	summary := RunSummary{Found: len(books)}
	prompter := newPrompter(os.Stdin)

	var jobs []Job
	for i, path := range books {
		name := filepath.Base(path)

		identity, err := ledger.Identity(path)
		if err != nil {
			logger.Error("Failed to derive document identity", "file", path, "error", err)
			summary.Failed++
			continue
		}

		entry, err := led.Lookup(identity)
		if err != nil {
			// A per-document ledger failure must not block the book.
			logger.Warn("Ledger check failed, treating as unseen", "file", path, "error", err)
			entry = nil
		}

		if entry != nil && !config.Force {
			if storage.HasFile(entry.ReportPath) {
				if config.Auto {
					summary.Skipped++
					continue
				}
				if !prompter.confirm(fmt.Sprintf("%s — already analyzed (rating: %d/10). Re-analyze? (y/n): ", name, entry.Rating)) {
					summary.Skipped++
					continue
				}
			} else {
				logger.Warn("Ledger entry has no report on disk, re-analyzing", "file", path)
			}
		}

		if !config.Auto && (entry == nil || config.Force) {
			choice := prompter.ask(fmt.Sprintf("Analyze %s? (y/n/q): ", name))
			if choice == "q" {
				summary.Skipped += len(books) - i
				break
			}
			if choice != "y" {
				summary.Skipped++
				continue
			}
		}

		jobs = append(jobs, Job{Path: path, Identity: identity})
	}
	return jobs, summary
}

// scanFolder lists the analyzable books in a folder, sorted by name.
func scanFolder(folder string) ([]string, error) {
	dirEntries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder %s: %w", folder, err)
	}

	var books []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".epub", ".pdf":
			books = append(books, filepath.Join(folder, entry.Name()))
		}
	}
	sort.Strings(books)
	return books, nil
}

func applyConfigDefaults(config *models.AnalyzeConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "book-analysis"
	}
	if config.LedgerPath == "" {
		config.LedgerPath = filepath.Join(config.OutputDir, ledger.DefaultName)
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(config.OutputDir, "cache")
	}
	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}
}

func printRunSummary(summary RunSummary) {
	fmt.Println()
	fmt.Println("--- Analysis complete ---")
	fmt.Printf("  Found:    %d\n", summary.Found)
	fmt.Printf("  Analyzed: %d\n", summary.Analyzed)
	fmt.Printf("  Skipped:  %d\n", summary.Skipped)
	fmt.Printf("  Failed:   %d\n", summary.Failed)
}

func newLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// prompter wraps interactive stdin questions.
type prompter struct {
	scanner *bufio.Scanner
}

func newPrompter(r *os.File) *prompter {
	return &prompter{scanner: bufio.NewScanner(r)}
}

func (p *prompter) ask(question string) string {
	fmt.Print(question)
	if !p.scanner.Scan() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.scanner.Text()))
}

func (p *prompter) confirm(question string) bool {
	return p.ask(question) == "y"
}
