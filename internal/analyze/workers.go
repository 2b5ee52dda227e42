package analyze

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"bookdepth/pkg/analyzer"
	"bookdepth/pkg/epub"
	"bookdepth/pkg/pdfbook"
	"bookdepth/pkg/report"
	"bookdepth/pkg/textcache"
)

// runWorkers fans the jobs out over a worker pool and collects every
// result. Workers only decode, analyze, and write report files; all
// ledger writes stay with the caller, which is the single writer.
func runWorkers(logger *slog.Logger, an *analyzer.Analyzer, writer *report.Writer, cache *textcache.Cache, jobs []Job, workerCount int) []Result {
	if workerCount < 1 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	jobCh := make(chan Job, len(jobs))
	resultCh := make(chan Result, len(jobs))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(w, logger, an, writer, cache, &wg, jobCh, resultCh)
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	results := make([]Result, 0, len(jobs))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func worker(id int, logger *slog.Logger, an *analyzer.Analyzer, writer *report.Writer, cache *textcache.Cache, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "file", job.Path)
		result := processBook(logger, an, writer, cache, job)
		if result.Err != nil {
			logger.Error("Book processing failed", "worker_id", id, "file", job.Path,
				"error_type", result.ErrorType, "error", result.Err)
		} else {
			logger.Info("Worker finished job", "worker_id", id, "file", job.Path,
				"rating", result.Analysis.Rating, "chapters", result.Analysis.ChapterCount())
		}
		results <- result
	}
}

func processBook(logger *slog.Logger, an *analyzer.Analyzer, writer *report.Writer, cache *textcache.Cache, job Job) Result {
	result := Result{Job: job}

	source, recorder, err := openSource(logger, cache, job)
	if err != nil {
		result.Err = err
		result.ErrorType = "decode_error"
		return result
	}

	analysis, err := an.AnalyzeBook(job.Identity, job.Path, source)
	if err != nil {
		result.Err = err
		result.ErrorType = "chapter_error"
	}
	result.Analysis = analysis

	// Report before ledger: the caller commits the ledger entry only
	// after the report exists on disk.
	reportPath, err := writer.WriteBook(analysis)
	if err != nil {
		result.Analysis = nil
		result.Err = err
		result.ErrorType = "report_error"
		return result
	}
	result.ReportPath = reportPath

	if recorder != nil && result.Err == nil {
		if err := cache.Set(job.Identity, recorder.Chapters); err != nil {
			logger.Warn("Failed to cache decoded chapters", "file", job.Path, "error", err)
		}
	}
	return result
}

// openSource picks the chapter source for a job: the decode cache when
// it has a fresh entry, otherwise the format-specific decoder. The
// returned recorder is non-nil when a fresh decode should be cached on
// success.
func openSource(logger *slog.Logger, cache *textcache.Cache, job Job) (analyzer.ChapterSource, *analyzer.RecordingSource, error) {
	if cache != nil {
		if chapters, ok := cache.Get(job.Identity); ok {
			logger.Info("Using cached chapter text", "file", job.Path, "chapters", len(chapters))
			return analyzer.NewSliceSource(chapters), nil, nil
		}
	}

	var (
		source analyzer.ChapterSource
		err    error
	)
	switch strings.ToLower(filepath.Ext(job.Path)) {
	case ".epub":
		source, err = epub.Open(job.Path)
	case ".pdf":
		source, err = pdfbook.Open(job.Path)
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s", filepath.Ext(job.Path))
	}
	if err != nil {
		return nil, nil, err
	}

	if cache == nil {
		return source, nil, nil
	}
	recorder := analyzer.NewRecordingSource(source)
	return recorder, recorder, nil
}
