package analyze

import "bookdepth/models"

// Job is one book for a worker to analyze.
type Job struct {
	Path     string
	Identity string
}

// Result holds the outcome of a processed job. Analysis may be non-nil
// alongside Err when a book degraded mid-stream: the partial result is
// still recorded, but the book counts as failed in the run summary.
type Result struct {
	Job        Job
	Analysis   *models.BookAnalysis
	ReportPath string
	Err        error
	ErrorType  string
}

// RunSummary is the per-run accounting printed at the end and stored in
// the ledger runs table.
type RunSummary struct {
	Found    int
	Analyzed int
	Skipped  int
	Failed   int
}
