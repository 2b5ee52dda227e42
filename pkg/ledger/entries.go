package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Entry is the persisted record for one analyzed document.
type Entry struct {
	Identity     string
	FileName     string
	FilePath     string
	Rating       int
	ChapterCount int
	AnalyzedAt   time.Time
	ReportPath   string
}

// Lookup returns the entry for an identity, or nil if the identity is
// unseen.
func (l *Ledger) Lookup(identity string) (*Entry, error) {
	var entry Entry
	err := l.QueryRow(`
		SELECT identity, file_name, file_path, rating, chapter_count, analyzed_at, report_path
		FROM books
		WHERE identity = ?
	`, identity).Scan(
		&entry.Identity, &entry.FileName, &entry.FilePath,
		&entry.Rating, &entry.ChapterCount, &entry.AnalyzedAt, &entry.ReportPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up identity %s: %w", identity, err)
	}
	return &entry, nil
}

// Upsert records an analysis result, transitioning the identity from
// unseen to analyzed or overwriting a previous result. The write is a
// single statement, so rating, timestamp, chapter count, and report path
// replace the old values together: no reader can see a mix of old and
// new fields.
func (l *Ledger) Upsert(entry Entry) error {
	_, err := l.Exec(`
		INSERT INTO books (identity, file_name, file_path, rating, chapter_count, analyzed_at, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			file_name = excluded.file_name,
			file_path = excluded.file_path,
			rating = excluded.rating,
			chapter_count = excluded.chapter_count,
			analyzed_at = excluded.analyzed_at,
			report_path = excluded.report_path,
			updated_at = CURRENT_TIMESTAMP
	`, entry.Identity, entry.FileName, entry.FilePath,
		entry.Rating, entry.ChapterCount, entry.AnalyzedAt, entry.ReportPath)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger entry: %w", err)
	}
	return nil
}

// List enumerates all entries, best rating first, most recent breaking
// ties. Used for ranking summaries.
func (l *Ledger) List() ([]Entry, error) {
	rows, err := l.Query(`
		SELECT identity, file_name, file_path, rating, chapter_count, analyzed_at, report_path
		FROM books
		ORDER BY rating DESC, analyzed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.Identity, &entry.FileName, &entry.FilePath,
			&entry.Rating, &entry.ChapterCount, &entry.AnalyzedAt, &entry.ReportPath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RunRecord summarizes one analyze invocation.
type RunRecord struct {
	RunID         int64
	CreatedAt     time.Time
	Folder        string
	BookCount     int
	AnalyzedCount int
	SkippedCount  int
	FailedCount   int
}

// RecordRun stores a per-run summary and returns its id.
func (l *Ledger) RecordRun(run RunRecord) (int64, error) {
	result, err := l.Exec(`
		INSERT INTO runs (folder, book_count, analyzed_count, skipped_count, failed_count)
		VALUES (?, ?, ?, ?, ?)
	`, run.Folder, run.BookCount, run.AnalyzedCount, run.SkippedCount, run.FailedCount)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (l *Ledger) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.Query(`
		SELECT run_id, created_at, folder, book_count, analyzed_count, skipped_count, failed_count
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		err := rows.Scan(&run.RunID, &run.CreatedAt, &run.Folder,
			&run.BookCount, &run.AnalyzedCount, &run.SkippedCount, &run.FailedCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
