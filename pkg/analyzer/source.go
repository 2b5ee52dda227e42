package analyzer

import (
	"io"

	"bookdepth/models"
)

// SliceSource serves chapters from an in-memory slice. Used for cached
// decodes and in tests.
type SliceSource struct {
	chapters []models.Chapter
	pos      int
}

func NewSliceSource(chapters []models.Chapter) *SliceSource {
	return &SliceSource{chapters: chapters}
}

func (s *SliceSource) Next() (*models.Chapter, error) {
	if s.pos >= len(s.chapters) {
		return nil, io.EOF
	}
	chapter := s.chapters[s.pos]
	s.pos++
	return &chapter, nil
}

func (s *SliceSource) Close() error {
	return nil
}

// RecordingSource wraps another source and retains every chapter it
// yields, so a successful decode can be cached for later runs.
type RecordingSource struct {
	inner    ChapterSource
	Chapters []models.Chapter
}

func NewRecordingSource(inner ChapterSource) *RecordingSource {
	return &RecordingSource{inner: inner}
}

func (r *RecordingSource) Next() (*models.Chapter, error) {
	chapter, err := r.inner.Next()
	if err != nil {
		return nil, err
	}
	r.Chapters = append(r.Chapters, *chapter)
	return chapter, nil
}

func (r *RecordingSource) Close() error {
	return r.inner.Close()
}
