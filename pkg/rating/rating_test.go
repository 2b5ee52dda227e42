package rating

import (
	"testing"

	"bookdepth/pkg/dictionary"
)

func defaultCalc() *Calculator {
	return NewCalculator(dictionary.Default().Rating)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		agg  Aggregate
		want int
	}{
		{
			name: "empty book floors at one",
			agg:  Aggregate{},
			want: 1,
		},
		{
			name: "saturated book caps at ten",
			agg: Aggregate{
				TotalHits:      500,
				ChapterCount:   10,
				SignalChapters: 10,
				KeySentences:   60,
				DistinctTopics: 12,
			},
			want: 10,
		},
		{
			name: "sparse hits with one signal chapter in three",
			agg: Aggregate{
				TotalHits:      3,
				ChapterCount:   3,
				SignalChapters: 1,
				KeySentences:   1,
				DistinctTopics: 2,
			},
			// coverage 0 (3 < 15), signal 2 (1/3 >= 0.30), sentences 0, breadth 0
			want: 2,
		},
		{
			name: "coverage only",
			agg: Aggregate{
				TotalHits:    47,
				ChapterCount: 5,
			},
			// 47 clears cuts 15, 30, 45
			want: 3,
		},
		{
			name: "boundary values are inclusive",
			agg: Aggregate{
				TotalHits:      15,
				ChapterCount:   20,
				SignalChapters: 3, // 0.15 exactly
				KeySentences:   10,
				DistinctTopics: 4,
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultCalc().Calculate(tt.agg); got != tt.want {
				t.Errorf("Calculate(%+v) = %d, want %d", tt.agg, got, tt.want)
			}
		})
	}
}

func TestCalculate_Bounds(t *testing.T) {
	calc := defaultCalc()
	for hits := 0; hits <= 200; hits += 10 {
		for chapters := 0; chapters <= 20; chapters += 5 {
			agg := Aggregate{
				TotalHits:      hits,
				ChapterCount:   chapters,
				SignalChapters: chapters,
				KeySentences:   hits / 2,
				DistinctTopics: hits / 10,
			}
			got := calc.Calculate(agg)
			if got < 1 || got > 10 {
				t.Fatalf("Calculate(%+v) = %d, outside [1,10]", agg, got)
			}
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := defaultCalc()
	agg := Aggregate{TotalHits: 33, ChapterCount: 7, SignalChapters: 2, KeySentences: 12, DistinctTopics: 5}
	first := calc.Calculate(agg)
	for i := 0; i < 50; i++ {
		if got := calc.Calculate(agg); got != first {
			t.Fatalf("run %d: Calculate() = %d, want %d", i, got, first)
		}
	}
}

func TestCoverage_Monotonic(t *testing.T) {
	calc := defaultCalc()
	prev := calc.Coverage(0)
	for hits := 1; hits <= 100; hits++ {
		cur := calc.Coverage(hits)
		if cur < prev {
			t.Fatalf("Coverage(%d) = %d dropped below Coverage(%d) = %d", hits, cur, hits-1, prev)
		}
		prev = cur
	}
	if calc.Coverage(0) != 0 {
		t.Errorf("Coverage(0) = %d, want 0", calc.Coverage(0))
	}
	if calc.Coverage(1000) != 4 {
		t.Errorf("Coverage(1000) = %d, want 4", calc.Coverage(1000))
	}
}

func TestSignalPresence_ZeroChapters(t *testing.T) {
	agg := Aggregate{TotalHits: 100, ChapterCount: 0, SignalChapters: 0}
	// coverage 4 is the only contribution; no division by zero
	if got := defaultCalc().Calculate(agg); got != 4 {
		t.Errorf("Calculate() = %d, want 4", got)
	}
}
