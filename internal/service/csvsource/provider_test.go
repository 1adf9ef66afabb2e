package csvsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"EdgeLab/internal/domain/models"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func day(s string) time.Time {
	ts, _ := time.Parse("2006-01-02", s)
	return ts
}

func TestDailyParsesAndSorts(t *testing.T) {
	p := New(writeCSV(t, "date,close\n2024-01-03,103\n2024-01-01,101\n2024-01-02,102\n"))
	s, err := p.Daily(context.Background(), "TEST", day("2024-01-01"), day("2024-01-31"))
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("got %d points, want 3", s.Len())
	}
	want := []float64{101, 102, 103}
	for i, pt := range s.Points {
		if pt.Price != want[i] {
			t.Fatalf("point %d price %v, want %v", i, pt.Price, want[i])
		}
	}
}

func TestDailyFiltersRange(t *testing.T) {
	p := New(writeCSV(t, "date,close\n2024-01-01,101\n2024-02-01,102\n2024-03-01,103\n"))
	s, err := p.Daily(context.Background(), "TEST", day("2024-01-15"), day("2024-02-15"))
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if s.Len() != 1 || s.Points[0].Price != 102 {
		t.Fatalf("unexpected points %+v", s.Points)
	}
}

func TestDailyDeduplicatesKeepFirst(t *testing.T) {
	p := New(writeCSV(t, "date,close\n2024-01-01,101\n2024-01-01,999\n2024-01-02,102\n"))
	s, err := p.Daily(context.Background(), "TEST", day("2024-01-01"), day("2024-01-31"))
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if s.Len() != 2 || s.Points[0].Price != 101 {
		t.Fatalf("unexpected points %+v", s.Points)
	}
}

func TestDailyMissingColumns(t *testing.T) {
	p := New(writeCSV(t, "date,volume\n2024-01-01,5\n"))
	_, err := p.Daily(context.Background(), "TEST", day("2024-01-01"), day("2024-01-31"))
	var mcErr *models.MissingColumnError
	if !errors.As(err, &mcErr) || mcErr.Column != "close" {
		t.Fatalf("got %v, want MissingColumnError for close", err)
	}
}

func TestDailyEmptyRange(t *testing.T) {
	p := New(writeCSV(t, "date,close\n2024-01-01,101\n"))
	_, err := p.Daily(context.Background(), "TEST", day("2025-01-01"), day("2025-02-01"))
	var edErr *models.EmptyDataError
	if !errors.As(err, &edErr) {
		t.Fatalf("got %v, want EmptyDataError", err)
	}
}
