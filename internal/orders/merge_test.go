package orders

import (
	"testing"
	"time"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

func TestParseOrderTimestamp(t *testing.T) {
	ts, ok := parseOrderTimestamp("2026-08-29", "14:30:00")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	if ts.Hour() != 14 || ts.Minute() != 30 {
		t.Fatalf("unexpected time parsed: %v", ts)
	}

	cases := []struct {
		name string
		date string
		tod  string
	}{
		{name: "garbage date", date: "not-a-date", tod: "14:30:00"},
		{name: "garbage time", date: "2026-08-29", tod: "late afternoon"},
		{name: "empty", date: "", tod: ""},
		{name: "wrong date layout", date: "08/29/2026", tod: "14:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := parseOrderTimestamp(tc.date, tc.tod); ok {
				t.Fatalf("expected %q %q to be rejected", tc.date, tc.tod)
			}
		})
	}
}

func TestFindMergeTarget(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.Local)
	window := time.Hour

	orderAt := func(offset time.Duration) models.Order {
		ts := now.Add(offset)
		return models.Order{
			DisplayID: "#QE0001",
			OrderDate: ts.Format(orderDateLayout),
			OrderTime: ts.Format(orderTimeLayout),
		}
	}

	t.Run("within window", func(t *testing.T) {
		candidates := []models.Order{orderAt(-30 * time.Minute)}
		if findMergeTarget(candidates, now, window) == nil {
			t.Fatal("expected a merge target 30 minutes back")
		}
	})

	t.Run("exactly at window edge", func(t *testing.T) {
		candidates := []models.Order{orderAt(-window)}
		if findMergeTarget(candidates, now, window) == nil {
			t.Fatal("expected the window to include its lower bound")
		}
	})

	t.Run("just outside window", func(t *testing.T) {
		candidates := []models.Order{orderAt(-window - time.Second)}
		if findMergeTarget(candidates, now, window) != nil {
			t.Fatal("expected no merge target outside the window")
		}
	})

	t.Run("future order skipped", func(t *testing.T) {
		candidates := []models.Order{orderAt(10 * time.Minute)}
		if findMergeTarget(candidates, now, window) != nil {
			t.Fatal("expected future-dated rows to be ignored")
		}
	})

	t.Run("malformed row skipped", func(t *testing.T) {
		dirty := models.Order{OrderDate: "yesterday", OrderTime: "noonish"}
		clean := orderAt(-10 * time.Minute)
		clean.DisplayID = "#QE0002"
		target := findMergeTarget([]models.Order{dirty, clean}, now, window)
		if target == nil {
			t.Fatal("expected the clean row behind the dirty one to match")
		}
		if target.DisplayID != "#QE0002" {
			t.Fatalf("matched wrong order: %s", target.DisplayID)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if findMergeTarget(nil, now, window) != nil {
			t.Fatal("expected nil target for empty candidate list")
		}
	})
}
