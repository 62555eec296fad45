package game

import (
	"path/filepath"
	"testing"
)

func TestScoreServiceRoundTrip(t *testing.T) {
	service, err := NewScoreService(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open score store: %v", err)
	}
	defer service.Close()

	if err := service.SaveScore(3, 4, 1); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := service.SaveScore(9, 10, 2); err != nil {
		t.Fatalf("save: %v", err)
	}

	top, err := service.TopScores(10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(top))
	}
	if top[0].Score != 9 || top[1].Score != 3 {
		t.Errorf("expected scores ordered [9 3], got [%d %d]", top[0].Score, top[1].Score)
	}

	count, err := service.TotalCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestNilScoreServiceIsSafe(t *testing.T) {
	var service *ScoreService

	if err := service.SaveScore(1, 2, 3); err != nil {
		t.Errorf("nil save: %v", err)
	}
	if _, err := service.TopScores(5); err != nil {
		t.Errorf("nil top scores: %v", err)
	}
	if _, err := service.TotalCount(); err != nil {
		t.Errorf("nil count: %v", err)
	}
	if err := service.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
