package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lionhunt/internal/sim"
	"lionhunt/internal/world"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func result(id, variant string, reason world.Reason, score, ticks int, started time.Time) sim.Result {
	return sim.Result{
		GameID:     id,
		Variant:    variant,
		Seed:       int64(len(id)),
		Reason:     reason,
		Score:      score,
		Ticks:      ticks,
		TokensLeft: 5 - score/world.TokenReward,
		Started:    started,
		Elapsed:    time.Duration(ticks) * 200 * time.Millisecond,
	}
}

func TestSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	base := time.Unix(1_700_000_000, 0)
	in := []sim.Result{
		result("a", "classic", world.Captured, 10, 12, base),
		result("b", "classic", world.Cleared, 50, 40, base.Add(time.Minute)),
		result("c", "sheep", world.TimedOut, 20, 100, base.Add(2*time.Minute)),
	}
	for _, r := range in {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save %s: %v", r.GameID, err)
		}
	}
	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].GameID != "c" || got[1].GameID != "b" {
		t.Fatalf("Recent = %+v", got)
	}
	b := got[1]
	if b.Reason != world.Cleared || b.Score != 50 || b.Ticks != 40 || b.Elapsed != 8*time.Second {
		t.Fatalf("row b = %+v", b)
	}
	if !b.Started.Equal(base.Add(time.Minute)) {
		t.Fatalf("started = %s", b.Started)
	}
}

func TestSaveReplacesSameGame(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	now := time.Now()
	if err := s.Save(ctx, result("g", "classic", world.Quit, 0, 3, now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, result("g", "classic", world.Captured, 10, 9, now)); err != nil {
		t.Fatal(err)
	}
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Reason != world.Captured {
		t.Fatalf("Recent = %+v", got)
	}
}

func TestSaveRejectsRunningGame(t *testing.T) {
	s := openTemp(t)
	if err := s.Save(context.Background(), result("x", "classic", world.None, 0, 1, time.Now())); err == nil {
		t.Fatal("expected an error for an unfinished game")
	}
}

func TestBestAndStats(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	now := time.Now()
	rows := []sim.Result{
		result("a", "classic", world.Captured, 10, 30, now),
		result("b", "classic", world.Cleared, 50, 60, now),
		result("c", "classic", world.Cleared, 50, 45, now),
		result("d", "pack", world.Captured, 0, 4, now),
	}
	for _, r := range rows {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	best, err := s.Best(ctx, "classic", 2)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if len(best) != 2 || best[0].GameID != "c" || best[1].GameID != "b" {
		t.Fatalf("Best = %+v", best)
	}
	all, err := s.Best(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[3].GameID != "d" {
		t.Fatalf("Best(all) = %+v", all)
	}

	st, err := s.Stats(ctx, "classic")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Games != 3 || st.BestScore != 50 || st.ByReason[world.Cleared] != 2 || st.ByReason[world.Captured] != 1 {
		t.Fatalf("Stats = %+v", st)
	}
	if mean := 110.0 / 3; st.MeanScore < mean-0.01 || st.MeanScore > mean+0.01 {
		t.Fatalf("MeanScore = %f", st.MeanScore)
	}

	empty, err := s.Stats(ctx, "sheep")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Games != 0 || len(empty.ByReason) != 0 {
		t.Fatalf("empty Stats = %+v", empty)
	}
}

func TestRecorderReportsErrors(t *testing.T) {
	s := openTemp(t)
	var got error
	rec := s.Recorder(context.Background(), func(err error) { got = err })
	rec(result("ok", "classic", world.Captured, 0, 1, time.Now()))
	if got != nil {
		t.Fatalf("unexpected error %v", got)
	}
	s.Close()
	rec(result("late", "classic", world.Captured, 0, 1, time.Now()))
	if got == nil {
		t.Fatal("closed store should report an error")
	}
}
