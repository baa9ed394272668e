package attempt

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
)

// memRepo implements Repo in memory for tests, round-tripping through JSON
// the same way the sqlite-backed repo does.
type memRepo struct {
	blob  []byte
	saves int
}

func (m *memRepo) Load(_ context.Context) ([]Attempt, error) {
	if m.blob == nil {
		return nil, nil
	}
	var attempts []Attempt
	if err := json.Unmarshal(m.blob, &attempts); err != nil {
		return nil, nil
	}
	return attempts, nil
}

func (m *memRepo) Save(_ context.Context, attempts []Attempt) error {
	b, err := json.Marshal(attempts)
	if err != nil {
		return err
	}
	m.blob = b
	m.saves++
	return nil
}

func (m *memRepo) Clear(_ context.Context) error {
	m.blob = nil
	return nil
}

func TestHistoryInsertNewestFirst(t *testing.T) {
	h := NewHistory(&memRepo{})
	ctx := context.Background()

	first := New(ModuleGrammar, 3, 5, Medium, nil)
	second := New(ModuleReading, 5, 5, Hard, nil)
	h.Insert(ctx, first)
	h.Insert(ctx, second)

	all := h.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Error("expected newest-first ordering")
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	h := NewHistory(&memRepo{})
	ctx := context.Background()

	var oldest, newest string
	for i := 0; i < HistoryCap+1; i++ {
		a := New(ModuleVocabulary, i%6, 5, Easy, nil)
		if i == 0 {
			oldest = a.ID
		}
		newest = a.ID
		h.Insert(ctx, a)
	}

	if h.Len() != HistoryCap {
		t.Fatalf("len = %d, want %d", h.Len(), HistoryCap)
	}
	all := h.All()
	if all[0].ID != newest {
		t.Error("newest record missing from front")
	}
	for _, a := range all {
		if a.ID == oldest {
			t.Error("oldest record should have been evicted")
		}
	}
}

func TestHistoryUpdateMissIsNoop(t *testing.T) {
	repo := &memRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	found, err := h.Update(ctx, "no-such-id", func(a *Attempt) {
		a.Suggestion = "should not land"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if found {
		t.Error("expected miss for unknown id")
	}
	if repo.saves != 0 {
		t.Errorf("saves = %d, want 0 (miss must not persist)", repo.saves)
	}
}

func TestAllSnapshotDetachedFromUpdates(t *testing.T) {
	h := NewHistory(&memRepo{})
	ctx := context.Background()

	a := New(ModuleGrammar, 3, 5, Medium, []IncorrectDetail{
		{QuestionID: "q1", QuestionText: "one", UserAnswer: "a", CorrectAnswer: "b"},
		{QuestionID: "q2", QuestionText: "two", UserAnswer: "c", CorrectAnswer: "d"},
	})
	h.Insert(ctx, a)

	// A snapshot taken before an enrichment patch lands must not observe
	// the in-place tip write, and must not share backing memory with the
	// stored record.
	before := h.All()
	h.Update(ctx, a.ID, func(rec *Attempt) {
		rec.Suggestion = "patched"
		for i := range rec.DetailedFeedback {
			rec.DetailedFeedback[i].AITip = "tip"
		}
	})

	for _, d := range before[0].DetailedFeedback {
		if d.AITip != TipPending {
			t.Errorf("snapshot tip = %q, want %q", d.AITip, TipPending)
		}
	}
	if before[0].Suggestion != SuggestionPending {
		t.Errorf("snapshot suggestion = %q, want %q", before[0].Suggestion, SuggestionPending)
	}

	after := h.All()
	if after[0].DetailedFeedback[0].AITip != "tip" {
		t.Errorf("stored tip = %q, want %q", after[0].DetailedFeedback[0].AITip, "tip")
	}
}

func TestHistoryPersistsEveryMutation(t *testing.T) {
	repo := &memRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	a := New(ModuleGrammar, 2, 5, Medium, []IncorrectDetail{
		{QuestionID: "q1", QuestionText: "Pick the article", UserAnswer: "a", CorrectAnswer: "an", Explanation: "Vowel sound follows."},
	})
	h.Insert(ctx, a)
	h.Update(ctx, a.ID, func(rec *Attempt) {
		rec.Suggestion = "Review articles before vowels."
	})

	if repo.saves != 2 {
		t.Fatalf("saves = %d, want 2", repo.saves)
	}

	// Reload from the persisted blob and compare.
	h2 := NewHistory(repo)
	if err := h2.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h2.Len() != 1 {
		t.Fatalf("reloaded len = %d, want 1", h2.Len())
	}
	got := h2.All()[0]
	if got.Suggestion != "Review articles before vowels." {
		t.Errorf("Suggestion = %q after reload", got.Suggestion)
	}
	if len(got.DetailedFeedback) != 1 || got.DetailedFeedback[0].QuestionID != "q1" {
		t.Error("nested feedback lost in round trip")
	}
}

func TestHistorySerializationRoundTrip(t *testing.T) {
	var attempts []Attempt
	for i := 0; i < 3; i++ {
		a := New(ModuleListening, i+2, 5, Medium, []IncorrectDetail{
			{QuestionID: fmt.Sprintf("q%d", i), QuestionText: "text", UserAnswer: "u", CorrectAnswer: "c", Explanation: "e"},
		})
		attempts = append(attempts, a)
	}
	attempts = append(attempts, New(ModulePronunciation, 82, 5, Hard, nil))

	b, err := json.Marshal(attempts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got []Attempt
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range attempts {
		if !attempts[i].Date.Equal(got[i].Date) {
			t.Fatalf("record %d: date drifted in round trip", i)
		}
		attempts[i].Date = got[i].Date
	}
	if !reflect.DeepEqual(attempts, got) {
		t.Error("round trip did not reproduce the record sequence")
	}
}

func TestHistoryClear(t *testing.T) {
	repo := &memRepo{}
	h := NewHistory(repo)
	ctx := context.Background()

	h.Insert(ctx, New(ModuleGrammar, 3, 5, Medium, nil))
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if h.Len() != 0 {
		t.Error("expected empty history after clear")
	}
	if repo.blob != nil {
		t.Error("expected persisted blob removed")
	}
}

func TestPronunciationPercentageIsScore(t *testing.T) {
	a := New(ModulePronunciation, 85, 5, Medium, nil)
	if a.Percentage != 85 {
		t.Errorf("Percentage = %d, want 85 (identity with score)", a.Percentage)
	}
	if a.DetailedFeedback != nil {
		t.Error("pronunciation attempts carry no per-item detail")
	}
}

func TestChoicePercentageRounds(t *testing.T) {
	a := New(ModuleGrammar, 4, 5, Medium, nil)
	if a.Percentage != 80 {
		t.Errorf("Percentage = %d, want 80", a.Percentage)
	}
	b := New(ModuleReading, 1, 3, Easy, nil)
	if b.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33", b.Percentage)
	}
}
