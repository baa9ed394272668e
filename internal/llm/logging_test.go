package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/lingua/internal/store"
)

// memEventRepo records appended events in memory.
type memEventRepo struct {
	events []store.LLMRequestEventData
}

func (m *memEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.events = append(m.events, data)
	return nil
}

func (m *memEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (m *memEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMEvent, error) {
	return nil, nil
}

func (m *memEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}

func (m *memEventRepo) LLMUsageByModel(_ context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestWithLogging_NilRepoSkipsWrapping(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithLogging(mock, nil)

	if p != Provider(mock) {
		t.Fatal("expected the provider to be returned unwrapped")
	}

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestWithLogging_RecordsRequestEvent(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"ok":true}`),
			Usage:   Usage{InputTokens: 12, OutputTokens: 34},
		},
	)
	repo := &memEventRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "question-batch")
	if _, err := p.Generate(ctx, Request{System: "be brief"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "question-batch" {
		t.Errorf("purpose = %q, want %q", ev.Purpose, "question-batch")
	}
	if !ev.Success {
		t.Error("expected success to be recorded")
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 34 {
		t.Errorf("tokens = %d/%d, want 12/34", ev.InputTokens, ev.OutputTokens)
	}
}
