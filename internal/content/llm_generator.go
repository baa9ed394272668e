package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is one raw question from the LLM before validation.
type questionOutput struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// QuestionBatch produces count multiple-choice questions for grammar or
// vocabulary practice.
func (g *LLMGenerator) QuestionBatch(ctx context.Context, module attempt.ModuleKind, difficulty attempt.Difficulty, count int, contextText string) ([]Question, error) {
	const op = "question batch"
	ctx = llm.WithPurpose(ctx, "question-batch")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionBatchMessage(module, difficulty, count, contextText)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, genErr(op, err)
	}

	var raw struct {
		Questions []questionOutput `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, genErr(op, err)
	}
	if len(raw.Questions) == 0 {
		return nil, genErrf(op, "empty question list")
	}

	return buildQuestions(op, string(module), difficulty, raw.Questions)
}

// PassageTask produces a listening script or reading passage with
// comprehension questions.
func (g *LLMGenerator) PassageTask(ctx context.Context, module attempt.ModuleKind, difficulty attempt.Difficulty, contextText string) (*PassageTask, error) {
	const op = "passage task"
	ctx = llm.WithPurpose(ctx, "passage-task")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPassageTaskMessage(module, difficulty, contextText)},
		},
		Schema:      PassageTaskSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, genErr(op, err)
	}

	var raw struct {
		Passage   string           `json:"passage"`
		Questions []questionOutput `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, genErr(op, err)
	}
	if strings.TrimSpace(raw.Passage) == "" {
		return nil, genErrf(op, "empty passage")
	}
	if len(raw.Questions) == 0 {
		return nil, genErrf(op, "empty question list")
	}

	questions, err := buildQuestions(op, string(module)+"-q", difficulty, raw.Questions)
	if err != nil {
		return nil, err
	}

	return &PassageTask{
		ID:        fmt.Sprintf("%s-%s-%d", module, difficulty, time.Now().UnixMilli()),
		Passage:   raw.Passage,
		Questions: questions,
	}, nil
}

// Phrase produces one short phrase for pronunciation practice.
func (g *LLMGenerator) Phrase(ctx context.Context, difficulty attempt.Difficulty) (string, error) {
	const op = "phrase"
	ctx = llm.WithPurpose(ctx, "phrase")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPhraseMessage(difficulty)},
		},
		MaxTokens:   g.config.ShortMaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", genErr(op, err)
	}

	phrase := trimQuoted(string(resp.Content))
	if phrase == "" {
		return "", genErrf(op, "empty phrase")
	}
	return phrase, nil
}

// AnalyzeUtterance scores an utterance transcript against the reference
// phrase. It sits in a UI-critical path and never fails: any error becomes
// a zero-score result carrying the reason.
func (g *LLMGenerator) AnalyzeUtterance(ctx context.Context, utterance, reference string) UtteranceFeedback {
	ctx = llm.WithPurpose(ctx, "utterance-analysis")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnalysisMessage(utterance, reference)},
		},
		Schema:      UtteranceFeedbackSchema,
		MaxTokens:   g.config.ShortMaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return UtteranceFeedback{Score: 0, Feedback: "An error occurred while analyzing pronunciation. Please try again."}
	}

	var fb UtteranceFeedback
	if err := json.Unmarshal(resp.Content, &fb); err != nil {
		return UtteranceFeedback{Score: 0, Feedback: "Could not interpret the pronunciation analysis. Please try again."}
	}
	if fb.Score < 0 {
		fb.Score = 0
	}
	if fb.Score > 100 {
		fb.Score = 100
	}
	return fb
}

// OverallSuggestion returns a short study suggestion for a completed batch.
func (g *LLMGenerator) OverallSuggestion(ctx context.Context, module attempt.ModuleKind, score, totalItems int, difficulty attempt.Difficulty) (string, error) {
	const op = "suggestion"
	ctx = llm.WithPurpose(ctx, "suggestion")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSuggestionMessage(module, score, totalItems, difficulty)},
		},
		MaxTokens:   g.config.ShortMaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", genErr(op, err)
	}

	suggestion := strings.TrimSpace(string(resp.Content))
	if suggestion == "" {
		return "", genErrf(op, "empty suggestion")
	}
	return suggestion, nil
}

// TipsForIncorrect returns per-question tips keyed by question id. The
// result may be partial; the attempt controller fills gaps with a sentinel.
func (g *LLMGenerator) TipsForIncorrect(ctx context.Context, details []attempt.IncorrectDetail) (map[string]string, error) {
	const op = "tips"
	if len(details) == 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, "tips")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTipsMessage(details)},
		},
		Schema:      TipsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, genErr(op, err)
	}

	var raw struct {
		Tips []struct {
			QuestionID string `json:"questionId"`
			Tip        string `json:"tip"`
		} `json:"tips"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, genErr(op, err)
	}

	tips := make(map[string]string, len(raw.Tips))
	for _, t := range raw.Tips {
		if t.QuestionID != "" && t.Tip != "" {
			tips[t.QuestionID] = t.Tip
		}
	}
	return tips, nil
}

// buildQuestions validates raw questions and assigns batch-scoped ids.
func buildQuestions(op, idPrefix string, difficulty attempt.Difficulty, raw []questionOutput) ([]Question, error) {
	now := time.Now().UnixMilli()
	questions := make([]Question, len(raw))
	for i, q := range raw {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, genErrf(op, "question %d: empty stem", i)
		}
		if len(q.Options) != 4 {
			return nil, genErrf(op, "question %d: got %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex > 3 {
			return nil, genErrf(op, "question %d: correct index %d out of range", i, q.CorrectAnswerIndex)
		}
		questions[i] = Question{
			ID:           fmt.Sprintf("%s-%s-%d-%d", idPrefix, difficulty, now, i),
			Text:         q.QuestionText,
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswerIndex,
			Explanation:  q.Explanation,
		}
	}
	return questions, nil
}

// trimQuoted trims whitespace and a single pair of surrounding quotes.
func trimQuoted(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
