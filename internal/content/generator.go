package content

import (
	"context"

	"github.com/abhisek/lingua/internal/attempt"
)

// BatchSize is the number of items in one practice batch.
const BatchSize = 5

// Generator is the content-provider boundary the sessions and the attempt
// controller depend on. The LLM-backed implementation is LLMGenerator;
// tests substitute fakes.
type Generator interface {
	// QuestionBatch produces count multiple-choice questions for a
	// grammar or vocabulary batch, optionally scoped to a user-supplied
	// context text.
	QuestionBatch(ctx context.Context, module attempt.ModuleKind, difficulty attempt.Difficulty, count int, contextText string) ([]Question, error)

	// PassageTask produces a listening script or reading passage with
	// comprehension questions.
	PassageTask(ctx context.Context, module attempt.ModuleKind, difficulty attempt.Difficulty, contextText string) (*PassageTask, error)

	// Phrase produces one short phrase for pronunciation practice.
	Phrase(ctx context.Context, difficulty attempt.Difficulty) (string, error)

	// AnalyzeUtterance scores a captured utterance against the reference
	// phrase. It never fails: any internal error is returned as a
	// zero-score result with the reason as feedback, so the session
	// always reaches its review state.
	AnalyzeUtterance(ctx context.Context, utterance, reference string) UtteranceFeedback

	// OverallSuggestion and TipsForIncorrect implement attempt.Enricher.
	OverallSuggestion(ctx context.Context, module attempt.ModuleKind, score, totalItems int, difficulty attempt.Difficulty) (string, error)
	TipsForIncorrect(ctx context.Context, details []attempt.IncorrectDetail) (map[string]string, error)
}
