package content

import "github.com/abhisek/lingua/internal/llm"

var questionProperties = map[string]any{
	"questionText": map[string]any{
		"type":        "string",
		"description": "The question stem shown to the learner",
	},
	"options": map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"minItems":    4,
		"maxItems":    4,
		"description": "Exactly 4 answer options",
	},
	"correctAnswerIndex": map[string]any{
		"type":        "integer",
		"minimum":     0,
		"maximum":     3,
		"description": "Index of the correct option",
	},
	"explanation": map[string]any{
		"type":        "string",
		"description": "Why the correct answer is right and common distractors are wrong",
	},
}

var questionItemSchema = map[string]any{
	"type":                 "object",
	"properties":           questionProperties,
	"required":             []any{"questionText", "options", "correctAnswerIndex", "explanation"},
	"additionalProperties": false,
}

// QuestionBatchSchema is the response schema for grammar and vocabulary
// batches.
var QuestionBatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of multiple-choice English practice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionItemSchema,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// PassageTaskSchema is the response schema for listening and reading tasks.
var PassageTaskSchema = &llm.Schema{
	Name:        "passage-task",
	Description: "A passage or script with comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passage": map[string]any{
				"type":        "string",
				"description": "The full script or reading passage text",
			},
			"questions": map[string]any{
				"type":  "array",
				"items": questionItemSchema,
			},
		},
		"required":             []any{"passage", "questions"},
		"additionalProperties": false,
	},
}

// UtteranceFeedbackSchema is the response schema for pronunciation scoring.
var UtteranceFeedbackSchema = &llm.Schema{
	Name:        "utterance-feedback",
	Description: "A pronunciation score with textual feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "0 is unintelligible, 100 is native-like",
			},
			"feedbackText": map[string]any{
				"type":        "string",
				"description": "Concise, constructive pronunciation feedback",
			},
		},
		"required":             []any{"score", "feedbackText"},
		"additionalProperties": false,
	},
}

// TipsSchema is the response schema for per-question improvement tips.
var TipsSchema = &llm.Schema{
	Name:        "incorrect-answer-tips",
	Description: "Per-question improvement tips keyed by question id",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId": map[string]any{
							"type":        "string",
							"description": "The question id exactly as provided",
						},
						"tip": map[string]any{
							"type":        "string",
							"description": "A concise, actionable tip for this mistake",
						},
					},
					"required":             []any{"questionId", "tip"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tips"},
		"additionalProperties": false,
	},
}
