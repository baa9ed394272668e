package content

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for batch and passage responses.
	MaxTokens int

	// ShortMaxTokens is the token budget for single-text responses
	// (phrases, suggestions, utterance feedback).
	ShortMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      4096,
		ShortMaxTokens: 512,
		Temperature:    0.7,
	}
}
