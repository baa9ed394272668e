package content

// Question is one multiple-choice item in a practice batch.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"questionText"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswerIndex"`
	Explanation  string   `json:"explanation"`
}

// PassageTask is a listening script or reading passage with its
// comprehension questions.
type PassageTask struct {
	ID        string     `json:"id"`
	Passage   string     `json:"passage"`
	Questions []Question `json:"questions"`
}

// UtteranceFeedback is the scored result of a pronunciation attempt.
type UtteranceFeedback struct {
	// Score is 0-100, where 100 is native-like pronunciation.
	Score    int    `json:"score"`
	Feedback string `json:"feedbackText"`
}
