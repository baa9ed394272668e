package pronunciation

import "github.com/abhisek/lingua/internal/content"

// phraseReadyMsg is sent when a practice phrase has been generated.
// Seq ties the message to the fetch that produced it.
type phraseReadyMsg struct {
	Seq    int
	Phrase string
	Err    error
}

// analysisDoneMsg is sent when a captured utterance has been scored.
// FailReason is non-empty when the capture pipeline broke before the
// utterance could be analyzed; such slots don't count toward the
// session average.
type analysisDoneMsg struct {
	Seq        int
	Feedback   content.UtteranceFeedback
	FailReason string
}

// attemptSavedMsg is sent after the finished session has been handed
// to the attempt controller.
type attemptSavedMsg struct {
	Recorded bool
}
