package practice

import "github.com/abhisek/lingua/internal/content"

// batchReadyMsg is sent when a question batch has been generated. Seq
// ties the message to the fetch that produced it; a reply from an
// earlier fetch is dropped.
type batchReadyMsg struct {
	Seq       int
	Questions []content.Question
	Passage   string
	Err       error
}

// attemptSavedMsg is sent after the finished set has been handed to the
// attempt controller.
type attemptSavedMsg struct {
	Recorded bool
}
