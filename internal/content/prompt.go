package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/attempt"
)

const systemPrompt = `You are an English tutor creating TOEFL-style practice content for language learners.

Rules:
- Match the requested English proficiency level; a harder level means denser vocabulary, longer sentences, and subtler distractors.
- Question stems must be clear and self-contained.
- Multiple-choice questions have exactly 4 distinct options with exactly one correct answer. Distractors should reflect common learner mistakes, not random values.
- Explanations state why the correct answer is right and, where useful, why common distractors are wrong.
- Generate fresh content; avoid repeating question structures or specific examples.
- When a learner context text is provided, base the content on it.`

func subjectLabel(module attempt.ModuleKind) string {
	if module == attempt.ModuleVocabulary {
		return "English vocabulary (synonyms, antonyms, definitions, or context-based usage)"
	}
	return "English grammar"
}

func contextBlock(contextText string) string {
	if contextText == "" {
		return ""
	}
	return fmt.Sprintf("\nBase the content on this learner-provided context:\n---\nCONTEXT START\n%s\nCONTEXT END\n---\n", contextText)
}

func buildQuestionBatchMessage(module attempt.ModuleKind, difficulty attempt.Difficulty, count int, contextText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d new and distinct %s multiple-choice questions suitable for a %s English proficiency level.\n",
		count, subjectLabel(module), difficulty)
	b.WriteString(contextBlock(contextText))
	b.WriteString("Each question needs 4 options, the index of the correct one, and a concise explanation.")
	return b.String()
}

func buildPassageTaskMessage(module attempt.ModuleKind, difficulty attempt.Difficulty, contextText string) string {
	var b strings.Builder
	if module == attempt.ModuleListening {
		fmt.Fprintf(&b, "Generate a new TOEFL-style listening task for a %s English proficiency level.\n", difficulty)
		b.WriteString("The passage is a short audio script (a conversation or mini-lecture) of about 150-250 words with clear points for comprehension questions.\n")
	} else {
		fmt.Fprintf(&b, "Generate a new TOEFL-style reading comprehension task for a %s English proficiency level.\n", difficulty)
		b.WriteString("The passage is about 200-300 words on an academic or general interest topic.\n")
	}
	b.WriteString(contextBlock(contextText))
	fmt.Fprintf(&b, "Include %d multiple-choice comprehension questions based only on the passage, testing main ideas, details, inference, and vocabulary in context. Each question needs 4 options, the index of the correct one, and a brief explanation.", BatchSize)
	return b.String()
}

func buildPhraseMessage(difficulty attempt.Difficulty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a single short English phrase (5-10 words) for pronunciation practice at a %s level.\n", difficulty)
	b.WriteString("The phrase should contain common English sounds and intonation patterns. ")
	if difficulty == attempt.Hard {
		b.WriteString("Complex or rare vocabulary is acceptable.\n")
	} else {
		b.WriteString("Avoid overly complex or rare vocabulary.\n")
	}
	b.WriteString("Return ONLY the phrase as plain text, with no labels or quotation marks around it.")
	return b.String()
}

func buildAnalysisMessage(utterance, reference string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A learner was asked to say the English phrase: %q.\n", reference)
	fmt.Fprintf(&b, "A transcript of what they actually said: %q.\n\n", utterance)
	b.WriteString(`Assess their pronunciation and delivery from the transcript:
1. How closely the spoken words match the reference phrase.
2. Likely clarity of individual sounds given any substituted or dropped words.
3. Overall fluency and intelligibility.

Score 0 to 100, where 100 is a native-like, complete rendition and 0 is unintelligible or unrelated to the phrase.
Give concise, constructive feedback naming specific areas to improve and what was done well.`)
	return b.String()
}

func buildSuggestionMessage(module attempt.ModuleKind, score, totalItems int, difficulty attempt.Difficulty) string {
	performance := fmt.Sprintf("a score of %d/%d correct items", score, totalItems)
	if module == attempt.ModulePronunciation {
		performance = fmt.Sprintf("an average score of %d/100 over %d phrases", score, totalItems)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A learner completed a TOEFL %s practice module at %s difficulty, achieving %s.\n",
		module.Title(), difficulty, performance)
	b.WriteString(`Provide a concise (1-2 sentences) actionable learning suggestion to help them improve or maintain their level.
For a high score, encourage and point toward more advanced topics; for a mid-range score, suggest strategies for improvement; for a low score, suggest foundational work in a supportive tone.
Return ONLY the suggestion as plain text, with no labels.`)
	return b.String()
}

func buildTipsMessage(details []attempt.IncorrectDetail) string {
	var b strings.Builder
	b.WriteString("A learner made the following mistakes on a TOEFL practice module. For each one, generate a concise (1-2 sentences) actionable tip that goes beyond the provided explanation: point out the likely pitfall behind the learner's answer or name a concept to review.\n")
	for i, d := range details {
		fmt.Fprintf(&b, "\nIncorrect Answer %d:\nQuestion ID: %q\nQuestion: %q\nLearner's answer: %q\nCorrect answer: %q\nProvided explanation: %q\n",
			i+1, d.QuestionID, d.QuestionText, d.UserAnswer, d.CorrectAnswer, d.Explanation)
	}
	b.WriteString("\nReturn one tip per question id, keeping the ids exactly as provided. A question may be omitted if no tip can be generated.")
	return b.String()
}
