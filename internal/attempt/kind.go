package attempt

// ModuleKind identifies a practice module.
type ModuleKind string

const (
	// ModuleNone is the neutral/home state; completing it records nothing.
	ModuleNone          ModuleKind = ""
	ModuleGrammar       ModuleKind = "grammar"
	ModuleVocabulary    ModuleKind = "vocabulary"
	ModuleListening     ModuleKind = "listening"
	ModuleReading       ModuleKind = "reading"
	ModulePronunciation ModuleKind = "pronunciation"
)

// Modules lists every practice module in menu order.
var Modules = []ModuleKind{
	ModuleVocabulary,
	ModuleGrammar,
	ModuleListening,
	ModuleReading,
	ModulePronunciation,
}

// Valid reports whether k names a real practice module.
func (k ModuleKind) Valid() bool {
	switch k {
	case ModuleGrammar, ModuleVocabulary, ModuleListening, ModuleReading, ModulePronunciation:
		return true
	}
	return false
}

// Choice reports whether k is a multiple-choice module. Pronunciation is
// scored on a continuous 0-100 scale and carries no per-question detail.
func (k ModuleKind) Choice() bool {
	return k.Valid() && k != ModulePronunciation
}

// Passage reports whether the module presents a passage or script before
// its questions.
func (k ModuleKind) Passage() bool {
	return k == ModuleListening || k == ModuleReading
}

// Title returns the display name for the module.
func (k ModuleKind) Title() string {
	switch k {
	case ModuleGrammar:
		return "Grammar"
	case ModuleVocabulary:
		return "Vocabulary"
	case ModuleListening:
		return "Listening"
	case ModuleReading:
		return "Reading"
	case ModulePronunciation:
		return "Pronunciation"
	}
	return "Home"
}

// ParseModuleKind maps a stored or CLI-supplied name to a ModuleKind.
func ParseModuleKind(s string) (ModuleKind, bool) {
	k := ModuleKind(s)
	if k.Valid() {
		return k, true
	}
	return ModuleNone, false
}

// Difficulty is the tier a practice batch is generated at.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// ParseDifficulty maps a stored or CLI-supplied name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(s)
	if d.Valid() {
		return d, true
	}
	return "", false
}

func (d Difficulty) promote() Difficulty {
	if d == Easy {
		return Medium
	}
	return Hard
}

func (d Difficulty) demote() Difficulty {
	if d == Hard {
		return Medium
	}
	return Easy
}
