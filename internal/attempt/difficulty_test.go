package attempt

import "testing"

func TestNextDifficulty_ChoiceModules(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		total   int
		current Difficulty
		want    Difficulty
	}{
		{"promote at 80 percent", 4, 5, Medium, Hard},
		{"promote from easy", 4, 5, Easy, Medium},
		{"hard stays hard", 5, 5, Hard, Hard},
		{"demote at 40 percent", 2, 5, Medium, Easy},
		{"demote from hard one step", 1, 5, Hard, Medium},
		{"easy stays easy", 0, 5, Easy, Easy},
		{"midband unchanged", 3, 5, Medium, Medium},
		{"rounding crosses threshold", 4, 5, Medium, Hard}, // 80 exactly
		{"zero total counts as zero percent", 0, 0, Medium, Easy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDifficulty(ModuleGrammar, tt.score, tt.total, tt.current)
			if got != tt.want {
				t.Errorf("NextDifficulty(%d/%d, %s) = %s, want %s", tt.score, tt.total, tt.current, got, tt.want)
			}
		})
	}
}

func TestNextDifficulty_Pronunciation(t *testing.T) {
	tests := []struct {
		name     string
		average  int
		attempts int
		current  Difficulty
		want     Difficulty
	}{
		{"promote at 75 average", 75, 5, Medium, Hard},
		{"promote from easy", 85, 4, Easy, Medium},
		{"demote at 40 average", 40, 3, Hard, Medium},
		{"no demote without attempts", 0, 0, Medium, Medium},
		{"midband unchanged", 60, 5, Medium, Medium},
		{"hard stays hard", 100, 5, Hard, Hard},
		{"easy stays easy", 10, 5, Easy, Easy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDifficulty(ModulePronunciation, tt.average, tt.attempts, tt.current)
			if got != tt.want {
				t.Errorf("NextDifficulty(avg=%d, n=%d, %s) = %s, want %s", tt.average, tt.attempts, tt.current, got, tt.want)
			}
		})
	}
}

func TestNextDifficulty_IsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := NextDifficulty(ModuleVocabulary, 4, 5, Medium); got != Hard {
			t.Fatalf("call %d: NextDifficulty = %s, want Hard", i, got)
		}
	}
}

func TestNextDifficulty_NeutralModuleUnchanged(t *testing.T) {
	if got := NextDifficulty(ModuleNone, 5, 5, Medium); got != Medium {
		t.Errorf("NextDifficulty(none) = %s, want Medium", got)
	}
}
