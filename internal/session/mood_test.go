package session

import (
	"strings"
	"testing"
)

func TestMoodLabels(t *testing.T) {
	want := []string{"🔥 Semangat", "😩 Capek", "😎 Santai"}
	if len(Moods) != len(want) {
		t.Fatalf("expected %d moods, got %d", len(want), len(Moods))
	}
	for i, m := range Moods {
		if m.Label() != want[i] {
			t.Errorf("Moods[%d].Label() = %q, want %q", i, m.Label(), want[i])
		}
	}
	if DefaultMood != Moods[2] {
		t.Errorf("DefaultMood = %v, want the third option", DefaultMood)
	}
}

func TestParseMood(t *testing.T) {
	tests := []struct {
		in      string
		want    Mood
		wantErr bool
	}{
		{"energetic", MoodEnergetic, false},
		{"Tired", MoodTired, false},
		{"santai", MoodRelaxed, false},
		{"😩 Capek", MoodTired, false},
		{" semangat ", MoodEnergetic, false},
		{"marah", DefaultMood, true},
		{"", DefaultMood, true},
	}
	for _, tt := range tests {
		got, err := ParseMood(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMood(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMood(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		mood     Mood
		mode     Mode
		contains []string
	}{
		{MoodTired, ModeChat, []string{"😩 Capek", "Mode saat ini: chat", "lembut", "jelasin materi"}},
		{MoodEnergetic, ModeQuiz, []string{"🔥 Semangat", "Mode saat ini: quiz", "tantangan", "1 pertanyaan"}},
		{MoodRelaxed, ModeChat, []string{"😎 Santai", "humor"}},
	}
	for _, tt := range tests {
		got := SystemPrompt(tt.mood, tt.mode)
		for _, want := range tt.contains {
			if !strings.Contains(got, want) {
				t.Errorf("SystemPrompt(%v, %v) missing %q:\n%s", tt.mood, tt.mode, want, got)
			}
		}
	}
}
