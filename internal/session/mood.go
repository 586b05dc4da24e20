package session

import (
	"fmt"
	"strings"
)

// Mood is the learner's self-reported mood. It only changes the tone of
// the system prompt.
type Mood int

const (
	MoodEnergetic Mood = iota
	MoodTired
	MoodRelaxed
)

// DefaultMood is preselected in the UI.
const DefaultMood = MoodRelaxed

// Moods lists all moods in display order.
var Moods = []Mood{MoodEnergetic, MoodTired, MoodRelaxed}

var moodNames = map[Mood]string{
	MoodEnergetic: "energetic",
	MoodTired:     "tired",
	MoodRelaxed:   "relaxed",
}

var moodLabels = map[Mood]string{
	MoodEnergetic: "🔥 Semangat",
	MoodTired:     "😩 Capek",
	MoodRelaxed:   "😎 Santai",
}

// String returns the identifier, e.g. "relaxed".
func (m Mood) String() string {
	if n, ok := moodNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

// Label returns the display label, e.g. "😎 Santai".
func (m Mood) Label() string {
	return moodLabels[m]
}

// ParseMood accepts an identifier ("tired"), an Indonesian word
// ("capek"), or a full label ("😩 Capek"), case-insensitively.
func ParseMood(s string) (Mood, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Moods {
		label := strings.ToLower(m.Label())
		_, word, _ := strings.Cut(label, " ")
		if key == m.String() || key == label || key == word {
			return m, nil
		}
	}
	return DefaultMood, fmt.Errorf("unknown mood %q", s)
}
