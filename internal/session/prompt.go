package session

import (
	"fmt"
	"strings"
)

const basePrompt = `Kamu adalah Study Squad Bot, tutor belajar yang chill, jujur, tapi supportive.`

var moodTone = map[Mood]string{
	MoodTired:     "User lagi capek. Jawab lebih lembut dan kasih motivasi ringan.",
	MoodEnergetic: "User lagi semangat. Kasih tantangan yang lebih seru.",
	MoodRelaxed:   "User lagi santai. Pakai gaya ngobrol ringan dan sedikit humor.",
}

var modeTask = map[Mode]string{
	ModeQuiz: "Sekarang mode quiz. Buat 1 pertanyaan (pilihan ganda atau jawaban singkat), " +
		"evaluasi jawaban user, lalu kasih skor dan penjelasannya.",
	ModeChat: "Sekarang mode chat. Bantu jelasin materi belajar dengan santai dan nggak ngebosenin.",
}

// SystemPrompt builds the system instruction for the given mood and mode.
// Both are stated explicitly so the model can follow the current one.
func SystemPrompt(mood Mood, mode Mode) string {
	var b strings.Builder

	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Mood user hari ini: %s.\n", mood.Label()))
	b.WriteString(fmt.Sprintf("Mode saat ini: %s.\n", mode))
	b.WriteString("\n")
	b.WriteString(moodTone[mood])
	b.WriteString("\n")
	b.WriteString(modeTask[mode])

	return b.String()
}
