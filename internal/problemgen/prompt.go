package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert question generator for IQ tests. Generate challenging, fair, and educational questions.

Rules:
- Generate a single question for the given field and difficulty level (1-5 scale).
- The question must be self-contained and answerable in a few words or a number.
- Use "numeric" type when the answer is a single number. Put only the number in correct_answer.
- Use "multiple-choice" type for conceptual or identification questions. Provide 4 options, exactly one correct, and copy the correct option verbatim into correct_answer.
- Use "free-text" type when the answer is a short word or phrase.
- For numeric and free-text questions the options array must be empty.
- The explanation should state briefly why the answer is correct.
- Award points between 1 and 10; harder questions deserve more points.
- Make it engaging and educational.
- Do not repeat any question from the "recent questions" list.`

// difficultyDescriptions describes each tier for the prompt.
var difficultyDescriptions = map[int]string{
	1: "Basic level - fundamental concepts",
	2: "Intermediate level - requires some reasoning",
	3: "Advanced level - complex problem solving",
	4: "Expert level - advanced concepts and multi-step reasoning",
	5: "Master level - highly complex, creative thinking required",
}

// describeDifficulty returns the prompt description of a tier.
func describeDifficulty(d int) string {
	if desc, ok := difficultyDescriptions[d]; ok {
		return desc
	}
	return "Unknown difficulty"
}

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Field: %s\n", input.Field)
	fmt.Fprintf(&b, "Difficulty: %d (%s)\n", input.Difficulty, describeDifficulty(input.Difficulty))
	fmt.Fprintf(&b, "Suggested points: %d\n", PointsFor(input.Difficulty))

	b.WriteString("\nRecent questions in this session:\n")
	b.WriteString(buildDedup(input.RecentQuestions, cfg.MaxRecentQuestions))

	return b.String()
}
