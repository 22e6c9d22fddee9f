package problemgen

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_MinimalContext(t *testing.T) {
	input := GenerateInput{Field: FieldLogic, Difficulty: 2}
	msg := buildUserMessage(input, DefaultConfig())

	if !strings.Contains(msg, "Field: logic") {
		t.Error("missing field")
	}
	if !strings.Contains(msg, "Difficulty: 2 (Intermediate level - requires some reasoning)") {
		t.Errorf("missing difficulty description in %q", msg)
	}
	if !strings.Contains(msg, "Suggested points: 4") {
		t.Error("missing suggested points")
	}
	if !strings.Contains(msg, "Recent questions in this session:\nNone") {
		t.Error("expected 'None' for recent questions")
	}
}

func TestBuildUserMessage_RecentQuestionsTruncated(t *testing.T) {
	input := GenerateInput{
		Field:      FieldMath,
		Difficulty: 3,
		RecentQuestions: []string{
			"Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7",
		},
	}
	msg := buildUserMessage(input, DefaultConfig())

	if strings.Contains(msg, "Q1") || strings.Contains(msg, "Q2") {
		t.Error("expected oldest questions to be dropped")
	}
	if !strings.Contains(msg, "1. Q3") {
		t.Error("expected Q3 as first listed question")
	}
	if !strings.Contains(msg, "5. Q7") {
		t.Error("expected Q7 as last listed question")
	}
}

func TestBuildDedup_NoLimit(t *testing.T) {
	got := buildDedup([]string{"a", "b"}, 0)
	if got != "1. a\n2. b" {
		t.Errorf("got %q", got)
	}
}

func TestDescribeDifficulty(t *testing.T) {
	if got := describeDifficulty(5); got != "Master level - highly complex, creative thinking required" {
		t.Errorf("got %q", got)
	}
	if got := describeDifficulty(9); got != "Unknown difficulty" {
		t.Errorf("got %q", got)
	}
}
