package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerPromptIncludesProfileAndFormat(t *testing.T) {
	prompt := answerPrompt(AnswerRequest{
		Question:       "Solve 2x + 4 = 10",
		Subject:        "Mathematics",
		EducationLevel: "Form 2",
		Curriculum:     "8-4-4",
	})

	assert.Contains(t, prompt, "Form 2")
	assert.Contains(t, prompt, "8-4-4")
	assert.Contains(t, prompt, "Mathematics")
	assert.Contains(t, prompt, "Solve 2x + 4 = 10")
	assert.Contains(t, prompt, "✅ **Answer:**")
	assert.Contains(t, prompt, "**Summary:**")
}

func TestAnswerPromptDefaultsSubjectToGeneral(t *testing.T) {
	prompt := answerPrompt(AnswerRequest{Question: "What is gravity?"})
	assert.Contains(t, prompt, "Subject Focus: General")
}

func TestExamPromptRegularTopic(t *testing.T) {
	prompt := examPrompt(ExamRequest{
		Topic:          "Photosynthesis",
		EducationLevel: "Form 3",
		Curriculum:     "8-4-4",
		NumQuestions:   5,
		QuestionType:   "mcq",
	})

	assert.Contains(t, prompt, "Number of questions: 5")
	assert.Contains(t, prompt, "multiple choice questions with 4 options")
	assert.Contains(t, prompt, "Time:** 10 minutes")
	assert.NotContains(t, prompt, "PAST PAPER")
}

func TestExamPromptPastPaperFraming(t *testing.T) {
	for _, topic := range []string{"KCSE Mathematics 2019", "kcpe revision", "Biology past paper"} {
		prompt := examPrompt(ExamRequest{
			Topic:        topic,
			NumQuestions: 10,
			QuestionType: "mixed",
		})
		assert.Contains(t, prompt, "KCSE/KCPE PAST PAPER", "topic %q", topic)
	}
}

func TestExamPromptUnknownTypeFallsBackToMixed(t *testing.T) {
	prompt := examPrompt(ExamRequest{Topic: "Fractions", NumQuestions: 3, QuestionType: "oral"})
	assert.Contains(t, prompt, questionTypeDescriptions["mixed"])
}

func TestCombinedPromptStructure(t *testing.T) {
	prompt := combinedPrompt(CombinedRequest{
		Topic:          "The Water Cycle",
		EducationLevel: "Grade 5",
		Curriculum:     "CBC",
	})

	assert.Contains(t, prompt, "COMPLETE LEARNING PACKAGE: The Water Cycle")
	assert.Contains(t, prompt, "Practice Questions:")
	assert.Contains(t, prompt, "Grade 5")
}

func TestParseStructuredFullResponse(t *testing.T) {
	text := strings.Join([]string{
		"✅ **Answer:** x = 3",
		"",
		"\U0001F4D8 **Step-by-Step Explanation:**",
		"Step 1: Subtract 4 from both sides",
		"Step 2: Divide both sides by 2",
		"",
		"\U0001F5BC️ **Visual Aid:** A balance scale diagram",
		"",
		"\U0001F50A **Summary:** Solving gives x equals three.",
	}, "\n")

	parsed := ParseStructured(text)
	assert.Equal(t, "x = 3", parsed.Answer)
	assert.Contains(t, parsed.Explanation, "Step 1: Subtract 4 from both sides")
	assert.Contains(t, parsed.Explanation, "Step 2: Divide both sides by 2")
	assert.Equal(t, "A balance scale diagram", parsed.VisualAid)
	assert.Equal(t, "Solving gives x equals three.", parsed.Summary)
}

func TestParseStructuredClearsNoneNeededVisualAid(t *testing.T) {
	text := "✅ **Answer:** Paris\n\n\U0001F5BC️ **Visual Aid:** None needed"
	parsed := ParseStructured(text)
	assert.Equal(t, "Paris", parsed.Answer)
	assert.Empty(t, parsed.VisualAid)
}

func TestParseStructuredFallsBackToRawText(t *testing.T) {
	raw := "The capital of Kenya is Nairobi."
	parsed := ParseStructured(raw)
	assert.Equal(t, raw, parsed.Answer)
	assert.Empty(t, parsed.Explanation)
	assert.Empty(t, parsed.Summary)
}
