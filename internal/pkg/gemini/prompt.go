package gemini

import (
	"fmt"
	"strings"
)

func orGeneral(subject string) string {
	if strings.TrimSpace(subject) == "" {
		return "General"
	}
	return subject
}

func answerPrompt(req AnswerRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You are an expert AI tutor specializing in the %s curriculum for %s students.

Instructions:
1. Respond in a way appropriate for %s students
2. Use simple, clear language that matches their comprehension level
3. Provide step-by-step explanations when needed
4. Be encouraging and supportive like a real teacher
5. If this is about %s, focus on that subject area
6. For math/science questions, show step-by-step solutions
7. If asked about inappropriate content, redirect to educational topics
8. Always be helpful, patient, and kind

STRUCTURED RESPONSE FORMAT:
You must format your response using this exact structure:

`+"✅"+` **Answer:** [Provide the main answer here]

`+"\U0001F4D8"+` **Step-by-Step Explanation:**
Step 1: [Clear explanation of first step]
Step 2: [Clear explanation of second step]
Step 3: [Continue as needed]

`+"\U0001F5BC️"+` **Visual Aid:** [Describe any helpful diagram/image, or write "None needed"]

`+"\U0001F50A"+` **Summary:** [One paragraph summary for text-to-speech reading]

Educational Level: %s
Curriculum: %s
Subject Focus: %s

Student Question: %s`,
		req.Curriculum, req.EducationLevel,
		req.EducationLevel,
		orGeneral(req.Subject),
		req.EducationLevel, req.Curriculum, orGeneral(req.Subject),
		req.Question,
	)
	return sb.String()
}

var questionTypeDescriptions = map[string]string{
	"mcq":   "multiple choice questions with 4 options (A, B, C, D)",
	"short": "short answer questions",
	"essay": "essay questions requiring detailed responses",
	"mixed": "a mix of multiple choice questions and short answer questions",
}

// Past papers get KCSE/KCPE framing so generated questions follow the
// national exam format rather than a generic quiz.
func isPastPaper(topic string) bool {
	t := strings.ToLower(topic)
	return strings.Contains(t, "kcse") || strings.Contains(t, "kcpe") || strings.Contains(t, "past paper")
}

func examPrompt(req ExamRequest) string {
	typeDesc, ok := questionTypeDescriptions[req.QuestionType]
	if !ok {
		typeDesc = questionTypeDescriptions["mixed"]
	}

	heading := "EXAM"
	framing := "You are creating an educational exam for %s students following the %s curriculum."
	closing := "Include clear explanations for each answer to help students learn."
	if isPastPaper(req.Topic) {
		heading = "KCSE/KCPE PAST PAPER"
		framing = "You are generating a KCSE/KCPE past paper for %s students following the %s curriculum."
		closing = "Include realistic KCSE/KCPE style questions based on past papers."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, framing, req.EducationLevel, req.Curriculum)
	fmt.Fprintf(&sb, `

Topic: %s
Subject: %s
Number of questions: %d
Question type: %s

Create an exam with the following structure:

`+"\U0001F3AF"+` **%s: %s**
`+"\U0001F4DA"+` **Level:** %s * **Curriculum:** %s
`+"⏰"+` **Time:** %d minutes

**INSTRUCTIONS:**
- Read all questions carefully
- Answer all questions
- Show your working where applicable

**QUESTIONS:**
[Generate exactly %d questions appropriate for %s level]

**ANSWER KEY:**
[Provide detailed answers with explanations for each question]

Make questions progressively challenging but appropriate for the education level.
%s`,
		req.Topic, orGeneral(req.Subject), req.NumQuestions, typeDesc,
		heading, req.Topic,
		req.EducationLevel, req.Curriculum,
		req.NumQuestions*2,
		req.NumQuestions, req.EducationLevel,
		closing,
	)
	return sb.String()
}

func combinedPrompt(req CombinedRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You are creating a comprehensive educational resource for %s students following the %s curriculum.

Topic: %s
Subject: %s

Create a complete educational package with:

`+"\U0001F31F"+` **COMPLETE LEARNING PACKAGE: %s**

`+"\U0001F4D6"+` **Introduction:**
[Brief engaging introduction]

`+"✅"+` **Detailed Explanation:**
[Comprehensive explanation with clear language]

`+"\U0001F4A1"+` **Interactive Examples:**
[Examples students can work through]

`+"\U0001F3AF"+` **Practice Questions:**
[2-3 questions to test understanding]

`+"\U0001F4DA"+` **Summary:**
[Key points to remember]

Make this a complete learning experience appropriate for %s level.`,
		req.EducationLevel, req.Curriculum,
		req.Topic, orGeneral(req.Subject),
		req.Topic,
		req.EducationLevel,
	)
	return sb.String()
}
