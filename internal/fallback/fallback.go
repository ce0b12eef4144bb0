// Package fallback provides the deterministic scoring engine used whenever
// the reasoning backend is unconfigured, unreachable, or returns garbage.
// Every function here is pure: the interview flow must always be able to
// produce a question, an evaluation, and a summary without any network call.
package fallback

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-agent/internal/types"
)

// DefaultDomain is the table used when an interview's domain has no
// pre-authored questions of its own.
const DefaultDomain = "Software Engineering"

// genericQuestion covers any (difficulty, type) combination missing from the table.
const genericQuestion = "Tell me about yourself and your experience in this field."

// questionTable maps domain -> difficulty -> question type to a canned question.
var questionTable = map[string]map[string]map[string]string{
	"Software Engineering": {
		types.DifficultyBeginner: {
			types.QuestionTypeTechnical:  "Let's start with: What's the difference between a list and an array in programming, and when would you use each?",
			types.QuestionTypeBehavioral: "Tell me about: Describe a time you had to learn a new programming language or technology. How did you approach it?",
		},
		types.DifficultyIntermediate: {
			types.QuestionTypeTechnical:  "Now let me ask you: How would you design a REST API for a todo application? Walk me through your approach.",
			types.QuestionTypeBehavioral: "Here's a scenario: Describe a challenging bug you encountered. What was your debugging process?",
		},
		types.DifficultyExpert: {
			types.QuestionTypeTechnical:  "Let's dive deeper: How would you architect a system to handle 1 million concurrent users? Consider scalability and performance.",
			types.QuestionTypeBehavioral: "Tell me about: Describe a time you had to make a critical technical decision with incomplete information.",
		},
	},
	"Data Science": {
		types.DifficultyBeginner: {
			types.QuestionTypeTechnical:  "Let's start with: What's the difference between supervised and unsupervised learning? Can you give me examples?",
			types.QuestionTypeBehavioral: "Tell me about: Walk me through a data analysis project you worked on from start to finish.",
		},
		types.DifficultyIntermediate: {
			types.QuestionTypeTechnical:  "Now let me ask: How would you handle missing data in a dataset? What are the different approaches?",
			types.QuestionTypeBehavioral: "Here's a challenge: Describe a time when your analysis revealed unexpected insights. How did you communicate this?",
		},
		types.DifficultyExpert: {
			types.QuestionTypeTechnical:  "Let's explore: How would you build and deploy a real-time recommendation system for millions of users?",
			types.QuestionTypeBehavioral: "Tell me about: Describe a situation where your data analysis directly influenced major business decisions.",
		},
	},
}

// technicalKeywords earn a small additive scoring bonus in Evaluate.
var technicalKeywords = []string{
	"algorithm", "data", "system", "design", "implement", "optimize",
	"performance", "scalability", "architecture", "framework", "database",
	"api", "security",
}

// Question returns a pre-authored question for the given combination.
// Unknown domains use the default domain's table; a combination absent from
// the table degrades to a generic prompt. The result is never empty.
func Question(domain, difficulty, questionType string) string {
	table, ok := questionTable[domain]
	if !ok {
		table = questionTable[DefaultDomain]
	}

	byType, ok := table[difficulty]
	if !ok {
		return genericQuestion
	}

	question, ok := byType[questionType]
	if !ok {
		return genericQuestion
	}
	return question
}

// Evaluate scores an answer purely from its length in words, with a capped
// bonus for domain-agnostic technical vocabulary. The score is always an
// integer in [1,10].
func Evaluate(answer string) *types.Evaluation {
	wordCount := len(strings.Fields(answer))

	var score int
	var feedback string
	switch {
	case wordCount < 15:
		score = 3
		feedback = "Your answer is quite brief. Try to provide more detailed explanations and specific examples."
	case wordCount < 50:
		score = 5
		feedback = "Good start! Your answer covers the basics. Consider adding more detail and specific examples to strengthen your response."
	case wordCount < 100:
		score = 7
		feedback = "Well-structured answer! You demonstrated good understanding. Adding more technical depth or real-world examples would make it even stronger."
	default:
		score = 8
		feedback = "Comprehensive answer! You provided good detail and coverage of the topic. Your explanation was thorough and well-organized."
	}

	// Capped bonus for technical vocabulary
	lower := strings.ToLower(answer)
	bonus := 0.0
	for _, keyword := range technicalKeywords {
		if strings.Contains(lower, keyword) {
			bonus += 0.2
		}
	}
	if bonus > 1.0 {
		bonus = 1.0
	}
	score = clampScore(int(float64(score) + bonus))

	return &types.Evaluation{
		Score:            score,
		DetailedFeedback: feedback,
		Strengths: []string{
			"Provided a substantive response",
			"Demonstrated understanding of the topic",
		},
		ImprovementAreas: []string{
			"Consider adding more specific examples",
			"Provide more technical depth where appropriate",
		},
		FollowUpSuggestion: "Try to include concrete examples from your experience to illustrate your points.",
	}
}

// Summary produces a deterministic end-of-interview assessment from the
// overall score band.
func Summary(overallScore int) *types.Summary {
	var assessment, nextSteps string
	var strengths []string

	switch {
	case overallScore >= 8:
		assessment = "Excellent performance! You demonstrated strong technical knowledge and communication skills across multiple areas."
		strengths = []string{"Strong technical foundation", "Clear communication", "Comprehensive answers"}
		nextSteps = "Continue building on your strengths. Consider exploring advanced topics and leadership opportunities in your field."
	case overallScore >= 6:
		assessment = "Good performance with solid understanding of core concepts. There are opportunities to demonstrate more depth and practical experience."
		strengths = []string{"Good foundational knowledge", "Engaged responses", "Understanding of key concepts"}
		nextSteps = "Focus on gaining more hands-on experience and preparing specific examples that demonstrate your problem-solving abilities."
	case overallScore >= 4:
		assessment = "Average performance showing basic understanding. Focus on strengthening technical knowledge and providing more detailed responses."
		strengths = []string{"Completed all questions", "Basic understanding", "Willingness to engage"}
		nextSteps = "Dedicate time to studying core concepts in your field and practice explaining technical topics clearly and concisely."
	default:
		assessment = "Keep practicing! Focus on building fundamental knowledge and improving communication of technical concepts."
		strengths = []string{"Showed effort", "Completed the interview", "Room for growth"}
		nextSteps = "Start with foundational learning resources and take practice interviews to build confidence and technical knowledge."
	}

	return &types.Summary{
		OverallAssessment: fmt.Sprintf("You completed the interview with a score of %d/10. %s", overallScore, assessment),
		KeyStrengths:      strengths,
		AreasForImprovement: []string{
			"Technical depth",
			"Communication clarity",
			"Specific examples",
			"Problem-solving methodology",
		},
		SpecificRecommendations: []string{
			"Practice explaining technical concepts aloud",
			"Prepare concrete examples from your experience",
			"Review fundamental concepts in your domain",
		},
		NextSteps:          nextSteps,
		IndustryComparison: fmt.Sprintf("This performance represents %s readiness for professional roles in your field.", readinessLabel(overallScore)),
	}
}

// readinessLabel maps an overall score to a coarse readiness descriptor.
func readinessLabel(overallScore int) string {
	labels := []string{"entry-level", "developing", "above-average", "excellent"}
	idx := (overallScore - 1) / 2
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return labels[idx]
}

// clampScore bounds a score to the closed range [1,10].
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
