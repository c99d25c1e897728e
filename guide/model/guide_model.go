package model

import "strings"

// Round keys as they appear in the generation payload. The order is fixed.
const (
	RoundTechnicalScreening = "interview_1"
	RoundDeepTechnical      = "interview_2"
	RoundBehavioral         = "interview_3"
)

// RoundKeys lists the guide rounds in presentation order.
var RoundKeys = []string{RoundTechnicalScreening, RoundDeepTechnical, RoundBehavioral}

// RoundTitles maps each round key to its printed heading.
var RoundTitles = map[string]string{
	RoundTechnicalScreening: "Interview Round 1 - Technical Screening & Resume Verification",
	RoundDeepTechnical:      "Interview Round 2 - Deep Technical Dive",
	RoundBehavioral:         "Interview Round 3 - Behavioral & Project Leadership",
}

// RoundFocusAreas maps each round key to the focus shown in the summary table.
var RoundFocusAreas = map[string]string{
	RoundTechnicalScreening: "Technical Screening & Resume Verification",
	RoundDeepTechnical:      "Deep Technical Dive",
	RoundBehavioral:         "Behavioral & Project Leadership",
}

// InterviewGuide is the canonical three-round guide payload.
type InterviewGuide struct {
	Interview1 []Question `json:"interview_1"`
	Interview2 []Question `json:"interview_2"`
	Interview3 []Question `json:"interview_3"`
}

// Question is a single interview question with interviewer guidance.
type Question struct {
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expected_answer"`
	FollowUps      []string `json:"follow_ups,omitempty"`
	RedFlags       []string `json:"red_flags,omitempty"`
}

// Round returns the questions for a round key.
func (g InterviewGuide) Round(key string) []Question {
	switch key {
	case RoundTechnicalScreening:
		return g.Interview1
	case RoundDeepTechnical:
		return g.Interview2
	case RoundBehavioral:
		return g.Interview3
	default:
		return nil
	}
}

// HasQuestions reports whether at least one round is non-empty. A guide
// without questions must not be rendered.
func (g InterviewGuide) HasQuestions() bool {
	return len(g.Interview1) > 0 || len(g.Interview2) > 0 || len(g.Interview3) > 0
}

// IsCodingProblem reports whether the question text carries a coding
// exercise that should be typeset as code.
func (q Question) IsCodingProblem() bool {
	return strings.Contains(q.Question, "Coding Problem:")
}

// DefaultGuide is the guide used when generation yields nothing usable:
// one generic question per round so the interviewer still gets a document.
func DefaultGuide() InterviewGuide {
	return InterviewGuide{
		Interview1: []Question{{
			Question:       "Tell me about your experience with the technologies mentioned in your resume.",
			ExpectedAnswer: "Candidate should elaborate on their technical experience.",
			FollowUps:      []string{"Which technology are you most proficient in?"},
			RedFlags:       []string{"Cannot elaborate on resume claims"},
		}},
		Interview2: []Question{{
			Question:       "Walk me through a technical challenge you've solved.",
			ExpectedAnswer: "Detailed explanation of problem-solving approach.",
			FollowUps:      []string{"What alternatives did you consider?"},
			RedFlags:       []string{"No concrete examples"},
		}},
		Interview3: []Question{{
			Question:       "What are your career goals for the next 2-3 years?",
			ExpectedAnswer: "Clear career progression plans.",
			FollowUps:      []string{"How does this role fit into your plans?"},
			RedFlags:       []string{"No clear direction"},
		}},
	}
}
