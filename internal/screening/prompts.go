package screening

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Role keywords that mark a job description as technical. Technical roles
// get a coding problem in round one.
var technicalKeywords = []string{
	"developer", "engineer", "programmer", "software", "coding", "programming",
	"backend", "frontend", "fullstack", "data", "ml", "ai", "devops", "architect",
}

// IsTechnicalRole reports whether the job description reads like a
// hands-on technical position.
func IsTechnicalRole(jobDescription string) bool {
	lowered := strings.ToLower(jobDescription)
	for _, kw := range technicalKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// BuildScoringPrompt asks for the three screening metrics as JSON.
func BuildScoringPrompt(resumeText, jobDescription string, expectedSkills []string) string {
	return fmt.Sprintf(`You are an expert technical recruiter. Analyze the following resume against the job description and expected skills.

RESUME:
%s

JOB DESCRIPTION:
%s

EXPECTED SKILLS:
%s

Please evaluate and provide scores for the following metrics (each out of 10):

1. Skills Match Score: How well do the candidate's skills match the expected skills list? Consider both exact matches and related skills.
2. Resume Relevancy Score: How relevant is the candidate's overall experience and background to this role?
3. Job Description Relevancy Score: How well does the candidate's profile align with the specific requirements mentioned in the job description?

Respond in JSON format only:
{
    "skills_match_score": <score>,
    "resume_relevancy_score": <score>,
    "job_description_relevancy_score": <score>,
    "reasoning": {
        "skills_match": "<brief explanation>",
        "resume_relevancy": "<brief explanation>",
        "job_description_relevancy": "<brief explanation>"
    }
}`, resumeText, jobDescription, strings.Join(expectedSkills, ", "))
}

// BuildGuidePrompt asks for the three-round interview guide as JSON. Long
// resumes are truncated so the prompt stays inside the model's sweet spot,
// and technical roles get an extra coding-problem slot in round one.
func BuildGuidePrompt(resumeText, jobDescription string, expectedSkills []string) string {
	technical := IsTechnicalRole(jobDescription)

	if len(resumeText) > 3000 {
		resumeText = resumeText[:3000] + "... [truncated]"
	}

	codingLine := ""
	if technical {
		codingLine = "- 1 coding problem using one of the REQUIRED SKILLS\n"
	}
	codingComma := ""
	codingExample := ""
	if technical {
		codingComma = ","
		codingExample = `
    {
      "question": "Write a function using [REQUIRED SKILL] to solve: [SPECIFIC PROBLEM RELATED TO JOB]",
      "expected_answer": "Code solution demonstrating proficiency with [SKILL] and problem-solving",
      "follow_ups": ["What is the time complexity?", "How would you test this?"],
      "red_flags": ["Cannot write basic code", "No understanding of complexity"]
    }`
	}

	return fmt.Sprintf(`Analyze this resume and create interview questions:

RESUME: %s

JOB: %s

REQUIRED SKILLS FOR THIS JOB: %s

Generate 3 interview rounds with 4-5 questions each:

Round 1 - Technical Screening (4-5 questions):
- 2-3 questions about projects/experience from resume
- 2 questions specifically testing the REQUIRED SKILLS listed above
%s
Round 2 - Deep Technical Dive (4-5 questions):
- 2-3 questions about system design and architecture from their work
- 1-2 questions about advanced concepts in the REQUIRED SKILLS

Round 3 - Behavioral & Skills Assessment (4-5 questions):
- 2-3 behavioral questions about their past projects
- 1-2 scenario questions using the REQUIRED SKILLS

Output JSON with EXACTLY this structure:
{
  "interview_1": [
    {
      "question": "At [COMPANY], you worked on [PROJECT]. How did you implement [SPECIFIC TECH]?",
      "expected_answer": "Should explain specific implementation details and technical decisions",
      "follow_ups": ["What challenges did you face?", "How did you optimize it?"],
      "red_flags": ["Cannot explain basic concepts", "No hands-on experience"]
    },
    {
      "question": "Explain how [REQUIRED SKILL from job] works and give an example from your experience",
      "expected_answer": "Should demonstrate understanding of [SKILL] with real examples",
      "follow_ups": ["What are the limitations?", "When would you not use it?"],
      "red_flags": ["Only theoretical knowledge", "Cannot provide examples"]
    }%s%s
  ],
  "interview_2": [
    {
      "question": "Design a scalable version of [SYSTEM from resume] using [REQUIRED SKILL]",
      "expected_answer": "Should show system design skills and knowledge of [SKILL]",
      "follow_ups": ["How would you handle failures?", "What about security?"],
      "red_flags": ["No consideration of scale", "Unfamiliar with technology"]
    }
  ],
  "interview_3": [
    {
      "question": "Tell me about a time you had to learn [REQUIRED SKILL] quickly for a project",
      "expected_answer": "Should show learning ability and practical application",
      "follow_ups": ["What resources did you use?", "How did you validate your learning?"],
      "red_flags": ["Never had to learn new skills", "No concrete examples"]
    }
  ]
}

CRITICAL:
1. Replace ALL placeholders like [COMPANY], [PROJECT], [REQUIRED SKILL] with ACTUAL values
2. Include questions for EACH required skill: %s
3. Keep text concise - max 100 chars per field
4. Use only double quotes, no single quotes`,
		truncate(resumeText, 2000),
		truncate(jobDescription, 500),
		strings.Join(headSkills(expectedSkills, 10), ", "),
		codingLine,
		codingComma,
		codingExample,
		strings.Join(headSkills(expectedSkills, 5), ", "),
	)
}

// truncate caps s at max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func headSkills(skills []string, max int) []string {
	if len(skills) <= max {
		return skills
	}
	return skills[:max]
}
