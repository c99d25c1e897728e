package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/chaudhari-piyush/talentlens/internal/llm"
)

var testSubject = Subject{
	CandidateID:    "cand-1",
	CandidateName:  "Ada Lovelace",
	ResumeKey:      "resumes/cand-1.pdf",
	JobDescription: "Backend engineer",
	ExpectedSkills: []string{"Go", "Postgres"},
}

func TestScore_ParsesCleanOutput(t *testing.T) {
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return `{"skills_match_score": 7.5, "resume_relevancy_score": 8.2, "job_description_relevancy_score": 6.9}`, nil
	})

	scores, err := Score(context.Background(), client, testSubject, "resume text")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if scores.Fallback {
		t.Fatal("clean output should not be a fallback")
	}
	if scores.SkillsMatch != 7.5 || scores.ResumeRelevancy != 8.2 || scores.JobDescriptionRelevancy != 6.9 {
		t.Fatalf("unexpected scores: %+v", scores)
	}
}

func TestScore_RepairsTrailingCommas(t *testing.T) {
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "```json\n" + `{"skills_match_score": 8.0, "resume_relevancy_score": 8.0, "job_description_relevancy_score": 8.0,}` + "\n```", nil
	})

	scores, err := Score(context.Background(), client, testSubject, "resume text")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if scores.SkillsMatch != 8.0 {
		t.Fatalf("unexpected scores: %+v", scores)
	}
}

func TestScore_ProviderErrorFallsBack(t *testing.T) {
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("rate limited")
	})

	scores, err := Score(context.Background(), client, testSubject, "resume text")
	if err == nil {
		t.Fatal("expected informational error")
	}
	if !scores.Fallback {
		t.Fatal("expected fallback record")
	}
	if scores.SkillsMatch != 0 || scores.ResumeRelevancy != 0 || scores.JobDescriptionRelevancy != 0 {
		t.Fatalf("fallback scores should be zero: %+v", scores)
	}
}

func TestScore_UnparseableOutputFallsBack(t *testing.T) {
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "I cannot evaluate this resume.", nil
	})

	scores, err := Score(context.Background(), client, testSubject, "resume text")
	if err == nil {
		t.Fatal("expected informational error")
	}
	if !scores.Fallback {
		t.Fatal("expected fallback record")
	}
}

func TestScore_ClampsOutOfRangeValues(t *testing.T) {
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return `{"skills_match_score": 14, "resume_relevancy_score": -3, "job_description_relevancy_score": 10}`, nil
	})

	scores, err := Score(context.Background(), client, testSubject, "resume text")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if scores.SkillsMatch != 10 || scores.ResumeRelevancy != 0 || scores.JobDescriptionRelevancy != 10 {
		t.Fatalf("unexpected clamped scores: %+v", scores)
	}
}
