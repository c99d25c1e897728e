package screening

import (
	"context"
	"fmt"

	"github.com/chaudhari-piyush/talentlens/internal/llm"
	"github.com/chaudhari-piyush/talentlens/internal/llm/jsonrepair"
)

type scorePayload struct {
	SkillsMatch             float64 `json:"skills_match_score"`
	ResumeRelevancy         float64 `json:"resume_relevancy_score"`
	JobDescriptionRelevancy float64 `json:"job_description_relevancy_score"`
}

// Score runs a single scoring attempt against the provider. Any failure,
// from the call itself to unrecoverable output, degrades to the fallback
// record so the scan can keep moving. The returned error is informational
// and accompanies a fallback record, never a usable one.
func Score(ctx context.Context, client llm.Client, subject Subject, resumeText string) (ScoreRecord, error) {
	prompt := BuildScoringPrompt(resumeText, subject.JobDescription, subject.ExpectedSkills)

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		return FallbackScores(), fmt.Errorf("scoring generate: %w", err)
	}

	var payload scorePayload
	if err := jsonrepair.Parse(raw, &payload); err != nil {
		return FallbackScores(), fmt.Errorf("scoring output parse: %w", err)
	}

	return ScoreRecord{
		SkillsMatch:             clampScore(payload.SkillsMatch),
		ResumeRelevancy:         clampScore(payload.ResumeRelevancy),
		JobDescriptionRelevancy: clampScore(payload.JobDescriptionRelevancy),
	}, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
