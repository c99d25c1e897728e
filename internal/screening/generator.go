package screening

import (
	"context"
	"fmt"

	guidemodel "github.com/chaudhari-piyush/talentlens/guide/model"
	"github.com/chaudhari-piyush/talentlens/internal/llm"
	"github.com/chaudhari-piyush/talentlens/internal/llm/jsonrepair"
)

// GenerateGuide runs a single generation attempt and parses the guide
// through the repair chain. Any failure degrades to the default guide so
// the interviewer always gets a document. The returned error accompanies a
// default guide, never a generated one.
func GenerateGuide(ctx context.Context, client llm.Client, subject Subject, resumeText string) (guidemodel.InterviewGuide, error) {
	prompt := BuildGuidePrompt(resumeText, subject.JobDescription, subject.ExpectedSkills)

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		return guidemodel.DefaultGuide(), fmt.Errorf("guide generate: %w", err)
	}

	var guide guidemodel.InterviewGuide
	if err := jsonrepair.Parse(raw, &guide); err != nil {
		return guidemodel.DefaultGuide(), fmt.Errorf("guide output parse: %w", err)
	}
	if !guide.HasQuestions() {
		return guidemodel.DefaultGuide(), fmt.Errorf("guide output empty")
	}

	return guide, nil
}
