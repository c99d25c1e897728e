package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"github.com/chaudhari-piyush/talentlens/guide/model"
)

func TestRenderProducesPDF(t *testing.T) {
	guide := model.DefaultGuide()

	data, err := NewPDFRenderer().Render(guide, "Ada Lovelace")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	// Title page plus one page per round.
	if pages := bytes.Count(data, []byte("/Type /Page\n")); pages < 4 {
		t.Fatalf("expected at least 4 pages, got %d", pages)
	}
}

func TestRenderCodingProblemAndFencedCode(t *testing.T) {
	guide := model.InterviewGuide{
		Interview1: []model.Question{{
			Question: "Coding Problem: Reverse a linked list in Go.\n\n" +
				"Example:\nInput: 1 -> 2 -> 3\nOutput: 3 -> 2 -> 1",
			ExpectedAnswer: "Iterative pointer swap.\n```go\nfunc reverse(n *Node) *Node {\n\treturn nil\n}\n```",
			FollowUps:      []string{"What is the time complexity?"},
			RedFlags:       []string{"Cannot write basic code"},
		}},
	}

	data, err := NewPDFRenderer().Render(guide, "Grace Hopper")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
	// Courier must be registered for the code spans.
	if !bytes.Contains(data, []byte("Courier")) {
		t.Fatal("expected Courier font resource for code blocks")
	}
}

func TestRenderEmptyRoundsStillPaginates(t *testing.T) {
	guide := model.InterviewGuide{
		Interview2: []model.Question{{Question: "Design a URL shortener.", ExpectedAnswer: "Key generation plus storage tradeoffs."}},
	}

	data, err := NewPDFRenderer().Render(guide, "No Round One")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if pages := bytes.Count(data, []byte("/Type /Page\n")); pages != 4 {
		t.Fatalf("expected 4 pages, got %d", pages)
	}
}

func TestSummaryTableCountsQuestionsPerRound(t *testing.T) {
	q := func(text string) model.Question {
		return model.Question{Question: text, ExpectedAnswer: "A solid answer."}
	}
	guide := model.InterviewGuide{
		Interview1: []model.Question{q("Explain slices."), q("Explain maps.")},
		Interview2: []model.Question{q("Design a rate limiter.")},
		Interview3: []model.Question{q("Tell me about a conflict."), q("A failure?"), q("A win?")},
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetCompression(false)
	var buf bytes.Buffer
	if err := NewPDFRenderer().compose(doc, guide, "Katherine Johnson").Output(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, cell := range []string{"(2 questions)", "(1 questions)", "(3 questions)"} {
		if !bytes.Contains(buf.Bytes(), []byte(cell)) {
			t.Fatalf("summary table missing cell %s", cell)
		}
	}
}

func TestStripLanguageTag(t *testing.T) {
	if got := stripLanguageTag("python\nprint(1)"); got != "print(1)" {
		t.Fatalf("unexpected strip result: %q", got)
	}
	if got := stripLanguageTag("x := 1\ny := 2"); !strings.HasPrefix(got, "x := 1") {
		t.Fatalf("code without tag was altered: %q", got)
	}
}
