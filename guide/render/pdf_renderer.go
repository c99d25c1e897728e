package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/chaudhari-piyush/talentlens/guide/model"
)

var codeLanguageTags = map[string]bool{
	"python":     true,
	"java":       true,
	"javascript": true,
	"go":         true,
	"cpp":        true,
	"c++":        true,
	"sql":        true,
}

// PDFRenderer turns an interview guide into a paginated PDF: a title page
// with a round summary table, then one section per round with questions,
// expected answers, follow-ups, and red flags. Coding problems and fenced
// code spans are typeset in a monospaced face over a shaded background.
type PDFRenderer struct{}

// NewPDFRenderer builds a renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the guide PDF for a candidate.
func (r *PDFRenderer) Render(guide model.InterviewGuide, candidateName string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	var buf bytes.Buffer
	if err := r.compose(doc, guide, candidateName).Output(&buf); err != nil {
		return nil, fmt.Errorf("render guide pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) compose(doc *fpdf.Fpdf, guide model.InterviewGuide, candidateName string) *fpdf.Fpdf {
	doc.SetMargins(20, 19, 20)
	doc.SetAutoPageBreak(true, 19)

	r.titlePage(doc, guide, candidateName)

	for i, key := range model.RoundKeys {
		if i > 0 {
			doc.AddPage()
		}
		r.roundSection(doc, key, guide.Round(key))
	}
	return doc
}

func (r *PDFRenderer) titlePage(doc *fpdf.Fpdf, guide model.InterviewGuide, candidateName string) {
	doc.AddPage()

	doc.SetFont("Helvetica", "B", TitleSize)
	doc.SetTextColor(TitleColor.R, TitleColor.G, TitleColor.B)
	doc.CellFormat(0, 14, "Interview Guide", "", 1, "C", false, 0, "")
	doc.Ln(5)

	doc.SetFont("Helvetica", "B", QuestionSize)
	doc.SetTextColor(HeadingColor.R, HeadingColor.G, HeadingColor.B)
	doc.CellFormat(0, 8, "Candidate: "+candidateName, "", 1, "C", false, 0, "")
	doc.Ln(13)

	r.summaryTable(doc, guide)
}

func (r *PDFRenderer) summaryTable(doc *fpdf.Fpdf, guide model.InterviewGuide) {
	widths := []float64{45, 80, 45}
	headers := []string{"Interview Round", "Focus Area", "Questions"}

	doc.SetFont("Helvetica", "B", 12)
	doc.SetFillColor(TableHeaderFill.R, TableHeaderFill.G, TableHeaderFill.B)
	doc.SetTextColor(TableHeaderText.R, TableHeaderText.G, TableHeaderText.B)
	for i, h := range headers {
		doc.CellFormat(widths[i], 10, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", BodySize)
	doc.SetFillColor(TableRowFill.R, TableRowFill.G, TableRowFill.B)
	doc.SetTextColor(TitleColor.R, TitleColor.G, TitleColor.B)
	for i, key := range model.RoundKeys {
		cells := []string{
			fmt.Sprintf("Round %d", i+1),
			model.RoundFocusAreas[key],
			fmt.Sprintf("%d questions", len(guide.Round(key))),
		}
		for j, cell := range cells {
			doc.CellFormat(widths[j], 9, cell, "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
	}
}

func (r *PDFRenderer) roundSection(doc *fpdf.Fpdf, key string, questions []model.Question) {
	doc.SetFont("Helvetica", "B", HeadingSize)
	doc.SetTextColor(HeadingColor.R, HeadingColor.G, HeadingColor.B)
	doc.MultiCell(0, 9, model.RoundTitles[key], "", "L", false)
	doc.Ln(4)

	for i, q := range questions {
		r.question(doc, i+1, q)
	}
}

func (r *PDFRenderer) question(doc *fpdf.Fpdf, number int, q model.Question) {
	doc.SetFont("Helvetica", "B", QuestionSize)
	doc.SetTextColor(QuestionColor.R, QuestionColor.G, QuestionColor.B)

	if q.IsCodingProblem() {
		doc.MultiCell(0, 7, fmt.Sprintf("Question %d:", number), "", "L", false)
		doc.Ln(1)
		// Paragraphs with sample I/O read better preformatted.
		for _, part := range strings.Split(q.Question, "\n\n") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if looksLikeExample(part) {
				r.codeBlock(doc, part, CodeBackground)
			} else {
				r.bodyParagraph(doc, part)
			}
			doc.Ln(1)
		}
	} else {
		doc.MultiCell(0, 7, fmt.Sprintf("Question %d: %s", number, q.Question), "", "L", false)
		doc.Ln(2)
	}

	r.bodyHeading(doc, "Expected Answer:")
	r.answerText(doc, q.ExpectedAnswer)

	if len(q.FollowUps) > 0 {
		r.bodyHeading(doc, "Follow-up Questions:")
		for _, f := range q.FollowUps {
			r.bodyParagraph(doc, "- "+f)
		}
	}
	if len(q.RedFlags) > 0 {
		r.bodyHeading(doc, "Red Flags to Watch:")
		for _, f := range q.RedFlags {
			r.bodyParagraph(doc, "- "+f)
		}
	}
	doc.Ln(6)
}

// answerText renders an expected answer, typesetting any ``` fenced spans
// as shaded code blocks.
func (r *PDFRenderer) answerText(doc *fpdf.Fpdf, text string) {
	if !strings.Contains(text, "```") {
		r.bodyParagraph(doc, text)
		return
	}
	parts := strings.Split(text, "```")
	for i, part := range parts {
		if i%2 == 1 {
			r.codeBlock(doc, stripLanguageTag(part), CodeBlockFill)
		} else if strings.TrimSpace(part) != "" {
			r.bodyParagraph(doc, strings.TrimSpace(part))
		}
		doc.Ln(1)
	}
}

func (r *PDFRenderer) bodyHeading(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", BodySize)
	doc.SetTextColor(BodyColor.R, BodyColor.G, BodyColor.B)
	doc.MultiCell(0, 6, text, "", "L", false)
}

func (r *PDFRenderer) bodyParagraph(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "", BodySize)
	doc.SetTextColor(BodyColor.R, BodyColor.G, BodyColor.B)
	doc.MultiCell(0, 6, text, "", "L", false)
}

func (r *PDFRenderer) codeBlock(doc *fpdf.Fpdf, code string, fill RGB) {
	doc.SetFont("Courier", "", CodeSize)
	doc.SetTextColor(TitleColor.R, TitleColor.G, TitleColor.B)
	doc.SetFillColor(fill.R, fill.G, fill.B)
	doc.SetDrawColor(CodeBlockBorder.R, CodeBlockBorder.G, CodeBlockBorder.B)
	doc.MultiCell(0, 5, strings.TrimRight(code, "\n"), "1", "L", true)
}

func looksLikeExample(part string) bool {
	for _, marker := range []string{"Example:", "Input:", "Output:", "Constraints:"} {
		if strings.Contains(part, marker) {
			return true
		}
	}
	return false
}

func stripLanguageTag(code string) string {
	code = strings.TrimLeft(code, "\n")
	lines := strings.SplitN(code, "\n", 2)
	if len(lines) == 2 && codeLanguageTags[strings.TrimSpace(strings.ToLower(lines[0]))] {
		return lines[1]
	}
	return code
}
