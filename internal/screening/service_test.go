package screening

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	guidemodel "github.com/chaudhari-piyush/talentlens/guide/model"
	"github.com/chaudhari-piyush/talentlens/internal/llm"
	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/object"
)

type fakeRepo struct {
	subject    Subject
	subjectErr error

	statuses  []string
	scores    *ScoreRecord
	guideName string
	guideKey  string
	failStage string
	failMsg   string

	statusErrOn string
	scoresErr   error
}

func (r *fakeRepo) GetSubject(ctx context.Context, candidateID string) (Subject, error) {
	if r.subjectErr != nil {
		return Subject{}, r.subjectErr
	}
	return r.subject, nil
}

func (r *fakeRepo) SetScanStatus(ctx context.Context, candidateID, status string) error {
	if r.statusErrOn != "" && status == r.statusErrOn {
		return errors.New("db down")
	}
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeRepo) SetScanFailure(ctx context.Context, candidateID, stage, message string) error {
	r.failStage = stage
	r.failMsg = message
	return nil
}

func (r *fakeRepo) SetScores(ctx context.Context, candidateID string, scores ScoreRecord) error {
	if r.scoresErr != nil {
		return r.scoresErr
	}
	r.scores = &scores
	return nil
}

func (r *fakeRepo) SetGuide(ctx context.Context, candidateID, fileName, storageKey string) error {
	r.guideName = fileName
	r.guideKey = storageKey
	return nil
}

type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Save(ctx context.Context, ownerID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := ownerID + "/" + fileName
	s.objects[key] = data
	return key, int64(len(data)), "application/octet-stream", nil
}

func (s *fakeStore) SaveWithKey(ctx context.Context, storageKey, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[storageKey] = data
	return int64(len(data)), nil
}

func (s *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, storageKey string) error {
	delete(s.objects, storageKey)
	return nil
}

type fakeRenderer struct {
	err      error
	rendered *guidemodel.InterviewGuide
}

func (f *fakeRenderer) Render(guide guidemodel.InterviewGuide, candidateName string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rendered = &guide
	return []byte("%PDF-1.4 fake"), nil
}

func scanLLM(t *testing.T) llm.Client {
	t.Helper()
	return llm.Func(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Respond in JSON format only") {
			return `{"skills_match_score": 7, "resume_relevancy_score": 8, "job_description_relevancy_score": 9}`, nil
		}
		return `{"interview_1": [{"question": "q1", "expected_answer": "a1"}], "interview_2": [], "interview_3": []}`, nil
	})
}

func newScanService(repo *fakeRepo, store *fakeStore, client llm.Client, renderer GuideRenderer) *Service {
	extract := func(ctx context.Context, _ object.ObjectStore, fileKey string) string {
		if _, ok := store.objects[fileKey]; !ok {
			return ""
		}
		return "ten years of Go and Postgres experience"
	}
	return &Service{Repo: repo, Store: store, LLM: client, Renderer: renderer, Extract: extract}
}

func TestScanAsync_HappyPath(t *testing.T) {
	repo := &fakeRepo{subject: testSubject}
	store := newFakeStore()
	store.objects[testSubject.ResumeKey] = []byte("not a real pdf")
	renderer := &fakeRenderer{}

	svc := newScanService(repo, store, scanLLM(t), renderer)
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	wantStatuses := []string{StatusExtracting, StatusScoring, StatusGenerating, StatusRendering, StatusDone}
	if len(repo.statuses) != len(wantStatuses) {
		t.Fatalf("statuses = %v, want %v", repo.statuses, wantStatuses)
	}
	for i, want := range wantStatuses {
		if repo.statuses[i] != want {
			t.Fatalf("statuses = %v, want %v", repo.statuses, wantStatuses)
		}
	}

	if repo.scores == nil || repo.scores.Fallback {
		t.Fatalf("expected real scores, got %+v", repo.scores)
	}
	if repo.scores.SkillsMatch != 7 || repo.scores.JobDescriptionRelevancy != 9 {
		t.Fatalf("unexpected scores: %+v", repo.scores)
	}

	wantName := "interview_guide_Ada_Lovelace_cand-1.pdf"
	if repo.guideName != wantName {
		t.Fatalf("guide name = %q, want %q", repo.guideName, wantName)
	}
	if _, ok := store.objects[repo.guideKey]; !ok {
		t.Fatalf("guide bytes not stored under %q", repo.guideKey)
	}
	if repo.failStage != "" {
		t.Fatalf("unexpected failure: stage=%s msg=%s", repo.failStage, repo.failMsg)
	}
}

func TestScanAsync_EmptyResumeFailsAtExtracting(t *testing.T) {
	repo := &fakeRepo{subject: testSubject}
	store := newFakeStore() // resume object missing, extraction yields ""
	renderer := &fakeRenderer{}

	svc := newScanService(repo, store, scanLLM(t), renderer)
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	if repo.failStage != StatusExtracting {
		t.Fatalf("fail stage = %q, want %q", repo.failStage, StatusExtracting)
	}
	if repo.scores != nil {
		t.Fatalf("no scores should be written for an unreadable resume, got %+v", repo.scores)
	}
}

func TestScanAsync_NoLLMFailsAtScoring(t *testing.T) {
	repo := &fakeRepo{subject: testSubject}
	store := newFakeStore()
	store.objects[testSubject.ResumeKey] = []byte("pdf")

	svc := newScanService(repo, store, nil, &fakeRenderer{})
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	if repo.failStage != StatusScoring {
		t.Fatalf("fail stage = %q, want %q", repo.failStage, StatusScoring)
	}
	if !strings.Contains(repo.failMsg, "not configured") {
		t.Fatalf("expected configuration error, got %q", repo.failMsg)
	}
}

func TestScanAsync_ProviderErrorsFallBackAndComplete(t *testing.T) {
	repo := &fakeRepo{subject: testSubject}
	store := newFakeStore()
	store.objects[testSubject.ResumeKey] = []byte("pdf")
	renderer := &fakeRenderer{}
	client := llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("rate limited")
	})

	svc := newScanService(repo, store, client, renderer)
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	if repo.failStage != "" {
		t.Fatalf("provider errors should degrade, not fail: stage=%s", repo.failStage)
	}
	if repo.scores == nil || !repo.scores.Fallback {
		t.Fatalf("expected fallback scores, got %+v", repo.scores)
	}
	// The default guide still renders.
	if renderer.rendered == nil || !renderer.rendered.HasQuestions() {
		t.Fatal("expected default guide to be rendered")
	}
	if repo.guideName == "" {
		t.Fatal("expected guide to be persisted")
	}
}

func TestScanAsync_RendererErrorFailsAtRendering(t *testing.T) {
	repo := &fakeRepo{subject: testSubject}
	store := newFakeStore()
	store.objects[testSubject.ResumeKey] = []byte("pdf")
	renderer := &fakeRenderer{err: errors.New("font missing")}

	svc := newScanService(repo, store, scanLLM(t), renderer)
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	if repo.failStage != StatusRendering {
		t.Fatalf("fail stage = %q, want %q", repo.failStage, StatusRendering)
	}
	// Scores persisted before the failure survive it.
	if repo.scores == nil || repo.scores.Fallback {
		t.Fatalf("scores should be persisted before rendering, got %+v", repo.scores)
	}
}

func TestScanAsync_SubjectLookupFailure(t *testing.T) {
	repo := &fakeRepo{subjectErr: errors.New("no such candidate")}
	store := newFakeStore()

	svc := newScanService(repo, store, scanLLM(t), &fakeRenderer{})
	svc.scanAsync(context.Background(), "missing")

	if repo.failStage != StatusCreated {
		t.Fatalf("fail stage = %q, want %q", repo.failStage, StatusCreated)
	}
}

func TestScanAsync_StatusUpdateFailure(t *testing.T) {
	repo := &fakeRepo{subject: testSubject, statusErrOn: StatusGenerating}
	store := newFakeStore()
	store.objects[testSubject.ResumeKey] = []byte("pdf")

	svc := newScanService(repo, store, scanLLM(t), &fakeRenderer{})
	svc.scanAsync(context.Background(), testSubject.CandidateID)

	if repo.failStage != StatusGenerating {
		t.Fatalf("fail stage = %q, want %q", repo.failStage, StatusGenerating)
	}
}

func TestStartScan_RequiresDependencies(t *testing.T) {
	svc := &Service{}
	if err := svc.StartScan(context.Background(), "cand-1"); err == nil {
		t.Fatal("expected missing-dependency error")
	}
	svc = newScanService(&fakeRepo{}, newFakeStore(), scanLLM(t), &fakeRenderer{})
	if err := svc.StartScan(context.Background(), ""); err == nil {
		t.Fatal("expected candidateID validation error")
	}
}

func TestGuideFileName_SanitizesName(t *testing.T) {
	got := GuideFileName("José O'Neil-Smith", "abc123")
	if got != "interview_guide_Jos__O_Neil_Smith_abc123.pdf" {
		t.Fatalf("unexpected file name: %q", got)
	}
}
