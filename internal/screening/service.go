package screening

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	guidemodel "github.com/chaudhari-piyush/talentlens/guide/model"
	"github.com/chaudhari-piyush/talentlens/internal/extract"
	"github.com/chaudhari-piyush/talentlens/internal/llm"
	"github.com/chaudhari-piyush/talentlens/internal/shared/metrics"
	"github.com/chaudhari-piyush/talentlens/internal/shared/storage/object"
	"github.com/chaudhari-piyush/talentlens/internal/shared/telemetry"
	"github.com/chaudhari-piyush/talentlens/internal/shared/util"
)

// GuideRenderer renders an interview guide into document bytes.
type GuideRenderer interface {
	Render(guide guidemodel.InterviewGuide, candidateName string) ([]byte, error)
}

// ExtractFunc pulls resume text from a stored object. The default is
// extract.ExtractText; tests substitute their own.
type ExtractFunc func(ctx context.Context, store object.ObjectStore, fileKey string) string

// Service drives resume scans: extract, score, generate, render. Scans run
// asynchronously; every stage transition is persisted so clients can poll
// progress through the candidate record.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	LLM      llm.Client
	Renderer GuideRenderer
	Extract  ExtractFunc
}

// StartScan kicks off an asynchronous scan for a candidate. The candidate
// must already be persisted with its resume stored.
func (s *Service) StartScan(ctx context.Context, candidateID string) error {
	if candidateID == "" {
		return errors.New("candidateID is required")
	}
	if s.Repo == nil || s.Store == nil || s.Renderer == nil {
		return errors.New("missing scan dependencies")
	}

	go s.scanAsync(backgroundWithRequestID(ctx), candidateID)
	return nil
}

func (s *Service) scanAsync(ctx context.Context, candidateID string) {
	stage := StatusCreated
	defer func() {
		if r := recover(); r != nil {
			s.failScan(ctx, candidateID, stage, fmt.Errorf("panic: %v", r), nil)
		}
	}()

	startedAt := time.Now().UTC()
	metrics.IncScanStarted()

	subject, err := s.Repo.GetSubject(ctx, candidateID)
	if err != nil {
		s.failScan(ctx, candidateID, stage, fmt.Errorf("candidate lookup: %w", err), &startedAt)
		return
	}

	// The extractor itself never errors; a resume that yields no text is
	// an input problem and fails the scan here.
	stage = StatusExtracting
	if err := s.setStatus(ctx, candidateID, subject, StatusCreated, StatusExtracting); err != nil {
		s.failScan(ctx, candidateID, stage, err, &startedAt)
		return
	}
	resumeText := s.extractText(ctx, subject.ResumeKey)
	if resumeText == "" {
		s.failScan(ctx, candidateID, stage, errors.New("no text could be extracted from resume"), &startedAt)
		return
	}

	stage = StatusScoring
	if err := s.setStatus(ctx, candidateID, subject, StatusExtracting, StatusScoring); err != nil {
		s.failScan(ctx, candidateID, stage, err, &startedAt)
		return
	}
	if s.LLM == nil {
		s.failScan(ctx, candidateID, stage, llm.ErrNotConfigured, &startedAt)
		return
	}
	scores, scoreErr := Score(ctx, s.LLM, subject, resumeText)
	if errors.Is(scoreErr, llm.ErrNotConfigured) {
		s.failScan(ctx, candidateID, stage, scoreErr, &startedAt)
		return
	}
	if scoreErr != nil {
		metrics.IncScoreFallback()
		telemetry.Warn("scan.score_fallback", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"candidate_id": candidateID,
			"error":        sanitizeError(scoreErr),
		})
	}
	// Scores land before the guide so they survive a later-stage failure.
	if err := s.Repo.SetScores(ctx, candidateID, scores); err != nil {
		s.failScan(ctx, candidateID, stage, fmt.Errorf("set scores: %w", err), &startedAt)
		return
	}

	stage = StatusGenerating
	if err := s.setStatus(ctx, candidateID, subject, StatusScoring, StatusGenerating); err != nil {
		s.failScan(ctx, candidateID, stage, err, &startedAt)
		return
	}
	guide, genErr := GenerateGuide(ctx, s.LLM, subject, resumeText)
	if errors.Is(genErr, llm.ErrNotConfigured) {
		s.failScan(ctx, candidateID, stage, genErr, &startedAt)
		return
	}
	if genErr != nil {
		metrics.IncGuideFallback()
		telemetry.Warn("scan.guide_fallback", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"candidate_id": candidateID,
			"error":        sanitizeError(genErr),
		})
	}

	stage = StatusRendering
	if err := s.setStatus(ctx, candidateID, subject, StatusGenerating, StatusRendering); err != nil {
		s.failScan(ctx, candidateID, stage, err, &startedAt)
		return
	}
	if guide.HasQuestions() {
		if err := s.renderAndStore(ctx, candidateID, subject, guide); err != nil {
			s.failScan(ctx, candidateID, stage, err, &startedAt)
			return
		}
	}

	stage = StatusDone
	if err := s.setStatus(ctx, candidateID, subject, StatusRendering, StatusDone); err != nil {
		s.failScan(ctx, candidateID, StatusRendering, err, &startedAt)
		return
	}

	completedAt := time.Now().UTC()
	metrics.IncScanCompleted()
	metrics.ObserveScanDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"candidate_id":      candidateID,
		"status":            StatusDone,
		"status_transition": StatusRendering + "->" + StatusDone,
		"score_fallback":    scores.Fallback,
		"guide_fallback":    genErr != nil,
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
}

func (s *Service) extractText(ctx context.Context, fileKey string) string {
	if s.Extract != nil {
		return s.Extract(ctx, s.Store, fileKey)
	}
	return extract.ExtractText(ctx, s.Store, fileKey)
}

func (s *Service) renderAndStore(ctx context.Context, candidateID string, subject Subject, guide guidemodel.InterviewGuide) error {
	data, err := s.Renderer.Render(guide, subject.CandidateName)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	fileName := GuideFileName(subject.CandidateName, candidateID)
	storageKey := "guides/" + candidateID + "/" + fileName
	if _, err := s.Store.SaveWithKey(ctx, storageKey, "application/pdf", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("store guide: %w", err)
	}
	if err := s.Repo.SetGuide(ctx, candidateID, fileName, storageKey); err != nil {
		return fmt.Errorf("set guide: %w", err)
	}
	return nil
}

// GuideFileName builds the download name for a candidate's guide. The
// candidate name is reduced to a safe token.
func GuideFileName(candidateName, candidateID string) string {
	return fmt.Sprintf("interview_guide_%s_%s.pdf", util.SafeNameToken(candidateName), candidateID)
}

func (s *Service) setStatus(ctx context.Context, candidateID string, subject Subject, from, to string) error {
	if err := s.Repo.SetScanStatus(ctx, candidateID, to); err != nil {
		return fmt.Errorf("set status %s: %w", to, err)
	}
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"candidate_id":      candidateID,
		"status":            to,
		"status_transition": from + "->" + to,
	})
	return nil
}

func (s *Service) failScan(ctx context.Context, candidateID, stage string, err error, startedAt *time.Time) {
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.SetScanFailure(context.Background(), candidateID, stage, msg); updateErr != nil {
		telemetry.Error("scan.fail_update", map[string]any{
			"candidate_id": candidateID,
			"stage":        stage,
			"error":        sanitizeError(updateErr),
			"orig_error":   msg,
		})
	}
	metrics.IncScanFailed()
	if startedAt != nil {
		metrics.ObserveScanDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("scan.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"candidate_id":      candidateID,
		"status":            StatusFailed,
		"status_transition": stage + "->" + StatusFailed,
		"failed_stage":      stage,
		"error":             msg,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
