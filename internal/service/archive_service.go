package service

import (
	"bemanai/internal/model"
	"bemanai/internal/repository"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// ArchiveService saves copies of analysis results for signed-in users
type ArchiveService struct {
	repo        repository.RecordRepo
	emotion     *EmotionService
	decoder     *DecoderService
	moderation  *ModerationService
	broadcaster Broadcaster
	now         func() time.Time
}

// NewArchiveService creates a new archive service. A nil repo disables it.
func NewArchiveService(
	repo repository.RecordRepo,
	emotion *EmotionService,
	decoder *DecoderService,
	moderation *ModerationService,
) *ArchiveService {
	return &ArchiveService{
		repo:       repo,
		emotion:    emotion,
		decoder:    decoder,
		moderation: moderation,
		now:        time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ArchiveService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Enabled reports whether a store is configured
func (s *ArchiveService) Enabled() bool {
	return s.repo != nil
}

// Save runs the requested analysis and archives the result
func (s *ArchiveService) Save(ctx context.Context, userID string, req model.SaveRecordRequest) (*model.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, ErrArchiveDisabled
	}

	var rec *model.AnalysisRecord
	switch req.Kind {
	case model.RecordEmotion, "":
		res, err := s.emotion.Analyze(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		rec = FromEmotion(res)
	case model.RecordDecode:
		res, err := s.decoder.Decode(ctx, req.Text, nil, string(model.AnalysisComprehensive))
		if err != nil {
			return nil, err
		}
		rec = FromDecode(res)
	case model.RecordModeration:
		res, err := s.moderation.Moderate(ctx, req.Text, "")
		if err != nil {
			return nil, err
		}
		rec = FromModeration(res)
	default:
		return nil, Validation("不支持的记录类型: %s", req.Kind)
	}

	rec.ID = uuid.NewString()
	rec.UserID = userID
	rec.CreatedAt = s.now()
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	log.Printf("record saved: user=%s kind=%s label=%s", userID, rec.Kind, rec.Label)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(userID, "record_saved", rec)
	}
	return rec, nil
}

// List returns the latest records of a user
func (s *ArchiveService) List(ctx context.Context, userID string, limit int) ([]model.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, ErrArchiveDisabled
	}
	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Get returns one record of a user. Records of other users are reported as
// missing.
func (s *ArchiveService) Get(ctx context.Context, userID, id string) (*model.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, ErrArchiveDisabled
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if rec == nil || rec.UserID != userID {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// FromEmotion maps an emotion result to an unsaved record
func FromEmotion(res *model.EmotionResult) *model.AnalysisRecord {
	return &model.AnalysisRecord{
		Kind:        model.RecordEmotion,
		Text:        res.Text,
		Label:       res.Category.String(),
		Score:       res.Intensity,
		Keywords:    res.Keywords,
		Suggestions: res.Suggestions,
	}
}

// FromDecode maps a decode result to an unsaved record
func FromDecode(res *model.DecodeResult) *model.AnalysisRecord {
	rec := &model.AnalysisRecord{
		Kind:        model.RecordDecode,
		Text:        res.Text,
		Keywords:    []string{},
		Suggestions: res.Suggestions,
	}
	if res.RelationshipHealth != nil {
		rec.Label = res.RelationshipHealth.HealthLevel.String()
		rec.Score = res.RelationshipHealth.OverallScore
	}
	if res.EmotionState != nil {
		rec.Keywords = res.EmotionState.EmotionKeywords
	}
	return rec
}

// FromModeration maps a moderation result to an unsaved record
func FromModeration(res *model.ModerationResult) *model.AnalysisRecord {
	return &model.AnalysisRecord{
		Kind:        model.RecordModeration,
		Text:        res.Text,
		Label:       res.RiskLevel.String(),
		Score:       res.RiskScore,
		Keywords:    res.FlaggedKeywords,
		Suggestions: res.Suggestions,
	}
}
