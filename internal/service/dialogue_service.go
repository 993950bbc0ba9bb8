package service

import (
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/lexicon"
	"bemanai/internal/model"
	"bemanai/internal/score"
	"bemanai/internal/suggest"
	"bemanai/internal/tokenize"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FollowUpQuestions caps the follow-up questions of a reply.
const FollowUpQuestions = 3

const (
	msgMessageEmpty   = "消息内容不能为空"
	msgMessageTooLong = "消息长度超过限制(%d字符)"
)

// Confidence of a chat reply, in tenths.
const (
	baseConfidence = 7
	longMessage    = 50
	shortMessage   = 10
)

type reply struct {
	topic        string
	responseType classify.ResponseType
	tone         classify.Tone
	text         string
}

// DialogueService produces canned chat replies chosen by topic
type DialogueService struct {
	topics    *lexicon.Registry
	tokenizer tokenize.Tokenizer
	replies   map[classify.DialogueType][]reply
	followUps *suggest.Selector
	opts      Options
	version   string
}

// NewDialogueService creates a new dialogue service from the catalog
func NewDialogueService(cat *catalog.Catalog, opts Options) (*DialogueService, error) {
	topics, err := catalog.Registry(cat.Dialogue.Topics)
	if err != nil {
		return nil, fmt.Errorf("dialogue topics: %w", err)
	}
	followUps, err := catalog.Selector(cat.Dialogue.FollowUps, cat.Dialogue.DefaultPool)
	if err != nil {
		return nil, fmt.Errorf("dialogue follow-ups: %w", err)
	}

	replies := make(map[classify.DialogueType][]reply)
	for i, r := range cat.Dialogue.Replies {
		dt, err := classify.ParseDialogueType(r.DialogueType)
		if err != nil {
			return nil, fmt.Errorf("dialogue reply %d: %w", i, err)
		}
		rt, err := classify.ParseResponseType(r.ResponseType)
		if err != nil {
			return nil, fmt.Errorf("dialogue reply %d: %w", i, err)
		}
		tone, err := classify.ParseTone(r.Tone)
		if err != nil {
			return nil, fmt.Errorf("dialogue reply %d: %w", i, err)
		}
		replies[dt] = append(replies[dt], reply{topic: r.Topic, responseType: rt, tone: tone, text: r.Text})
	}

	return &DialogueService{
		topics:    topics,
		tokenizer: opts.tokenizer(topics.Terms()),
		replies:   replies,
		followUps: followUps,
		opts:      opts,
		version:   cat.Version,
	}, nil
}

// Chat answers one message
func (s *DialogueService) Chat(ctx context.Context, req model.ChatRequest) (res *model.ChatResponse, err error) {
	r := newRun("chat", s.opts.Debug)
	defer r.guard(&err)

	if verr := checkText(req.Message, s.opts.Limits.MaxDialogueLength, msgMessageEmpty, msgMessageTooLong); verr != nil {
		return nil, r.reject(verr)
	}
	dt, perr := classify.ParseDialogueType(req.DialogueType)
	if perr != nil {
		return nil, r.reject(Validation("不支持的对话类型: %s", req.DialogueType))
	}

	tokens := s.tokenizer.Tokenize(strings.ToLower(req.Message))
	r.advance(StageTokenized)

	topics := score.Score(tokens, s.topics)
	r.advance(StageScored)

	chosen, ok := s.pick(dt, topics)
	if !ok {
		return nil, Computation(r.stage, errors.New("no reply for dialogue type "+dt.String()))
	}
	r.advance(StageClassified)

	followUps := s.followUps.Select(chosen.responseType.String(), FollowUpQuestions)
	r.advance(StageSuggested)

	res = &model.ChatResponse{
		Message:           req.Message,
		Response:          chosen.text,
		ResponseType:      chosen.responseType,
		Confidence:        chatConfidence(req.Message, len(req.Context) > 0),
		FollowUpQuestions: followUps,
		EmotionalTone:     chosen.tone,
	}
	r.advance(StageAssembled)
	return res, nil
}

// pick returns the first reply whose topic was mentioned, else the dialogue
// type's topic-less reply.
func (s *DialogueService) pick(dt classify.DialogueType, topics score.Vector) (reply, bool) {
	var fallback *reply
	for i, rp := range s.replies[dt] {
		if rp.topic == "" {
			if fallback == nil {
				fallback = &s.replies[dt][i]
			}
			continue
		}
		if topics.Get(rp.topic) > 0 {
			return rp, true
		}
	}
	if fallback == nil {
		return reply{}, false
	}
	return *fallback, true
}

func chatConfidence(message string, hasContext bool) float64 {
	tenths := baseConfidence
	n := utf8.RuneCountInString(message)
	if n > longMessage {
		tenths++
	}
	if n < shortMessage {
		tenths--
	}
	if hasContext {
		tenths++
	}
	tenths = max(0, min(10, tenths))
	return float64(tenths) / 10
}

// Info describes the dialogue surface
func (s *DialogueService) Info() model.ServiceInfo {
	return model.ServiceInfo{
		Service:            "dialogue-system",
		Version:            s.version,
		Description:        "基于话题词典的对话服务",
		SupportedLanguages: []string{"zh", "en"},
		MaxTextLength:      s.opts.Limits.MaxDialogueLength,
		Features:           []string{"general", "emotional_support", "advice", "follow_up_questions"},
		Details:            map[string]any{"topics": s.topics.Dimensions()},
	}
}
