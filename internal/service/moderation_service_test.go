package service

import (
	"bemanai/internal/classify"
	"context"
	"reflect"
	"testing"
)

func TestModerate(t *testing.T) {
	s, err := NewModerationService(testCatalog(t), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name        string
		text        string
		level       classify.RiskLevel
		score       float64
		appropriate bool
		flagged     []string
		first       string
	}{
		{"clean", "今天天气很好", classify.RiskLow, 0, true, []string{}, "内容合适，继续保持"},
		{"one", "不要赌博", classify.RiskLow, 0.2, true, []string{"赌博"}, "内容合适，继续保持"},
		{"repeated counts once", "暴力和仇恨，暴力", classify.RiskMedium, 0.4, true, []string{"暴力", "仇恨"}, "内容基本合适，可以适当优化"},
		{"three", "暴力仇恨歧视", classify.RiskHigh, 0.6, false, []string{"暴力", "仇恨", "歧视"}, "内容风险较高，建议修改"},
		{"five", "暴力仇恨歧视诈骗威胁", classify.RiskExtreme, 1, false, []string{"暴力", "仇恨", "歧视", "诈骗", "威胁"}, "内容包含极端敏感信息，建议重新编辑"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Moderate(context.Background(), tt.text, "")
			if err != nil {
				t.Fatal(err)
			}
			if res.RiskLevel != tt.level || res.RiskScore != tt.score || res.IsAppropriate != tt.appropriate {
				t.Errorf("got %v/%v/%v", res.RiskLevel, res.RiskScore, res.IsAppropriate)
			}
			if !reflect.DeepEqual(res.FlaggedKeywords, tt.flagged) {
				t.Errorf("FlaggedKeywords = %v", res.FlaggedKeywords)
			}
			if len(res.Suggestions) == 0 || res.Suggestions[0] != tt.first {
				t.Errorf("Suggestions = %v", res.Suggestions)
			}
			if res.ContentType != "general" || !res.ModerationTime.Equal(fixedNow) {
				t.Errorf("metadata = %q %v", res.ContentType, res.ModerationTime)
			}
		})
	}
}

func TestModerateValidation(t *testing.T) {
	s, err := NewModerationService(testCatalog(t), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Moderate(context.Background(), "hello", "blog")
	wantKind(t, err, KindValidation)
	_, err = s.Moderate(context.Background(), "", "post")
	wantKind(t, err, KindValidation)
	if _, err := s.Moderate(context.Background(), "hello", "comment"); err != nil {
		t.Errorf("comment rejected: %v", err)
	}
}
