package service

import (
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/tokenize"
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func newEmotionService(t *testing.T, opts Options) *EmotionService {
	t.Helper()
	s, err := NewEmotionService(testCatalog(t), opts)
	if err != nil {
		t.Fatalf("NewEmotionService: %v", err)
	}
	return s
}

func TestAnalyzePositiveScenario(t *testing.T) {
	s := newEmotionService(t, testOptions())
	res, err := s.Analyze(context.Background(), "我今天很开心，工作也很顺利")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Category != classify.Positive {
		t.Errorf("Category = %v, want positive", res.Category)
	}
	if want := []string{"开心", "顺利"}; !reflect.DeepEqual(res.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", res.Keywords, want)
	}
	if res.Intensity <= 0.3 || res.Intensity > 1 {
		t.Errorf("Intensity = %v, want in (0.3, 1]", res.Intensity)
	}
	// 2 of 11 tokens matched.
	if want := 2.0/11*2 + 0.3; math.Abs(res.Intensity-want) > 1e-9 {
		t.Errorf("Intensity = %v, want %v", res.Intensity, want)
	}
	if len(res.Suggestions) != EmotionSuggestions || res.Suggestions[0] != "保持积极心态" {
		t.Errorf("Suggestions = %v", res.Suggestions)
	}
	if res.Scores.Get("positive") != 2 || res.Scores.Get("negative") != 0 {
		t.Errorf("Scores = %v", res.Scores)
	}
	if !res.Success || res.ID == "" || !res.GeneratedAt.Equal(fixedNow) {
		t.Errorf("record metadata = %+v", res)
	}
}

func TestAnalyzeCategories(t *testing.T) {
	s := newEmotionService(t, testOptions())
	tests := []struct {
		text string
		want classify.Emotion
	}{
		{"我很难过也很失望", classify.Negative},
		{"今天很平静", classify.Neutral},
		{"没有情绪词", classify.Neutral},
		{"开心又难过", classify.Positive},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res, err := s.Analyze(context.Background(), tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if res.Category != tt.want {
				t.Errorf("Category = %v, want %v", res.Category, tt.want)
			}
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	s := newEmotionService(t, testOptions())
	first, err := s.Analyze(context.Background(), "我很开心但是有点焦虑")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := s.Analyze(context.Background(), "我很开心但是有点焦虑")
		if err != nil {
			t.Fatal(err)
		}
		got.ID = first.ID
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, got, first)
		}
	}
}

func TestAnalyzeNoTokens(t *testing.T) {
	s := newEmotionService(t, testOptions())
	res, err := s.Analyze(context.Background(), "\xff\xfe")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intensity != 0.5 {
		t.Errorf("Intensity = %v, want 0.5", res.Intensity)
	}
	if res.Category != classify.Neutral || len(res.Keywords) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	s := newEmotionService(t, testOptions())
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"empty", "", "文本内容不能为空"},
		{"whitespace", " \t\n", "文本内容不能为空"},
		{"too long", strings.Repeat("好", 1001), "文本长度超过限制(1000字符)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Analyze(context.Background(), tt.text)
			wantKind(t, err, KindValidation)
			if MessageOf(err) != tt.msg {
				t.Errorf("message = %q, want %q", MessageOf(err), tt.msg)
			}
		})
	}
	if _, err := s.Analyze(context.Background(), strings.Repeat("好", 1000)); err != nil {
		t.Errorf("text at the limit rejected: %v", err)
	}
}

func TestAnalyzeBatchEmptyItem(t *testing.T) {
	s := newEmotionService(t, testOptions())
	batch, err := s.AnalyzeBatch(context.Background(), []string{""})
	if err != nil {
		t.Fatal(err)
	}
	if batch.TotalCount != 1 || batch.FailedCount != 1 || batch.SuccessCount != 0 {
		t.Errorf("tallies = %d/%d/%d", batch.TotalCount, batch.FailedCount, batch.SuccessCount)
	}
	item := batch.Results[0]
	if item.Success || item.ErrorType != string(KindValidation) || item.Category != classify.EmotionUnknown {
		t.Errorf("item = %+v", item)
	}
	if item.Intensity != 0 || len(item.Keywords) != 0 || len(item.Suggestions) != 0 {
		t.Errorf("failed item carries values: %+v", item)
	}
}

func TestAnalyzeBatchOrder(t *testing.T) {
	opts := testOptions()
	opts.Workers = 4
	s := newEmotionService(t, opts)

	texts := make([]string, 60)
	for i := range texts {
		switch i % 3 {
		case 0:
			texts[i] = fmt.Sprintf("第%d条很开心", i)
		case 1:
			texts[i] = fmt.Sprintf("第%d条很难过", i)
		default:
			texts[i] = ""
		}
	}
	batch, err := s.AnalyzeBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Results) != len(texts) {
		t.Fatalf("got %d results", len(batch.Results))
	}
	for i, res := range batch.Results {
		if res.Text != texts[i] {
			t.Fatalf("result %d is for %q, want %q", i, res.Text, texts[i])
		}
	}
	if batch.SuccessCount+batch.FailedCount != batch.TotalCount || batch.FailedCount != 20 {
		t.Errorf("tallies = %d/%d/%d", batch.TotalCount, batch.SuccessCount, batch.FailedCount)
	}
}

func TestAnalyzeBatchLimits(t *testing.T) {
	s := newEmotionService(t, testOptions())
	_, err := s.AnalyzeBatch(context.Background(), nil)
	wantKind(t, err, KindValidation)

	_, err = s.AnalyzeBatch(context.Background(), make([]string, 101))
	wantKind(t, err, KindValidation)
	if MessageOf(err) != "批量处理数量不能超过100条" {
		t.Errorf("message = %q", MessageOf(err))
	}
}

func TestAnalyzePanicIsolated(t *testing.T) {
	opts := testOptions()
	opts.Tokenizer = func(terms []string) tokenize.Tokenizer {
		lex := tokenize.NewLexical(terms, nil)
		return tokenize.Func(func(text string) []string {
			if strings.Contains(text, "boom") {
				panic("tokenizer exploded")
			}
			return lex.Tokenize(text)
		})
	}
	s := newEmotionService(t, opts)

	_, err := s.Analyze(context.Background(), "boom")
	wantKind(t, err, KindComputation)
	var perr *Error
	if !asError(err, &perr) || perr.Stage != StageReceived {
		t.Errorf("stage = %v", perr)
	}

	batch, err := s.AnalyzeBatch(context.Background(), []string{"很开心", "boom", "很难过"})
	if err != nil {
		t.Fatal(err)
	}
	if batch.SuccessCount != 2 || batch.FailedCount != 1 {
		t.Errorf("tallies = %d/%d", batch.SuccessCount, batch.FailedCount)
	}
	if batch.Results[1].ErrorType != string(KindComputation) {
		t.Errorf("item 1 = %+v", batch.Results[1])
	}
	if batch.Results[2].Category != classify.Negative {
		t.Errorf("item 2 = %+v", batch.Results[2])
	}
}

func TestAnalyzeCache(t *testing.T) {
	s := newEmotionService(t, tickingOptions())
	c := newMemoryResultCache()
	trends := &memoryTrends{}
	s.SetCache(c)
	s.SetTrends(trends)

	first, err := s.Analyze(context.Background(), "我很开心")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Analyze(context.Background(), "我很开心")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.emotion) != 1 || c.gets != 2 {
		t.Errorf("cache entries = %d, gets = %d", len(c.emotion), c.gets)
	}
	if second.ID == first.ID {
		t.Error("cached result reused the request id")
	}
	if !second.GeneratedAt.After(first.GeneratedAt) {
		t.Errorf("cached result kept timestamp %v", second.GeneratedAt)
	}
	if second.Category != first.Category || !reflect.DeepEqual(second.Keywords, first.Keywords) {
		t.Errorf("cached result differs: %+v", second)
	}
	if trends.counts["positive"]["开心"] != 2 {
		t.Errorf("trends = %v", trends.counts)
	}
}

func TestAnalyzeCacheErrorsIgnored(t *testing.T) {
	s := newEmotionService(t, testOptions())
	s.SetCache(&failingCache{})
	if _, err := s.Analyze(context.Background(), "我很开心"); err != nil {
		t.Errorf("cache failure leaked: %v", err)
	}
}

func TestAnalyzeRepeatedPoolEntries(t *testing.T) {
	cat := testCatalog(t)
	cat.Emotion.Suggestions["positive"] = catalog.Pool{
		Entries: []string{"保持积极心态", "保持积极心态", "继续享受生活", "分享你的好心情"},
	}
	s, err := NewEmotionService(cat, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Analyze(context.Background(), "我今天很开心")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"保持积极心态", "继续享受生活", "分享你的好心情"}
	if !reflect.DeepEqual(res.Suggestions, want) {
		t.Errorf("Suggestions = %v, want %v", res.Suggestions, want)
	}
}
