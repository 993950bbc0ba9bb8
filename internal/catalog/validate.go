package catalog

import (
	"bemanai/internal/classify"
	"bemanai/internal/suggest"
	"errors"
	"fmt"
)

// Difficulties a scenario may declare.
var Difficulties = []string{"easy", "medium", "hard"}

// weightSlack absorbs float error when dimension weights sum to exactly 1.
const weightSlack = 1e-9

// ValidDifficulty reports whether d is a known scenario difficulty.
func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Validate checks every cross reference a pipeline relies on and returns
// all problems found, joined.
func (c *Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	requireSets(add, "emotion.lexicons", c.Emotion.Lexicons, classify.EmotionAxis().Dimensions())
	requireSets(add, "decoder.patterns", c.Decoder.Patterns, classify.PrimaryAxis().Dimensions())
	requireSets(add, "sandbox.emotion_lexicons", c.Sandbox.EmotionLexicons, classify.EmotionAxis().Dimensions())
	requireSets(add, "sandbox.style_lexicons", c.Sandbox.StyleLexicons, classify.StyleAxis().Dimensions())

	checkPools(add, "emotion.suggestions", c.Emotion.Suggestions)
	checkPools(add, "decoder.suggestions", c.Decoder.Suggestions)
	checkPools(add, "sandbox.immediate_response", c.Sandbox.ImmediateResponse)
	checkPools(add, "sandbox.communication_style", c.Sandbox.CommunicationStyle)
	checkPools(add, "sandbox.conflict_resolution", c.Sandbox.ConflictResolution)
	checkPools(add, "sandbox.next_steps", c.Sandbox.NextSteps)
	checkPools(add, "sandbox", map[string]Pool{"long_term_strategies": c.Sandbox.LongTermStrategies})
	checkPools(add, "dialogue.follow_ups", c.Dialogue.FollowUps)
	checkPools(add, "moderation.suggestions", c.Moderation.Suggestions)

	if len(c.Decoder.Dimensions) == 0 {
		add("decoder.dimensions: empty")
	}
	var weights float64
	for _, d := range c.Decoder.Dimensions {
		weights += d.Weight
		if d.Weight <= 0 {
			add("decoder.dimensions %q: weight must be positive", d.Name)
		}
		if len(d.Positive)+len(d.Negative) == 0 {
			add("decoder.dimensions %q: no phrases", d.Name)
		}
		if d.Template != "" {
			if _, ok := c.Decoder.Suggestions[d.Template]; !ok {
				add("decoder.dimensions %q: unknown template pool %q", d.Name, d.Template)
			}
		}
	}
	if weights > 1+weightSlack {
		add("decoder.dimensions: weights sum to %v, above 1", weights)
	}

	ids := make(map[string]bool)
	for _, cat := range c.Sandbox.Categories {
		if cat.Key == "" {
			add("sandbox.categories: empty key")
		}
		for _, s := range cat.Scenarios {
			if ids[s.ID] {
				add("sandbox scenario %q: duplicate id", s.ID)
			}
			ids[s.ID] = true
			if !ValidDifficulty(s.Difficulty) {
				add("sandbox scenario %q: unknown difficulty %q", s.ID, s.Difficulty)
			}
		}
	}
	for _, s := range c.Sandbox.Skills {
		if s.Key == "" {
			add("sandbox.skills: empty key")
		}
	}
	if len(c.Sandbox.DialogueTemplates) == 0 {
		add("sandbox.dialogue_templates: empty")
	}

	for i, r := range c.Dialogue.Replies {
		if _, err := classify.ParseDialogueType(r.DialogueType); err != nil {
			add("dialogue.replies[%d]: %v", i, err)
		}
		if _, err := classify.ParseResponseType(r.ResponseType); err != nil {
			add("dialogue.replies[%d]: %v", i, err)
		}
		if _, err := classify.ParseTone(r.Tone); err != nil {
			add("dialogue.replies[%d]: %v", i, err)
		}
		if r.Text == "" {
			add("dialogue.replies[%d]: empty text", i)
		}
	}
	if len(c.Moderation.Terms) == 0 {
		add("moderation.terms: empty")
	}

	return errors.Join(errs...)
}

func requireSets(add func(string, ...any), where string, sets []TermSet, names []string) {
	have := make(map[string]bool, len(sets))
	for _, s := range sets {
		have[s.Name] = true
	}
	for _, n := range names {
		if !have[n] {
			add("%s: missing %q", where, n)
		}
	}
}

func checkPools(add func(string, ...any), where string, pools map[string]Pool) {
	for key, p := range pools {
		if _, err := suggest.ParsePolicy(p.Policy); err != nil {
			add("%s %q: %v", where, key, err)
		}
		if len(p.Entries) == 0 {
			add("%s %q: no entries", where, key)
		}
	}
}
