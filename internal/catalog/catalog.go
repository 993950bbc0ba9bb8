// Package catalog holds the static lexicons, dimensions and template pools
// every pipeline reads. A Catalog is decoded once at start-up and never
// mutated afterwards.
package catalog

// TermSet is a named list of terms: a lexicon, a topic, or a template list.
type TermSet struct {
	Name   string   `yaml:"name" toml:"name" json:"name"`
	Weight float64  `yaml:"weight,omitempty" toml:"weight,omitempty" json:"weight,omitempty"`
	Terms  []string `yaml:"terms" toml:"terms" json:"terms"`
}

// Pool is a suggestion pool before it is compiled into a suggest.Pool.
type Pool struct {
	Policy  string   `yaml:"policy,omitempty" toml:"policy,omitempty" json:"policy,omitempty"`
	Entries []string `yaml:"entries" toml:"entries" json:"entries"`
}

// Emotion configures single-text emotion analysis.
type Emotion struct {
	Lexicons    []TermSet       `yaml:"lexicons" toml:"lexicons" json:"lexicons"`
	DefaultPool string          `yaml:"default_pool" toml:"default_pool" json:"default_pool"`
	Suggestions map[string]Pool `yaml:"suggestions" toml:"suggestions" json:"suggestions"`
}

// Dimension is one relationship-health dimension.
type Dimension struct {
	Name     string   `yaml:"name" toml:"name" json:"name"`
	Weight   float64  `yaml:"weight" toml:"weight" json:"weight"`
	Template string   `yaml:"template" toml:"template" json:"template"`
	Positive []string `yaml:"positive" toml:"positive" json:"positive"`
	Negative []string `yaml:"negative" toml:"negative" json:"negative"`
}

// Decoder configures the relationship decoder.
type Decoder struct {
	Patterns    []TermSet       `yaml:"patterns" toml:"patterns" json:"patterns"`
	Dimensions  []Dimension     `yaml:"dimensions" toml:"dimensions" json:"dimensions"`
	Suggestions map[string]Pool `yaml:"suggestions" toml:"suggestions" json:"suggestions"`
}

// Scenario is one practice scenario of the sandbox.
type Scenario struct {
	ID          string   `yaml:"id" toml:"id" json:"id"`
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Context     string   `yaml:"context" toml:"context" json:"context"`
	Difficulty  string   `yaml:"difficulty" toml:"difficulty" json:"difficulty"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Category groups scenarios.
type Category struct {
	Key         string     `yaml:"key" toml:"key" json:"key"`
	Name        string     `yaml:"name" toml:"name" json:"name"`
	Description string     `yaml:"description" toml:"description" json:"description"`
	Scenarios   []Scenario `yaml:"scenarios" toml:"scenarios" json:"scenarios"`
}

// Skill is a communication skill with practice material.
type Skill struct {
	Key       string   `yaml:"key" toml:"key" json:"key"`
	Tips      []string `yaml:"tips" toml:"tips" json:"tips"`
	Exercises []string `yaml:"exercises" toml:"exercises" json:"exercises"`
}

// Conflict is the conflict-handling guide.
type Conflict struct {
	EscalationPatterns   []string `yaml:"escalation_patterns" toml:"escalation_patterns" json:"escalation_patterns"`
	ResolutionPatterns   []string `yaml:"resolution_patterns" toml:"resolution_patterns" json:"resolution_patterns"`
	PreventionStrategies []string `yaml:"prevention_strategies" toml:"prevention_strategies" json:"prevention_strategies"`
	ImmediateActions     []string `yaml:"immediate_actions" toml:"immediate_actions" json:"immediate_actions"`
	ResolutionSteps      []string `yaml:"resolution_steps" toml:"resolution_steps" json:"resolution_steps"`
	GeneralTips          []string `yaml:"general_tips" toml:"general_tips" json:"general_tips"`
}

// Sandbox configures the communication sandbox.
type Sandbox struct {
	Categories         []Category      `yaml:"categories" toml:"categories" json:"categories"`
	Skills             []Skill         `yaml:"skills" toml:"skills" json:"skills"`
	DailyGoal          string          `yaml:"daily_goal" toml:"daily_goal" json:"daily_goal"`
	ProgressTracking   string          `yaml:"progress_tracking" toml:"progress_tracking" json:"progress_tracking"`
	EmotionLexicons    []TermSet       `yaml:"emotion_lexicons" toml:"emotion_lexicons" json:"emotion_lexicons"`
	StyleLexicons      []TermSet       `yaml:"style_lexicons" toml:"style_lexicons" json:"style_lexicons"`
	ImmediateResponse  map[string]Pool `yaml:"immediate_response" toml:"immediate_response" json:"immediate_response"`
	CommunicationStyle map[string]Pool `yaml:"communication_style" toml:"communication_style" json:"communication_style"`
	ConflictResolution map[string]Pool `yaml:"conflict_resolution" toml:"conflict_resolution" json:"conflict_resolution"`
	LongTermStrategies Pool            `yaml:"long_term_strategies" toml:"long_term_strategies" json:"long_term_strategies"`
	NextSteps          map[string]Pool `yaml:"next_steps" toml:"next_steps" json:"next_steps"`
	Conflict           Conflict        `yaml:"conflict" toml:"conflict" json:"conflict"`
	DialogueTemplates  []TermSet       `yaml:"dialogue_templates" toml:"dialogue_templates" json:"dialogue_templates"`
	TemplateCues       []TermSet       `yaml:"template_cues" toml:"template_cues" json:"template_cues"`
	UsageTips          []string        `yaml:"usage_tips" toml:"usage_tips" json:"usage_tips"`
}

// Reply is one canned dialogue reply. An empty Topic marks the fallback
// reply of its dialogue type.
type Reply struct {
	DialogueType string `yaml:"dialogue_type" toml:"dialogue_type" json:"dialogue_type"`
	Topic        string `yaml:"topic,omitempty" toml:"topic,omitempty" json:"topic,omitempty"`
	ResponseType string `yaml:"response_type" toml:"response_type" json:"response_type"`
	Tone         string `yaml:"tone" toml:"tone" json:"tone"`
	Text         string `yaml:"text" toml:"text" json:"text"`
}

// Dialogue configures the chat replies.
type Dialogue struct {
	Topics      []TermSet       `yaml:"topics" toml:"topics" json:"topics"`
	Replies     []Reply         `yaml:"replies" toml:"replies" json:"replies"`
	DefaultPool string          `yaml:"default_pool" toml:"default_pool" json:"default_pool"`
	FollowUps   map[string]Pool `yaml:"follow_ups" toml:"follow_ups" json:"follow_ups"`
}

// Moderation configures content moderation.
type Moderation struct {
	Terms       []string        `yaml:"terms" toml:"terms" json:"terms"`
	Suggestions map[string]Pool `yaml:"suggestions" toml:"suggestions" json:"suggestions"`
}

// Catalog is the full set of static data.
type Catalog struct {
	Version    string     `yaml:"version" toml:"version" json:"version"`
	Emotion    Emotion    `yaml:"emotion" toml:"emotion" json:"emotion"`
	Decoder    Decoder    `yaml:"decoder" toml:"decoder" json:"decoder"`
	Sandbox    Sandbox    `yaml:"sandbox" toml:"sandbox" json:"sandbox"`
	Dialogue   Dialogue   `yaml:"dialogue" toml:"dialogue" json:"dialogue"`
	Moderation Moderation `yaml:"moderation" toml:"moderation" json:"moderation"`
}

// Scenario finds a scenario by id across every category.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	for _, cat := range c.Sandbox.Categories {
		for _, s := range cat.Scenarios {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Scenario{}, false
}

// Category finds a scenario category by key.
func (c *Catalog) Category(key string) (Category, bool) {
	for _, cat := range c.Sandbox.Categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

// Skill finds a skill by key.
func (c *Catalog) Skill(key string) (Skill, bool) {
	for _, s := range c.Sandbox.Skills {
		if s.Key == key {
			return s, true
		}
	}
	return Skill{}, false
}

// ScenarioCount counts scenarios in every category.
func (c *Catalog) ScenarioCount() int {
	n := 0
	for _, cat := range c.Sandbox.Categories {
		n += len(cat.Scenarios)
	}
	return n
}
