package classify

import "encoding/json"

// DialogueType selects the reply table used for a chat message.
type DialogueType int

const (
	DialogueGeneral DialogueType = iota
	DialogueEmotionalSupport
	DialogueAdvice
)

var dialogueTypeNames = []string{"general", "emotional_support", "advice"}

func (d DialogueType) String() string {
	return labelName(dialogueTypeNames, int(d), "DialogueType")
}

func (d DialogueType) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// ParseDialogueType parses a dialogue type; the empty string is general.
func ParseDialogueType(s string) (DialogueType, error) {
	if s == "" {
		return DialogueGeneral, nil
	}
	return parseLabel[DialogueType](dialogueTypeNames, s, "dialogue type")
}

// ResponseType classifies a generated reply.
type ResponseType int

const (
	ResponseAnswer ResponseType = iota
	ResponseQuestion
	ResponseSuggestion
	ResponseComfort
)

var responseTypeNames = []string{"answer", "question", "suggestion", "comfort"}

func (r ResponseType) String() string {
	return labelName(responseTypeNames, int(r), "ResponseType")
}

func (r ResponseType) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *ResponseType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[ResponseType](data, responseTypeNames, "response type")
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseResponseType parses the String form of a ResponseType.
func ParseResponseType(s string) (ResponseType, error) {
	return parseLabel[ResponseType](responseTypeNames, s, "response type")
}

// Tone is the emotional tone of a reply.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSupportive
	ToneEncouraging
	ToneEmpathetic
	ToneFriendly
	ToneWarm
)

var toneNames = []string{"neutral", "supportive", "encouraging", "empathetic", "friendly", "warm"}

func (t Tone) String() string { return labelName(toneNames, int(t), "Tone") }

func (t Tone) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Tone) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[Tone](data, toneNames, "tone")
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTone parses the String form of a Tone.
func ParseTone(s string) (Tone, error) { return parseLabel[Tone](toneNames, s, "tone") }
