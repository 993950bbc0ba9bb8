package service

import (
	"bemanai/internal/tokenize"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// Stage is a step of the analysis pipeline. A run ends in StageAssembled or
// StageRejected.
type Stage int

const (
	StageReceived Stage = iota
	StageTokenized
	StageScored
	StageClassified
	StageAggregated
	StageSuggested
	StageAssembled
	StageRejected
)

var stageNames = []string{
	"received",
	"tokenized",
	"scored",
	"classified",
	"aggregated",
	"suggested",
	"assembled",
	"rejected",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// run tracks the stage of one pipeline invocation.
type run struct {
	op    string
	stage Stage
	debug bool
}

func newRun(op string, debug bool) *run {
	return &run{op: op, stage: StageReceived, debug: debug}
}

func (r *run) advance(s Stage) {
	r.stage = s
	if r.debug {
		log.Printf("[pipeline] %s: %s", r.op, s)
	}
}

// reject ends the run with err, which must be a validation or lookup error.
func (r *run) reject(err *Error) *Error {
	r.advance(StageRejected)
	return err
}

// guard turns a panic into a computation error at the current stage.
func (r *run) guard(errp *error) {
	if p := recover(); p != nil {
		log.Printf("[pipeline] %s: panic at %s: %v", r.op, r.stage, p)
		*errp = Computation(r.stage, fmt.Errorf("panic: %v", p))
	}
}

// checkText rejects empty, whitespace-only and over-long input. limit counts
// runes; emptyMsg and tooLongMsg are the user-facing messages.
func checkText(text string, limit int, emptyMsg, tooLongMsg string) *Error {
	if strings.TrimSpace(text) == "" {
		return Validation("%s", emptyMsg)
	}
	if limit > 0 && utf8.RuneCountInString(text) > limit {
		return Validation(tooLongMsg, limit)
	}
	return nil
}

// prepare applies the preprocessing shared by the decoder and sandbox.
func prepare(text string) string {
	return tokenize.CollapseSpace(tokenize.Restrict(text))
}
