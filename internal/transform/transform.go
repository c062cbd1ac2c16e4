// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

// Package transform implements sweet's pipeline steps: a small verb language
// that is parsed and applied to a frame, with every applied step recorded so
// the pipeline stays inspectable and exportable.
package transform

import (
	"fmt"
	"time"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// =============================================================================
// STEP TYPE
// =============================================================================

// Step records one applied transformation. InputHash fingerprints the frame
// the step was applied to, so a pipeline can tell when its source data
// changed; OutputSchema snapshots the shape the step produced.
type Step struct {
	Expr         string        `json:"expr"`
	Description  string        `json:"description"`
	InputHash    string        `json:"input_hash"`
	OutputSchema []frame.Field `json:"output_schema"`
	AppliedAt    time.Time     `json:"applied_at"`
}

// Apply parses expr, runs it against f, and returns the resulting frame
// together with the step record. f itself is never mutated.
func Apply(f *frame.Frame, expr string) (*frame.Frame, Step, error) {
	op, err := Parse(expr)
	if err != nil {
		return nil, Step{}, err
	}

	out, err := op.Run(f)
	if err != nil {
		return nil, Step{}, err
	}

	step := Step{
		Expr:         op.Canonical(),
		Description:  op.Describe(),
		InputHash:    f.Hash(),
		OutputSchema: out.Schema(),
		AppliedAt:    time.Now().UTC(),
	}
	return out, step, nil
}

// Validate parses expr and checks it against the frame's schema without
// running it, for pre-flight feedback in the command bar.
func Validate(f *frame.Frame, expr string) error {
	op, err := Parse(expr)
	if err != nil {
		return err
	}
	for _, name := range op.columns() {
		if f.ColumnIndex(name) < 0 {
			return fmt.Errorf("%s: column %q: %w", op.verb, name, frame.ErrColumnNotFound)
		}
	}
	return nil
}
