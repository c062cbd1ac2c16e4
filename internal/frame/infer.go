// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package frame

import (
	"strconv"
	"strings"
	"time"
)

// inferSampleSize bounds how many non-empty cells drive type inference.
const inferSampleSize = 200

// timeLayouts are tried in order when parsing date/time cells.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// inferType picks the narrowest DType that every sampled non-empty cell
// parses into, preferring bool over int over float over time. An all-empty
// column is a string column.
func inferType(raw []string) DType {
	sample := make([]string, 0, inferSampleSize)
	for _, cell := range raw {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		sample = append(sample, cell)
		if len(sample) == inferSampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return TypeString
	}

	allInt, allFloat, allBool, allTime := true, true, true, true
	for _, cell := range sample {
		if allInt {
			if _, err := parseInt(cell); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := parseFloat(cell); err != nil {
				allFloat = false
			}
		}
		if allBool {
			if _, err := parseBool(cell); err != nil {
				allBool = false
			}
		}
		if allTime {
			if _, err := parseTime(cell); err != nil {
				allTime = false
			}
		}
		if !allInt && !allFloat && !allBool && !allTime {
			return TypeString
		}
	}
	switch {
	case allBool:
		return TypeBool
	case allInt:
		return TypeInt
	case allFloat:
		return TypeFloat
	case allTime:
		return TypeTime
	default:
		return TypeString
	}
}

// parseValue converts one raw cell into the column's type. Empty cells become
// nil for every type except String.
func parseValue(raw string, t DType) (any, error) {
	s := strings.TrimSpace(raw)
	if t == TypeString {
		return s, nil
	}
	if s == "" {
		return nil, nil
	}
	switch t {
	case TypeInt:
		return parseInt(s)
	case TypeFloat:
		return parseFloat(s)
	case TypeBool:
		return parseBool(s)
	case TypeTime:
		return parseTime(s)
	default:
		return s, nil
	}
}

// cleanNumeric strips the decoration real-world tables put on numbers:
// thousands separators, a trailing percent sign, a leading plus, and the
// Unicode minus U+2212.
func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "+")
	return s
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(cleanNumeric(s), 10, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(cleanNumeric(s), 64)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
