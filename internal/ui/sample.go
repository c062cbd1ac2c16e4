// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package ui

import (
	"github.com/rich-iannone/sweet-data/internal/frame"
)

// sampleHeaders and sampleRows hold the bundled demo dataset loaded by
// :sample and the --demo flag.
var sampleHeaders = []string{"city", "province", "population", "area_km2", "density"}

var sampleRows = [][]string{
	{"Toronto", "Ontario", "2794356", "631.1", "4427.8"},
	{"Montreal", "Quebec", "1762949", "364.74", "4833.5"},
	{"Calgary", "Alberta", "1306784", "820.62", "1592.4"},
	{"Ottawa", "Ontario", "1017449", "2788.2", "364.9"},
	{"Edmonton", "Alberta", "1010899", "765.61", "1320.4"},
	{"Winnipeg", "Manitoba", "749607", "461.78", "1623.3"},
	{"Mississauga", "Ontario", "717961", "292.74", "2452.6"},
	{"Vancouver", "British Columbia", "662248", "115.18", "5749.9"},
	{"Brampton", "Ontario", "656480", "265.89", "2469.0"},
	{"Hamilton", "Ontario", "569353", "1118.31", "509.1"},
	{"Surrey", "British Columbia", "568322", "316.11", "1797.8"},
	{"Quebec City", "Quebec", "549459", "454.28", "1209.5"},
}

// sampleFrame builds the demo dataset.
func sampleFrame() (*frame.Frame, error) {
	return frame.FromRows(sampleHeaders, sampleRows)
}
