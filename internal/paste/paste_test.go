// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package paste

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rich-iannone/sweet-data/internal/frame"
)

// Test tables below are real Wikipedia copy-paste captures; tabs are written
// as \t so the shapes stay visible.

func table(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestCanadianCitiesRankOnOwnLine(t *testing.T) {
	text := table(
		"Rank (2021)\tMunicipality\tProvince\tMunicipal status\tPopulation (2021)\tPopulation (2016)\tChange\tLand area (km2)\tPopulation density (/km2)",
		"1",
		"Toronto\tOntario\tCity\t2,794,356\t2,731,571\t+2.3%\t631.1\t4,427.8",
		"2",
		"Montreal\tQuebec\tVille\t1,762,949\t1,704,694\t+3.4%\t364.74\t4,833.4",
		"3",
		"Calgary\tAlberta\tCity\t1,306,784\t1,239,220\t+5.5%\t820.62\t1,592.4",
		"4",
		"Ottawa\tOntario\tCity\t1,017,449\t934,243\t+8.9%\t2788.2\t364.9",
		"5",
		"Edmonton\tAlberta\tCity\t1,010,899\t933,088\t+8.3%\t765.61\t1,320.4",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 9, res.NumCols)
	assert.True(t, res.HasHeaders)
	assert.True(t, res.WikipediaStyle)
	assert.Equal(t, 5, res.NumRows())

	// Rank lines merge with the city line that follows them.
	first := res.Rows[0]
	assert.Equal(t, "1", first[0])
	assert.Contains(t, first, "Toronto")
	assert.Contains(t, first, "Ontario")
}

func TestMoviesTableTitleDiscarded(t *testing.T) {
	text := table(
		"Highest-grossing films of 2025[12][13]",
		"Rank\tTitle\tDistributor\tWorldwide gross",
		"1\tNe Zha 2\tBeijing Enlight\t$2,217,080,000",
		"2\tLilo & Stitch\tDisney\t$1,019,581,728",
		"3\tA Minecraft Movie\tWarner Bros.\t$955,149,195",
		"9\tDetective Chinatown 1900\tWanda\t$503,214,752[14]",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 4, res.NumCols)
	assert.True(t, res.HasHeaders)
	assert.Equal(t, []string{"Rank", "Title", "Distributor", "Worldwide gross"}, res.Headers)
	assert.Equal(t, 4, res.NumRows())

	// Footnote marker stripped from the gross figure.
	assert.Equal(t, "$503,214,752", res.Rows[3][3])
}

func TestBuildingsTableEmptyLeadingHeader(t *testing.T) {
	text := table(
		"\tName\tHeight[14]\tFloors\tImage\tCity\tCountry\tYear\tComments\tRef",
		"m\tft",
		"1\tBurj Khalifa\t828\t2,717\t163 (+ 2 below ground)\t\tDubai\t United Arab Emirates\t2010\tTallest building in the world since 2009\t[15]",
		"2\tMerdeka 118\t678.9\t2,227\t118 (+ 5 below ground)\t\tKuala Lumpur\t Malaysia\t2024\tTallest building in Southeast Asia\t[16]",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.True(t, res.HasHeaders, "headers should be detected despite the empty first cell")
	assert.Equal(t, 11, res.NumCols)
	assert.Equal(t, 2, res.NumRows())
	assert.Contains(t, res.Rows[0], "Burj Khalifa")
}

func TestWhalesTableMultilineHeaders(t *testing.T) {
	text := table(
		"Rank\tAnimal\tAverage mass",
		"[tonnes]\tMaximum mass",
		"[tonnes]\tAverage total length",
		"[m (ft)]",
		"1\tBlue whale[15]\t110[16]\t190[1]\t24 (79)[17]",
		"2\tNorth Pacific right whale\t60[18]\t120[1]\t15.5 (51)[16]",
		"3\tSouthern right whale\t58[16]\t110[19]\t15.25 (50)[16]",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 5, res.NumCols)
	assert.True(t, res.HasHeaders)
	require.Len(t, res.Headers, 5)
	assert.Equal(t, "Rank", res.Headers[0])
	assert.Equal(t, "Animal", res.Headers[1])
	assert.Contains(t, res.Headers[2], "Average mass")
	assert.Contains(t, res.Headers[3], "Maximum mass")
	assert.Contains(t, res.Headers[4], "Average total length")

	assert.Equal(t, 3, res.NumRows())
	assert.Equal(t, "Blue whale", res.Rows[0][1])
	assert.Equal(t, "110", res.Rows[0][2])
}

func TestFootnoteStripping(t *testing.T) {
	text := table(
		"Country\tCapital\tPopulation[a]\tGDP[b]",
		"France\tParis[c]\t67,391,582\t2,938",
		"Germany\tBerlin\t83,166,711\t4,223",
		"Italy\tRome[d]\t60,317,116\t2,107",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.True(t, res.WikipediaStyle)
	assert.Equal(t, []string{"Country", "Capital", "Population", "GDP"}, res.Headers)
	assert.Equal(t, "Paris", res.Rows[0][1])

	text = table(
		"Rank\tAnimal\tMass",
		"3\tOrinoco crocodile\t380 (840)[citation needed]",
	)
	res, err = Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "380 (840)", res.Rows[0][2])
}

func TestIrregularRowsPadded(t *testing.T) {
	text := table(
		"Name\tAge\tCity\tCountry",
		"John\t25\t\tUSA",
		"\t30\tLondon\tUK",
		"Sarah\t\tParis\tFrance",
		"Mike\t35\tTokyo",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 4, res.NumCols)
	assert.Equal(t, 4, res.NumRows())
	for _, row := range res.Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, "", res.Rows[3][3])
}

func TestAllTextTableHasNoHeaders(t *testing.T) {
	text := table(
		"Common and formal names\tMembership\tSovereignty dispute",
		"Afghanistan\tUN member state\tNone",
		"Albania\tUN member state\tNone",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	// Without numeric data there is nothing to anchor header detection on.
	assert.False(t, res.HasHeaders)
	assert.Equal(t, 3, res.NumRows())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Parse("\n  \n\t\n")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestResultFrame(t *testing.T) {
	text := table(
		"city\tpopulation",
		"Toronto\t2,794,356",
		"Montreal\t1,762,949",
	)

	res, err := Parse(text)
	require.NoError(t, err)

	f, err := res.Frame()
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "population"}, f.ColumnNames())
	assert.Equal(t, frame.TypeInt, f.Columns[1].Type)
	assert.Equal(t, int64(2794356), f.Cell(0, 1))

	// Headerless input gets generated column names.
	res, err = Parse(table("a\tb", "c\td"))
	require.NoError(t, err)
	require.False(t, res.HasHeaders)
	f, err = res.Frame()
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, f.ColumnNames())
	assert.Equal(t, 2, f.NumRows())
}
