/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
)

var yearlySessionGap int
var yearlyCompare int
var yearlyNumber int
var yearlyCmd = &cobra.Command{
	Use:   "yearly <year>",
	Short: "Builds a year-in-review report",
	Long: `Summarizes one calendar year: totals, top artists, tracks and albums, listening
patterns, discoveries, diversity and milestones. --compare adds a comparison
against another year.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printYearly(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(yearlyCmd)

	yearlyCmd.Flags().IntVar(&yearlySessionGap, "session-gap", analysis.YearlySessionGapMinutes, "minutes of silence that end a session")
	yearlyCmd.Flags().IntVar(&yearlyCompare, "compare", 0, "also compare against this year")
	yearlyCmd.Flags().IntVarP(&yearlyNumber, "number", "n", 10, "number of top artists to list in table output")
}

func printYearly(yearString string) error {
	year, err := strconv.Atoi(yearString)
	if err != nil {
		return fmt.Errorf("%w: %q", analysis.ErrInvalidYear, yearString)
	}
	analyzer := &YearlyAnalyzer{
		Year:        year,
		Compare:     yearlyCompare,
		Options:     analysis.YearlyOptions{SessionGapMinutes: yearlySessionGap},
		NumToReturn: yearlyNumber,
	}
	return printAnalysis(viper.GetString("database"), analyzer, nil)
}

// yearlyOutput is the yearly report, plus a comparison when one was asked for.
type yearlyOutput struct {
	analysis.YearlyReport `yaml:",inline"`
	Comparison            *analysis.YearComparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

type YearlyAnalyzer struct {
	// Year to report on. Zero means the year the requested range starts in,
	// or last year for all-time requests.
	Year        int
	Compare     int
	Options     analysis.YearlyOptions
	NumToReturn int
}

func (t *YearlyAnalyzer) Configure(params map[string]string) error {
	if err := intParam(params, "year", &t.Year); err != nil {
		return err
	}
	if err := intParam(params, "compare", &t.Compare); err != nil {
		return err
	}
	if err := intParam(params, "gap", &t.Options.SessionGapMinutes); err != nil {
		return err
	}
	return intParam(params, "n", &t.NumToReturn)
}

func (t *YearlyAnalyzer) GetName() string {
	return "Year in review"
}

func (t *YearlyAnalyzer) year(r *analysis.TimeRange) int {
	switch {
	case t.Year != 0:
		return t.Year
	case r != nil:
		return r.Start.Year()
	default:
		return time.Now().UTC().Year() - 1
	}
}

func (t *YearlyAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	year := t.year(r)
	report, err := analysis.GenerateYearlyReport(src, year, t.Options)
	if err != nil {
		return
	}
	result := yearlyOutput{YearlyReport: report}

	if t.Compare != 0 {
		var previous analysis.YearlyReport
		previous, err = analysis.GenerateYearlyReport(src, t.Compare, t.Options)
		if err != nil {
			return
		}
		comparison := analysis.CompareYears(report, previous)
		result.Comparison = &comparison
	}
	out.report = result

	out.results = [][]string{{"Rank", "Artist", "Listens", "Percent"}}
	for _, a := range report.TopContent.TopArtists {
		out.results = append(out.results, []string{
			strconv.Itoa(a.Rank),
			a.Artist,
			strconv.Itoa(a.PlayCount),
			formatFloat(a.Percentage),
		})
	}
	out.results = truncateRows(out.results, t.NumToReturn)

	var summary strings.Builder
	o := report.Overview
	fmt.Fprintf(&summary, "%d: %d listens of %d artists, about %d minutes (%.1f a day). Busiest month %s.\n",
		year, o.TotalScrobbles, o.TotalArtists, o.TotalMinutes, o.AveragePerDay, o.MostActiveMonth)
	for _, m := range report.Milestones {
		fmt.Fprintf(&summary, "%s %s: %s\n", m.Icon, m.Title, m.Description)
	}
	if c := result.Comparison; c != nil {
		fmt.Fprintf(&summary, "Compared to %d: %+d listens (%+.1f%%), %+d artists (%+.1f%%)\n",
			c.PreviousYear, c.ScrobblesChange, c.ScrobblesChangePercent, c.ArtistsChange, c.ArtistsChangePercent)
	}
	out.summary = summary.String()
	return
}
