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
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
)

var reportCmd = &cobra.Command{
	Use:   "report <alltime|lastmonth|yyyy|yyyy-mm>",
	Short: "Generates a top artists, tracks and albums summary",
	Long:  `Summarizes one period of listening history. Output defaults to YAML; see --format.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

var monthPeriod = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
var yearPeriod = regexp.MustCompile(`^\d{4}$`)

// parsePeriod resolves a report period name. alltime is a nil range.
func parsePeriod(period string, now time.Time) (*analysis.TimeRange, error) {
	switch {
	case period == "alltime":
		return nil, nil

	case period == "lastmonth":
		r := analysis.LastMonthRange(now)
		return &r, nil

	case yearPeriod.MatchString(period):
		year, _ := strconv.Atoi(period)
		r, err := analysis.YearRange(year)
		if err != nil {
			return nil, err
		}
		return &r, nil

	case monthPeriod.MatchString(period):
		m := monthPeriod.FindStringSubmatch(period)
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		r, err := analysis.MonthRange(year, month)
		if err != nil {
			return nil, err
		}
		return &r, nil
	}
	return nil, fmt.Errorf("Invalid period: %q", period)
}

func runReport(period string) error {
	r, err := parsePeriod(period, time.Now())
	if err != nil {
		return err
	}

	db, err := openStore(viper.GetString("database"))
	if err != nil {
		return err
	}
	defer db.Close()

	out, err := (&PeriodAnalyzer{Period: period}).GetResults(db, r)
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}
	return writeAnalysis(os.Stdout, viper.GetString("format"), out)
}

type PeriodAnalyzer struct {
	// Period labels the report. Empty means the range itself.
	Period string
}

func (t *PeriodAnalyzer) GetName() string {
	return "Listening summary"
}

func (t *PeriodAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	period := t.Period
	if period == "" {
		period = describeRange(r)
	}

	report, err := analysis.GeneratePeriodReport(src, period, r)
	if err != nil {
		return
	}
	out.report = report

	out.results = [][]string{{"Rank", "Artist", "Listens"}}
	for _, a := range report.TopArtists {
		out.results = append(out.results, []string{strconv.Itoa(a.Rank), a.Artist, strconv.Itoa(a.PlayCount)})
	}
	out.results = truncateRows(out.results, 10)

	top := "nothing"
	if len(report.TopTracks) > 0 {
		top = fmt.Sprintf("%s by %s", report.TopTracks[0].Track, report.TopTracks[0].Artist)
	}
	out.summary = fmt.Sprintf("%s: %d listens, top track %s\n", period, report.TotalScrobbles, top)
	return
}
