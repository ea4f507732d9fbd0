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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
)

var sessionsGap int
var sessionsMinTracks int
var sessionsNumber int
var sessionsCmd = &cobra.Command{
	Use:   "sessions [from] [to (optional)]",
	Short: "Splits listening history into sessions",
	Long: `A new session starts whenever the gap between two plays is longer than --gap minutes.
Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'. With no dates, all history is used.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		analyzer := &SessionsAnalyzer{
			Options:     analysis.SessionsOptions{GapMinutes: sessionsGap, MinTracks: sessionsMinTracks},
			NumToReturn: sessionsNumber,
		}
		err := printAnalysis(viper.GetString("database"), analyzer, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	defaults := analysis.DefaultSessionsOptions()
	sessionsCmd.Flags().IntVar(&sessionsGap, "gap", defaults.GapMinutes, "minutes of silence that end a session")
	sessionsCmd.Flags().IntVar(&sessionsMinTracks, "min-tracks", defaults.MinTracks, "drop sessions with fewer tracks than this")
	sessionsCmd.Flags().IntVarP(&sessionsNumber, "number", "n", 20, "number of sessions to list in table output")
}

type SessionsAnalyzer struct {
	Options     analysis.SessionsOptions
	NumToReturn int
}

func (t *SessionsAnalyzer) Configure(params map[string]string) error {
	if err := intParam(params, "gap", &t.Options.GapMinutes); err != nil {
		return err
	}
	if err := intParam(params, "min", &t.Options.MinTracks); err != nil {
		return err
	}
	return intParam(params, "n", &t.NumToReturn)
}

func (t *SessionsAnalyzer) GetName() string {
	return "Listening sessions"
}

func (t *SessionsAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	events, err := src.GetEvents(bounds(r))
	if err != nil {
		err = fmt.Errorf("sessions: %w", err)
		return
	}

	report := analysis.AnalyzeSessions(events, t.Options)
	out.report = report

	out.results = [][]string{{"Start", "Minutes", "Tracks", "Artists"}}
	for _, s := range report.Sessions {
		out.results = append(out.results, []string{
			s.StartTime.Format("2006-01-02 15:04"),
			strconv.Itoa(s.DurationMinutes),
			strconv.Itoa(s.TrackCount),
			strconv.Itoa(s.UniqueArtists),
		})
	}
	out.results = truncateRows(out.results, t.NumToReturn)

	out.summary = fmt.Sprintf("Found %d sessions from %s, averaging %.1f minutes and %.1f tracks; longest %d minutes\n",
		report.Summary.TotalSessions, describeRange(r), report.Summary.AvgDurationMinutes,
		report.Summary.AvgTracksPerSession, report.Summary.LongestSessionMinutes)
	return
}
