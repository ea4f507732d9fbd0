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

var transitionsGap int
var transitionsMinCount int
var transitionsIncludeSelf bool
var transitionsNumber int
var transitionsCmd = &cobra.Command{
	Use:   "transitions [from] [to (optional)]",
	Short: "Shows which artists lead to which within a session",
	Long: `Counts consecutive artist changes inside listening sessions and builds an artist graph.
Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'. With no dates, all history is used.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		analyzer := &TransitionsAnalyzer{
			Options: analysis.TransitionsOptions{
				GapMinutes:             transitionsGap,
				MinCount:               transitionsMinCount,
				IncludeSelfTransitions: transitionsIncludeSelf,
			},
			NumToReturn: transitionsNumber,
		}
		err := printAnalysis(viper.GetString("database"), analyzer, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(transitionsCmd)

	defaults := analysis.DefaultTransitionsOptions()
	transitionsCmd.Flags().IntVar(&transitionsGap, "gap", defaults.GapMinutes, "minutes of silence that end a session")
	transitionsCmd.Flags().IntVar(&transitionsMinCount, "min-count", defaults.MinCount, "drop transitions seen fewer times than this")
	transitionsCmd.Flags().BoolVar(&transitionsIncludeSelf, "include-self", defaults.IncludeSelfTransitions, "count an artist following itself")
	transitionsCmd.Flags().IntVarP(&transitionsNumber, "number", "n", 20, "number of transitions to list in table output")
}

type TransitionsAnalyzer struct {
	Options     analysis.TransitionsOptions
	NumToReturn int
}

func (t *TransitionsAnalyzer) Configure(params map[string]string) error {
	if err := intParam(params, "gap", &t.Options.GapMinutes); err != nil {
		return err
	}
	if err := intParam(params, "min", &t.Options.MinCount); err != nil {
		return err
	}
	if err := boolParam(params, "self", &t.Options.IncludeSelfTransitions); err != nil {
		return err
	}
	return intParam(params, "n", &t.NumToReturn)
}

func (t *TransitionsAnalyzer) GetName() string {
	return "Artist transitions"
}

func (t *TransitionsAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	events, err := src.GetEvents(bounds(r))
	if err != nil {
		err = fmt.Errorf("transitions: %w", err)
		return
	}

	report := analysis.AnalyzeTransitions(events, t.Options)
	out.report = report

	out.results = [][]string{{"From", "To", "Count", "Percent"}}
	for _, tr := range report.TopTransitions {
		out.results = append(out.results, []string{
			tr.FromArtist,
			tr.ToArtist,
			strconv.Itoa(tr.Count),
			formatFloat(tr.Percentage),
		})
	}
	out.results = truncateRows(out.results, t.NumToReturn)

	out.summary = fmt.Sprintf("Found %d transitions (%d distinct) from %s; most connected artist: %s\n",
		report.Summary.TotalTransitions, report.Summary.UniqueTransitions, describeRange(r),
		report.Summary.MostConnectedArtist)
	return
}
