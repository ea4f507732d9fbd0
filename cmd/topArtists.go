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

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from] [to (optional)]",
	Short: "Gets the user's top artists",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnalysis(viper.GetString("database"), &TopArtistsAnalyzer{Config: AnalyserConfig{topArtistsNumber, 0}}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t *TopArtistsAnalyzer) Configure(params map[string]string) error {
	if err := intParam(params, "n", &t.Config.NumToReturn); err != nil {
		return err
	}
	var min int
	if err := intParam(params, "min", &min); err != nil {
		return err
	}
	if min > 0 {
		t.Config.FilterThreshold = int64(min)
	}
	return nil
}

func (t *TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t *TopArtistsAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	summary, err := analysis.GeneratePeriodReport(src, describeRange(r), r)
	if err != nil {
		err = fmt.Errorf("top artists: %w", err)
		return
	}

	artists := make([]analysis.TopArtist, 0, len(summary.TopArtists))
	out.results = [][]string{{"Artist", "Listens"}}
	for _, a := range summary.TopArtists {
		if t.Config.NumToReturn != 0 && len(artists) >= t.Config.NumToReturn {
			break
		}
		if t.Config.FilterThreshold != 0 && int64(a.PlayCount) <= t.Config.FilterThreshold {
			continue
		}
		artists = append(artists, a)
		out.results = append(out.results, []string{a.Artist, strconv.Itoa(a.PlayCount)})
	}
	out.report = artists

	out.summary = fmt.Sprintf("Found %d listens from %s\n", summary.TotalScrobbles, describeRange(r))
	return
}
