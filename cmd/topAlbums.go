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

var topAlbumsNumber int
var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums [from] [to (optional)]",
	Short: "Gets the user's top albums",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printAnalysis(viper.GetString("database"), &TopAlbumsAnalyzer{Config: AnalyserConfig{topAlbumsNumber, 0}}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topAlbumsCmd)

	topAlbumsCmd.Flags().IntVarP(&topAlbumsNumber, "number", "n", 10, "number of results to return")
}

type TopAlbumsAnalyzer struct {
	Config AnalyserConfig
}

func (t *TopAlbumsAnalyzer) Configure(params map[string]string) error {
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

func (t *TopAlbumsAnalyzer) GetName() string {
	return "Top albums"
}

// GetResults skips plays without album metadata.
func (t *TopAlbumsAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	summary, err := analysis.GeneratePeriodReport(src, describeRange(r), r)
	if err != nil {
		err = fmt.Errorf("top albums: %w", err)
		return
	}

	albums := make([]analysis.TopAlbum, 0, len(summary.TopAlbums))
	out.results = [][]string{{"Artist", "Album", "Listens"}}
	for _, a := range summary.TopAlbums {
		if t.Config.NumToReturn != 0 && len(albums) >= t.Config.NumToReturn {
			break
		}
		if t.Config.FilterThreshold != 0 && int64(a.PlayCount) <= t.Config.FilterThreshold {
			continue
		}
		albums = append(albums, a)
		out.results = append(out.results, []string{a.Artist, a.Album, strconv.Itoa(a.PlayCount)})
	}
	out.report = albums

	out.summary = fmt.Sprintf("Found %d listens from %s\n", summary.TotalScrobbles, describeRange(r))
	return
}
