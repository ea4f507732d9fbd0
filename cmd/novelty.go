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

var noveltyGranularity string
var noveltyCmd = &cobra.Command{
	Use:   "novelty [from] [to (optional)]",
	Short: "Shows how much of each period was new music",
	Long: `Buckets plays by --granularity and counts first-ever plays of tracks and artists.
Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'. With no dates, all history is used.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printNovelty(noveltyGranularity, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(noveltyCmd)

	noveltyCmd.Flags().StringVarP(&noveltyGranularity, "granularity", "g", string(analysis.DefaultGranularity), "day, week, month or year")
}

func printNovelty(granularity string, args []string) error {
	g, err := analysis.ParseGranularity(granularity, analysis.DefaultGranularity)
	if err != nil {
		return err
	}
	return printAnalysis(viper.GetString("database"), &NoveltyAnalyzer{Granularity: g}, args)
}

type NoveltyAnalyzer struct {
	Granularity analysis.Granularity
}

func (t *NoveltyAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["granularity"]; ok {
		g, err := analysis.ParseGranularity(val, analysis.DefaultGranularity)
		if err != nil {
			return err
		}
		t.Granularity = g
	}
	return nil
}

func (t *NoveltyAnalyzer) GetName() string {
	return "Novelty"
}

// GetResults only considers plays in r, so "new" means new within r.
func (t *NoveltyAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	events, err := src.GetEvents(bounds(r))
	if err != nil {
		err = fmt.Errorf("novelty: %w", err)
		return
	}

	g := t.Granularity
	if g == "" {
		g = analysis.DefaultGranularity
	}
	report := analysis.AnalyzeNovelty(events, g)
	out.report = report

	out.results = [][]string{{"Period", "Listens", "New tracks", "New artists", "Novelty"}}
	for _, p := range report.Timeline {
		out.results = append(out.results, []string{
			p.Period,
			strconv.Itoa(p.TotalScrobbles),
			strconv.Itoa(p.NewTracks),
			strconv.Itoa(p.NewArtists),
			formatFloat(p.NoveltyRatio),
		})
	}

	out.summary = fmt.Sprintf("Average novelty %.2f over %d periods from %s; most exploratory %s\n",
		report.Summary.AvgNoveltyRatio, len(report.Timeline), describeRange(r), report.Summary.MostExploratoryPeriod)
	return
}
