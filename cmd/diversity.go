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

var diversityGranularity string
var diversityCmd = &cobra.Command{
	Use:   "diversity [from] [to (optional)]",
	Short: "Measures how spread out listening was across artists",
	Long: `Reports Shannon entropy, Gini coefficient and a 0-100 diversity score per period.
Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'. With no dates, all history is used.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printDiversity(diversityGranularity, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(diversityCmd)

	diversityCmd.Flags().StringVarP(&diversityGranularity, "granularity", "g", string(analysis.DefaultGranularity), "day, week, month or year")
}

func printDiversity(granularity string, args []string) error {
	g, err := analysis.ParseGranularity(granularity, analysis.DefaultGranularity)
	if err != nil {
		return err
	}
	return printAnalysis(viper.GetString("database"), &DiversityAnalyzer{Granularity: g}, args)
}

type DiversityAnalyzer struct {
	Granularity analysis.Granularity
}

func (t *DiversityAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["granularity"]; ok {
		g, err := analysis.ParseGranularity(val, analysis.DefaultGranularity)
		if err != nil {
			return err
		}
		t.Granularity = g
	}
	return nil
}

func (t *DiversityAnalyzer) GetName() string {
	return "Diversity"
}

func (t *DiversityAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	events, err := src.GetEvents(bounds(r))
	if err != nil {
		err = fmt.Errorf("diversity: %w", err)
		return
	}

	g := t.Granularity
	if g == "" {
		g = analysis.DefaultGranularity
	}
	report := analysis.AnalyzeDiversity(events, g)
	out.report = report

	out.results = [][]string{{"Period", "Listens", "Artists", "Entropy", "Gini", "Score"}}
	for _, p := range report.Timeline {
		out.results = append(out.results, []string{
			p.Period,
			strconv.Itoa(p.TotalScrobbles),
			strconv.Itoa(p.UniqueArtists),
			formatFloat(p.ShannonEntropy),
			formatFloat(p.GiniCoefficient),
			formatFloat(p.DiversityScore),
		})
	}

	out.summary = fmt.Sprintf("Average diversity score %.1f from %s; most diverse %s, least diverse %s\n",
		report.Summary.AvgDiversityScore, describeRange(r),
		report.Summary.MostDiversePeriod, report.Summary.LeastDiversePeriod)
	return
}
