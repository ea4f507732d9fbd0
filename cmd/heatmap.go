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
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
)

var heatmapTimezone string
var heatmapNormalize bool
var heatmapCmd = &cobra.Command{
	Use:   "heatmap [from] [to (optional)]",
	Short: "Counts plays by weekday and hour",
	Long: `Builds a 7x24 grid of plays, Monday first, in the given --timezone.
With --normalize, counts are divided by the number of weeks in the date range.
Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd' or '30d'. With no dates, all history is used.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printHeatmap(heatmapTimezone, heatmapNormalize, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)

	heatmapCmd.Flags().StringVar(&heatmapTimezone, "timezone", "UTC", "IANA time zone, e.g. Europe/Berlin")
	heatmapCmd.Flags().BoolVar(&heatmapNormalize, "normalize", false, "divide counts by the number of weeks in range")
}

func printHeatmap(timezone string, normalize bool, args []string) error {
	loc, err := analysis.LoadLocation(timezone)
	if err != nil {
		return err
	}
	return printAnalysis(viper.GetString("database"), &HeatmapAnalyzer{Location: loc, Normalize: normalize}, args)
}

type HeatmapAnalyzer struct {
	Location  *time.Location
	Normalize bool
}

func (t *HeatmapAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["tz"]; ok {
		loc, err := analysis.LoadLocation(val)
		if err != nil {
			return err
		}
		t.Location = loc
	}
	return boolParam(params, "normalize", &t.Normalize)
}

func (t *HeatmapAnalyzer) GetName() string {
	return "Listening heatmap"
}

func (t *HeatmapAnalyzer) GetResults(src analysis.EventSource, r *analysis.TimeRange) (out Analysis, err error) {
	events, err := src.GetEvents(bounds(r))
	if err != nil {
		err = fmt.Errorf("heatmap: %w", err)
		return
	}

	report := analysis.AnalyzeHeatmap(events, analysis.HeatmapOptions{
		Location:  t.Location,
		Normalize: t.Normalize,
		Range:     r,
	})
	out.report = report

	header := []string{"Day"}
	for h := 0; h < 24; h++ {
		header = append(header, fmt.Sprintf("%02d", h))
	}
	out.results = [][]string{header}
	for _, day := range report.WeekdayTotals {
		row := []string{day.Name[:3]}
		for _, cell := range report.Heatmap[day.Weekday*24 : (day.Weekday+1)*24] {
			if t.Normalize {
				row = append(row, formatFloat(cell.Normalized))
			} else {
				row = append(row, strconv.Itoa(cell.Count))
			}
		}
		out.results = append(out.results, row)
	}

	peakDay := report.WeekdayTotals[report.PeakDay.DayOfWeek].Name
	out.summary = fmt.Sprintf("%d listens from %s; busiest day %s, busiest hour %02d:00\n",
		report.TotalScrobbles, describeRange(r), peakDay, report.PeakHour.Hour)
	return
}
