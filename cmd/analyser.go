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
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
)

// Analysis is one analyzer's output: the full typed report for yaml and
// json, plus a tabular projection for tables and emails.
type Analysis struct {
	results [][]string
	summary string
	report  interface{}
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results with more listens than this. Default is all results.
	FilterThreshold int64
}

type Analyser interface {
	GetResults(src analysis.EventSource, r *analysis.TimeRange) (Analysis, error)

	GetName() string
}

type Configurable interface {
	Configure(params map[string]string) error
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if len(a.results) > 1 {
		table := tablewriter.NewWriter(out)
		table.Header(a.results[0])
		for _, row := range a.results[1:] {
			if err := table.Append(row); err != nil {
				return fmt.Sprintf("Error rendering table: %v", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

// printAnalysis is the shared body of the analyzer commands.
func printAnalysis(dbPath string, a Analyser, args []string) error {
	r, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	out, err := a.GetResults(db, r)
	if err != nil {
		return err
	}
	return writeAnalysis(os.Stdout, viper.GetString("format"), out)
}

// truncateRows keeps the header plus at most n rows. n == 0 keeps all.
func truncateRows(results [][]string, n int) [][]string {
	if n <= 0 || len(results) <= n+1 {
		return results
	}
	return results[:n+1]
}

func intParam(params map[string]string, key string, dst *int) error {
	val, ok := params[key]
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid value for '%s': %v", key, err)
	}
	*dst = n
	return nil
}

func boolParam(params map[string]string, key string, dst *bool) error {
	val, ok := params[key]
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("invalid value for '%s': %v", key, err)
	}
	*dst = b
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
