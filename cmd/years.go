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
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Lists the years that have listening data",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printYears(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func printYears(dbPath string) error {
	db, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	years, err := db.GetAvailableYears()
	if err != nil {
		return fmt.Errorf("printYears: %w", err)
	}
	total, err := db.CountEvents()
	if err != nil {
		return fmt.Errorf("printYears: %w", err)
	}

	out := Analysis{
		results: [][]string{{"Year"}},
		summary: fmt.Sprintf("%d listens in %d years\n", total, len(years)),
		report:  years,
	}
	for _, y := range years {
		out.results = append(out.results, []string{strconv.Itoa(y)})
	}
	return writeAnalysis(os.Stdout, viper.GetString("format"), out)
}
