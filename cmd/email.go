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
	"html"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/footprints/internal/analysis"
	"github.com/ademuri/footprints/internal/logging"
)

type SendEmailConfig struct {
	DbPath         string
	User           string
	From           string
	To             string
	ReportName     string
	Types          []string
	Params         []map[string]string
	DryRun         bool
	SendgridAPIKey string
	Range          *analysis.TimeRange
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <analysis_name...> [date] [date]",
	Short: "Sends an email report",
	Long: `Emails history to the specified user.
  <analysis_name> is one or more of: ` + strings.Join(analysisNames(), ", ") + `.
  Optional date arguments can be provided at the end (e.g. '2023-01' or '2023-01 2023-06').
  If no dates are provided, defaults to the previous month.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		params, _ := cmd.Flags().GetStringArray("params")
		config, err := parseEmailArgs(args, params, time.Now())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		config.DbPath = viper.GetString("database")
		config.User = viper.GetString("user")
		config.From = viper.GetString("from")
		config.ReportName = viper.GetString("name")
		config.DryRun = viper.GetBool("dryRun")
		config.SendgridAPIKey = viper.GetString("sendgrid_api_key")

		err = sendEmail(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var from string
	emailCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailCmd.Flags().Lookup("from"))

	var sendgridAPIKey string
	emailCmd.Flags().StringVar(&sendgridAPIKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", emailCmd.Flags().Lookup("sendgrid_api_key"))

	var name string
	emailCmd.Flags().StringVar(&name, "name", "", "Report name, appended to the subject")
	viper.BindPFlag("name", emailCmd.Flags().Lookup("name"))

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	emailCmd.Flags().StringArray("params", nil, "Parameters for reports, matched by index (e.g. --params 'n=20')")
}

// parseEmailArgs splits <address> <analysis...> [date] [date] and the
// --params values into a config. Connection settings are left unset.
func parseEmailArgs(args []string, params []string, now time.Time) (SendEmailConfig, error) {
	config := SendEmailConfig{To: args[0]}
	rest := args[1:]

	// Try to parse dates from the end of the args
	var dateArgs []string
	for i := 0; i < 2 && len(rest) > 0; i++ {
		last := rest[len(rest)-1]
		if _, err := parseSingleDatestring(last); err != nil {
			break
		}
		dateArgs = append([]string{last}, dateArgs...)
		rest = rest[:len(rest)-1]
	}

	if len(rest) == 0 {
		return config, fmt.Errorf("Error: No analysis types specified")
	}
	config.Types = rest

	if len(dateArgs) > 0 {
		r, err := parseDateRangeFromArgs(dateArgs)
		if err != nil {
			return config, fmt.Errorf("Error parsing dates: %w", err)
		}
		config.Range = r
	} else {
		r := analysis.LastMonthRange(now)
		config.Range = &r
	}

	if len(params) > 0 && len(params) != len(config.Types) {
		return config, fmt.Errorf("Error: Number of --params flags (%d) must match number of reports (%d), or be 0.", len(params), len(config.Types))
	}

	config.Params = make([]map[string]string, len(config.Types))
	for i, v := range params {
		pMap := make(map[string]string)
		if v != "" {
			for _, pair := range strings.Split(v, ",") {
				kv := strings.SplitN(pair, "=", 2)
				if len(kv) == 2 {
					pMap[kv[0]] = kv[1]
				}
			}
		}
		config.Params[i] = pMap
	}
	return config, nil
}

func buildAnalysers(config SendEmailConfig) ([]Analyser, error) {
	actions := make([]Analyser, 0, len(config.Types))
	for i, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return nil, err
		}

		if i < len(config.Params) && len(config.Params[i]) > 0 {
			configurable, ok := action.(Configurable)
			if !ok {
				return nil, fmt.Errorf("%s does not take parameters", actionName)
			}
			if err := configurable.Configure(config.Params[i]); err != nil {
				return nil, fmt.Errorf("configuring %s (index %d): %w", actionName, i, err)
			}
		}

		actions = append(actions, action)
	}
	return actions, nil
}

func sendEmail(config SendEmailConfig) error {
	actions, err := buildAnalysers(config)
	if err != nil {
		return err
	}

	db, err := openStore(config.DbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	subject, out, err := generateEmailContent(config, actions, db)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.SendgridAPIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("footprints", config.From)
	to := mail.NewEmail(config.User, config.To)
	message := mail.NewSingleEmail(from, subject, to, subject, out)
	client := sendgrid.NewSendClient(config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	if response.StatusCode/100 != 2 {
		return fmt.Errorf("sendEmail: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}

	logging.Info().Str("to", config.To).Str("subject", subject).Msg("Sent email")
	return nil
}

func generateEmailContent(config SendEmailConfig, actions []Analyser, src analysis.EventSource) (subject string, body string, err error) {
	var out strings.Builder
	out.WriteString(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`)
	for _, action := range actions {
		out.WriteString(`
		<div>
`)
		fmt.Fprintf(&out, "<h2>%s for %s %s:</h2>\n",
			html.EscapeString(action.GetName()), html.EscapeString(config.User), describeRange(config.Range))
		result, err := action.GetResults(src, config.Range)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", action.GetName(), err)
		}

		if len(result.results) <= 1 {
			// No listens found
			out.WriteString("<div>No listens found.</div>\n")
		} else {
			out.WriteString(`
			<table>
				<thead>
					<tr>
`)
			for _, header := range result.results[0] {
				fmt.Fprintf(&out, "<th>%s</th>", html.EscapeString(header))
			}
			out.WriteString(`				</tr>
			</thead>
			<tbody>
`)
			for _, row := range result.results[1:] {
				out.WriteString("<tr>\n")
				for _, column := range row {
					fmt.Fprintf(&out, "<td>%s</td>\n", html.EscapeString(column))
				}
				out.WriteString("</tr>\n")
			}
			out.WriteString(`
				</tbody>
			</table>
`)
		}
		fmt.Fprintf(&out, `<div>%s</div>
		</div>`, strings.ReplaceAll(html.EscapeString(result.summary), "\n", "<br>\n"))
	}
	out.WriteString(`
  </body>
</html>
`)

	subjectSuffix := ""
	if len(config.ReportName) > 0 {
		subjectSuffix = ": " + config.ReportName
	}
	// Subject line format: Listening report for <User> <Range> <Suffix>
	subject = fmt.Sprintf("Listening report for %s %s%s", config.User, describeRange(config.Range), subjectSuffix)

	return subject, out.String(), nil
}

func newAnalyserMap() map[string]Analyser {
	// Pointers required for Configure.
	return map[string]Analyser{
		"top-artists": &TopArtistsAnalyzer{Config: AnalyserConfig{20, 15}},
		"top-albums":  &TopAlbumsAnalyzer{Config: AnalyserConfig{20, 15}},
		"summary":     &PeriodAnalyzer{},
		"sessions":    &SessionsAnalyzer{Options: analysis.DefaultSessionsOptions(), NumToReturn: 10},
		"novelty":     &NoveltyAnalyzer{Granularity: analysis.Week},
		"diversity":   &DiversityAnalyzer{Granularity: analysis.Week},
		"transitions": &TransitionsAnalyzer{Options: analysis.DefaultTransitionsOptions(), NumToReturn: 20},
		"heatmap":     &HeatmapAnalyzer{},
		"yearly":      &YearlyAnalyzer{Options: analysis.DefaultYearlyOptions(), NumToReturn: 10},
	}
}

func analysisNames() []string {
	names := make([]string, 0)
	for name := range newAnalyserMap() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getActionFromName(actionName string) (Analyser, error) {
	action, ok := newAnalyserMap()[actionName]
	if !ok {
		return nil, fmt.Errorf("Invalid analysis_name: %s", actionName)
	}

	return action, nil
}
