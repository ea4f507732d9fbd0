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
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/ademuri/footprints/internal/analysis"
	"github.com/ademuri/footprints/internal/logging"
	"github.com/ademuri/footprints/internal/store"
	"github.com/ademuri/lastfm-go/lastfm"
)

const lastFmSource = "lastfm"

type UpdateConfig struct {
	DbPath string
	User   string
	After  string
	Force  bool
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches data from last.fm",
	Long:  `Stores data in a local SQLite database.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var missing []string
		for _, key := range []string{"api_key", "secret", "user"} {
			if viper.GetString(key) == "" {
				missing = append(missing, strconv.Quote(key))
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := UpdateConfig{
			DbPath: viper.GetString("database"),
			User:   viper.GetString("user"),
			After:  viper.GetString("after"),
			Force:  viper.GetBool("force"),
		}

		err := updateDatabase(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	var afterString string
	updateCmd.Flags().StringVar(&afterString, "after", "", "Only get listening data after this date, in yyyy-mm-dd format")
	viper.BindPFlag("after", updateCmd.Flags().Lookup("after"))

	var force bool
	updateCmd.Flags().BoolVarP(&force, "force", "f", false, "Get all listening data, regardless of what's already present (idempotent)")
	viper.BindPFlag("force", updateCmd.Flags().Lookup("force"))
}

func updateDatabase(config UpdateConfig) error {
	var after time.Time
	var err error
	if len(config.After) > 0 {
		after, err = time.Parse("2006-01-02", config.After)
		if err != nil {
			return fmt.Errorf("--after: %w", err)
		}
	}

	user := strings.ToLower(config.User)
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	lastfmClient := lastfm.New(viper.GetString("api_key"), viper.GetString("secret"))
	lastfmClient.SetUserAgent("footprints/1.0")

	err = db.CreateUser(user)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	lastUpdated, err := db.GetLastUpdated(user)
	if err != nil {
		return err
	}
	now := time.Now()
	if !lastUpdated.IsZero() && now.Sub(lastUpdated).Hours() < 24 && !config.Force {
		logging.Info().Str("user", user).Msg("User data was already updated in the past 24 hours")
		return nil
	}
	logging.Info().Str("user", user).Time("last_updated", lastUpdated).Msg("Starting update")

	latestListen, err := db.GetLatestListen()
	if err != nil {
		return fmt.Errorf("getting latest listen: %w", err)
	}
	logging.Info().Time("latest_listen", latestListen).Msg("Latest local listening data")

	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)
	page := 1 // First page is 1
	pages := 0
	var inserted int64
	for {
		var recentTracks lastfm.UserGetRecentTracks
		err := retry.Do(
			func() error {
				var err error
				recentTracks, err = lastfmClient.User.GetRecentTracks(lastfm.P{
					"limit": 200,
					"page":  page,
					"user":  user,
				})
				return err
			},
			retry.RetryIf(isServerError),
		)
		if err != nil {
			return fmt.Errorf("fetching recent tracks: %w", err)
		}

		if pages == 0 {
			pages = recentTracks.TotalPages
		}

		events, oldest := convertRecentTracks(recentTracks)
		if len(events) == 0 {
			break
		}

		n, err := db.AddScrobbles(events)
		if err != nil {
			return fmt.Errorf("inserting recent tracks (page %d): %w", page, err)
		}
		inserted += n

		logging.Info().
			Int("page", page).
			Int("pages", pages).
			Int64("inserted", n).
			Str("oldest", oldest.Format("2006-01-02")).
			Msg("Downloaded page")
		page += 1

		if !after.IsZero() && oldest.Before(after) {
			break
		}
		if page > pages {
			break
		}
		if !config.Force && !latestListen.IsZero() && oldest.Before(latestListen.AddDate(0, 0, -7)) {
			logging.Info().Msg("Refreshed back to existing data")
			break
		}

		if err := limiter.Wait(context.Background()); err != nil {
			return err
		}
	}

	err = db.SetLastUpdated(user, now)
	if err != nil {
		return err
	}

	logging.Info().Str("user", user).Int64("inserted", inserted).Msg("Update finished")
	return nil
}

// isServerError retries only on last.fm 5xx responses.
func isServerError(err error) bool {
	var lerr *lastfm.LastfmError
	if errors.As(err, &lerr) && lerr.Code/100 == 5 {
		logging.Warn().Err(lerr).Msg("last.fm errored, retrying")
		return true
	}
	return false
}

// convertRecentTracks maps one page of last.fm results to play events and
// returns the oldest play time on the page. The now-playing entry has no
// timestamp and is skipped.
func convertRecentTracks(recentTracks lastfm.UserGetRecentTracks) ([]analysis.PlayEvent, time.Time) {
	events := make([]analysis.PlayEvent, 0, len(recentTracks.Tracks))
	var oldest time.Time
	for _, t := range recentTracks.Tracks {
		if t.Date.Uts == "" {
			continue
		}
		uts, err := strconv.ParseInt(t.Date.Uts, 10, 64)
		if err != nil {
			logging.Warn().Str("uts", t.Date.Uts).Str("track", t.Name).Msg("Skipping track with bad timestamp")
			continue
		}
		played := time.Unix(uts, 0).UTC()
		events = append(events, analysis.PlayEvent{
			Artist:    t.Artist.Name,
			Album:     t.Album.Name,
			Track:     t.Name,
			Timestamp: played,
			Source:    lastFmSource,
			SourceID:  t.Mbid,
		})
		if oldest.IsZero() || played.Before(oldest) {
			oldest = played
		}
	}
	return events, oldest
}
