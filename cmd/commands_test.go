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
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{
		"update", "sessions", "novelty", "diversity", "transitions", "heatmap",
		"yearly", "report", "years", "top-artists", "top-albums", "email",
	} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Command %q not registered: %v", name, err)
		}
	}
}

func TestYearsCommand(t *testing.T) {
	_, dbPath := createTestStore(t, januarySession()...)

	rootCmd.SetArgs([]string{"years", "--database", dbPath, "--format", "json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("years failed: %v", err)
	}
}

func TestUpdateRequiresCredentials(t *testing.T) {
	rootCmd.SetArgs([]string{"update", "--database", t.TempDir() + "/footprints.db", "--user", "testuser", "--api_key", "", "--secret", ""})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("update should fail without api_key and secret")
	}
}
