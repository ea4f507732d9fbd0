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
	"errors"
	"fmt"
	"testing"

	"github.com/ademuri/lastfm-go/lastfm"
)

func TestIsServerError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&lastfm.LastfmError{Code: 500, Message: "Internal error"}, true},
		{fmt.Errorf("wrapped: %w", &lastfm.LastfmError{Code: 503}), true},
		{&lastfm.LastfmError{Code: 6, Message: "User not found"}, false},
		{errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		if got := isServerError(tt.err); got != tt.want {
			t.Errorf("isServerError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestUpdateDatabase_badAfter(t *testing.T) {
	err := updateDatabase(UpdateConfig{DbPath: t.TempDir() + "/footprints.db", User: "testuser", After: "June"})
	if err == nil {
		t.Fatalf("Expected error for unparseable --after")
	}
}
