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
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML  = "yaml"
	formatJSON  = "json"
	formatTable = "table"
)

func validateOutputFormat(format string) error {
	switch format {
	case formatYAML, formatJSON, formatTable:
		return nil
	}
	return fmt.Errorf("unknown output format %q: expected yaml, json or table", format)
}

// writeAnalysis encodes a in the requested format. yaml and json carry the
// whole report; table carries the projection only.
func writeAnalysis(w io.Writer, format string, a Analysis) error {
	switch format {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(a.report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return encoder.Close()

	case formatJSON:
		b, err := json.MarshalIndent(a.report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err

	case formatTable:
		_, err := fmt.Fprint(w, a.String())
		return err
	}
	return validateOutputFormat(format)
}
