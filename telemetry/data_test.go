// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDataString(t *testing.T) {
	d := Data{
		ArchiveType: "tar.gz",
		Duration:    42 * time.Millisecond,
		Files:       3,
		Dirs:        1,
		Bytes:       1024,
	}

	s := d.String()
	for _, want := range []string{`"ArchiveType":"tar.gz"`, `"Files":3`, `"Dirs":1`, `"Bytes":1024`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
}

func TestDataMarshalJSON(t *testing.T) {
	cases := []struct {
		name      string
		data      Data
		wantError string
	}{
		{
			name:      "no error",
			data:      Data{ArchiveType: "zip"},
			wantError: "",
		},
		{
			name:      "with error",
			data:      Data{ArchiveType: "zip", Errors: 1, LastError: errors.New("boom")},
			wantError: "boom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.data)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			var decoded struct {
				ArchiveType string
				LastError   string
			}
			if err := json.Unmarshal(b, &decoded); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if decoded.ArchiveType != "zip" {
				t.Errorf("ArchiveType = %s, want zip", decoded.ArchiveType)
			}
			if decoded.LastError != tc.wantError {
				t.Errorf("LastError = %q, want %q", decoded.LastError, tc.wantError)
			}
		})
	}
}
