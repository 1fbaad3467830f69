// Copyright (c) The go-archive Authors
// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestHeaderReader(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		headerSize int
		wantHeader string
	}{
		{
			name:       "input longer than header",
			input:      "0123456789",
			headerSize: 4,
			wantHeader: "0123",
		},
		{
			name:       "input shorter than header",
			input:      "01",
			headerSize: 4,
			wantHeader: "01",
		},
		{
			name:       "empty input",
			input:      "",
			headerSize: 4,
			wantHeader: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hr, err := newHeaderReader(strings.NewReader(tc.input), tc.headerSize)
			if err != nil {
				t.Fatalf("newHeaderReader failed: %v", err)
			}

			if got := string(hr.PeekHeader()); got != tc.wantHeader {
				t.Errorf("PeekHeader() = %q, want %q", got, tc.wantHeader)
			}

			// the full input must still be readable after peeking
			all, err := io.ReadAll(hr)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if string(all) != tc.input {
				t.Errorf("ReadAll() = %q, want %q", all, tc.input)
			}
		})
	}
}

func TestHeaderReaderSmallReads(t *testing.T) {
	hr, err := newHeaderReader(strings.NewReader("0123456789"), 6)
	if err != nil {
		t.Fatalf("newHeaderReader failed: %v", err)
	}

	// drain one byte at a time across the header boundary
	var out bytes.Buffer
	buf := make([]byte, 1)
	for {
		n, err := hr.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}
	if out.String() != "0123456789" {
		t.Errorf("got %q, want %q", out.String(), "0123456789")
	}
}
