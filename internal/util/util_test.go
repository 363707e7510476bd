// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[api]\nbase_url = \"http://localhost:8080/api\"\n")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("content = %q, want %q", got, data)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("perm = %v, want 0600", info.Mode().Perm())
		}
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")

	if err := AtomicWriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestAtomicWriteFile_OverwritesAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	for _, content := range []string{"first", "second"} {
		if err := AtomicWriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("AtomicWriteFile(%q) error = %v", content, err)
		}
	}

	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp files left behind)", len(entries))
	}
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"Budget", 6},
		{"日本", 4},
		{"💰", 2},
	}
	for _, tc := range tests {
		if got := Width(tc.input); got != tc.want {
			t.Errorf("Width(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"fits", "Groceries", 20, "Groceries"},
		{"exact", "Groceries", 9, "Groceries"},
		{"cut", "Create a grocery budget", 10, "Create ..."},
		{"zero", "abc", 0, ""},
		{"tiny", "abcdef", 2, "ab"},
		{"wide runes", "日本語テキスト", 7, "日本..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(tc.input, tc.max)
			if got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
			if Width(got) > tc.max {
				t.Errorf("Truncate(%q, %d) width = %d, exceeds max", tc.input, tc.max, Width(got))
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight() = %q, want %q", got, "ab   ")
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight() = %q, want unchanged", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("\n  hello \nworld"); got != "hello" {
		t.Errorf("FirstLine() = %q, want %q", got, "hello")
	}
	if got := FirstLine(" \n "); got != "" {
		t.Errorf("FirstLine() = %q, want empty", got)
	}
}
