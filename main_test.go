package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	err := run(options{headless: true, outputDir: dir, seed: 3, maxEpochs: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	epochs, err := os.ReadFile(filepath.Join(dir, "epochs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per epoch.
	if rows := strings.Count(string(epochs), "\n"); rows != 3 {
		t.Errorf("epochs.csv has %d lines, want 3", rows)
	}
	for _, name := range []string{"config.yaml", "hall_of_fame.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRunReturnsSetupErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) options
	}{
		{
			name: "missing config",
			setup: func(t *testing.T, dir string) options {
				return options{headless: true, configPath: filepath.Join(dir, "missing.yaml")}
			},
		},
		{
			name: "missing snapshot",
			setup: func(t *testing.T, dir string) options {
				return options{headless: true, resumePath: filepath.Join(dir, "missing.json")}
			},
		},
		{
			name: "progress log path is a directory",
			setup: func(t *testing.T, dir string) options {
				if err := os.MkdirAll(filepath.Join(dir, "100_most_shapes.log"), 0755); err != nil {
					t.Fatal(err)
				}
				return options{headless: true, outputDir: dir, maxEpochs: 1}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.setup(t, t.TempDir())); err == nil {
				t.Error("run succeeded, want an error")
			}
		})
	}
}
