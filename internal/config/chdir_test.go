package config

import (
	"os"
	"testing"
)

// chdir is a Go 1.21-compatible equivalent of testing.T.Chdir (Go 1.24+):
// it changes the working directory for the duration of the test and
// restores the previous one on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
