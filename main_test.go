package main

import (
	"testing"

	"github.com/starfeel/star/cmd"
)

func TestVersion(t *testing.T) {
	if cmd.Version == "" {
		t.Error("Version is empty")
	}
}
