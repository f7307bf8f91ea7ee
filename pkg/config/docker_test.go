package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHost(t *testing.T) {
	tests := []struct {
		host        string
		inContainer bool
		want        string
	}{
		{"localhost", false, "localhost"},
		{"localhost", true, "host.docker.internal"},
		{"127.0.0.1", true, "host.docker.internal"},
		{"::1", true, "host.docker.internal"},
		{"db.garden.internal", true, "db.garden.internal"},
		{"10.0.0.12", true, "10.0.0.12"},
		{"host.docker.internal", false, "host.docker.internal"},
	}

	for _, tt := range tests {
		if got := resolveHost(tt.host, tt.inContainer); got != tt.want {
			t.Errorf("resolveHost(%q, %v) = %q, want %q", tt.host, tt.inContainer, got, tt.want)
		}
	}
}

func TestHasContainerMarker(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, ".containerenv")
	if err := os.WriteFile(present, nil, 0o600); err != nil {
		t.Fatalf("failed to write marker: %v", err)
	}
	missing := filepath.Join(dir, ".dockerenv")

	if hasContainerMarker([]string{missing}) {
		t.Error("expected no container when the marker is missing")
	}
	if !hasContainerMarker([]string{missing, present}) {
		t.Error("expected a container when any marker exists")
	}
	if hasContainerMarker(nil) {
		t.Error("expected no container without markers")
	}
}

func TestResolveHostForDocker_RemoteHostsUnchanged(t *testing.T) {
	for _, host := range []string{"db.garden.internal", "10.0.0.12"} {
		if got := ResolveHostForDocker(host); got != host {
			t.Errorf("ResolveHostForDocker(%q) = %q, want unchanged", host, got)
		}
	}
}
