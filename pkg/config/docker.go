package config

import (
	"os"
	"sync"
)

// dockerHostGateway resolves to the host machine from inside a container.
const dockerHostGateway = "host.docker.internal"

// containerMarkers are files that exist only inside Docker or Podman containers.
var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

var (
	inDockerOnce sync.Once
	inDocker     bool
)

// IsRunningInDocker reports whether the process runs inside a container.
// The result is cached after the first call.
func IsRunningInDocker() bool {
	inDockerOnce.Do(func() {
		inDocker = hasContainerMarker(containerMarkers)
	})
	return inDocker
}

func hasContainerMarker(markers []string) bool {
	for _, m := range markers {
		if _, err := os.Stat(m); err == nil {
			return true
		}
	}
	return false
}

// ResolveHostForDocker points a loopback database host at the Docker host
// gateway when running in a container, so a catalog database on the
// developer machine stays reachable.
func ResolveHostForDocker(host string) string {
	return resolveHost(host, IsRunningInDocker())
}

func resolveHost(host string, inContainer bool) string {
	if !inContainer {
		return host
	}
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return dockerHostGateway
	}
	return host
}
