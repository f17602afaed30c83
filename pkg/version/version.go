package version

import (
	"github.com/carlmjohnson/versioninfo"
)

/* injected */

var release string

/* ** */

type VersionInfoGit struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type VersionInfo struct {
	Release string         `json:"release"`
	Git     VersionInfoGit `json:"git"`
}

// go build -ldflags "-X github.com/dogeorg/wifiaware/pkg/version.release=v0.1.0" ./cmd/nancheck
func GetRelease() *VersionInfo {
	rel := release
	if rel == "" {
		rel = "unknown"
	}

	return &VersionInfo{
		Release: rel,
		Git: VersionInfoGit{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}
}
