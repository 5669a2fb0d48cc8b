// Package version reports the flowsynth build.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/flowsynth/version.Version=1.2.0" ./cmd/flowsynth
//
// Missing values are filled from the module build info when available.
package version
