package version

import (
	"runtime/debug"
	"testing"
)

func TestApplyBuildSettings(t *testing.T) {
	tests := []struct {
		name     string
		info     Info
		settings []debug.BuildSetting
		want     Info
	}{
		{
			name: "fills from vcs",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: Info{Commit: "0123456", BuildTime: "2026-01-02T03:04:05Z", Dirty: true},
		},
		{
			name:     "ldflags win",
			info:     Info{Commit: "abc", BuildTime: "then"},
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}, {Key: "vcs.time", Value: "now"}},
			want:     Info{Commit: "abc", BuildTime: "then"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			applyBuildSettings(&info, tt.settings)
			if info != tt.want {
				t.Errorf("got %+v, want %+v", info, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGet(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if info := Get(); info.Release || info.GoVersion == "" {
		t.Errorf("Get() = %+v", info)
	}
}
