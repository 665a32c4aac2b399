package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bi   debug.BuildInfo
		want string
	}{
		{
			name: "devel",
			bi:   debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: "dev",
		},
		{
			name: "release",
			bi:   debug.BuildInfo{GoVersion: "go1.25.0", Main: debug.Module{Version: "v1.2.0"}},
			want: "v1.2.0 go1.25.0",
		},
		{
			name: "dirty checkout",
			bi: debug.BuildInfo{
				Main: debug.Module{Version: ""},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "dev (0123456789ab, dirty)",
		},
	}
	for _, tt := range tests {
		if got := fromBuildInfo(&tt.bi).String(); got != tt.want {
			t.Fatalf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
