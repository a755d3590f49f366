package assemble

import "testing"

func TestPlatformFilterMatches(t *testing.T) {
	tests := []struct {
		name     string
		filter   PlatformFilter
		platform string
		want     bool
	}{
		{name: "empty filter accepts all", platform: "linux-x86_64", want: true},
		{name: "blank platform always accepted", filter: PlatformFilter{Selected: []string{"osx"}}, platform: "", want: true},
		{name: "exact selection", filter: PlatformFilter{Selected: []string{"linux-x86_64"}}, platform: "linux-x86_64", want: true},
		{name: "os prefix selection", filter: PlatformFilter{Selected: []string{"linux"}}, platform: "linux-aarch_64", want: true},
		{name: "not selected", filter: PlatformFilter{Selected: []string{"windows"}}, platform: "linux-x86_64", want: false},
		{name: "rejected wins", filter: PlatformFilter{Selected: []string{"linux"}, Rejected: []string{"linux-aarch_64"}}, platform: "linux-aarch_64", want: false},
		{name: "qualified pattern does not prefix match", filter: PlatformFilter{Selected: []string{"linux-x86"}}, platform: "linux-x86_64", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(tc.platform); got != tc.want {
				t.Fatalf("Matches(%q) = %v, want %v", tc.platform, got, tc.want)
			}
		})
	}
}

func TestPlatformReplacementsApply(t *testing.T) {
	r := PlatformReplacements{"osx-x86_64": "mac", "linux-x86_64": ""}
	if got := r.Apply("osx-x86_64"); got != "mac" {
		t.Fatalf("Apply = %q", got)
	}
	if got := r.Apply("linux-x86_64"); got != "linux-x86_64" {
		t.Fatalf("blank replacement must keep platform, got %q", got)
	}
}
