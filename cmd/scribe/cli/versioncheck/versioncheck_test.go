package versioncheck

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsOutdated(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
		desc    string
	}{
		{"1.0.0", "1.0.1", true, "patch version bump"},
		{"1.0.0", "1.1.0", true, "minor version bump"},
		{"1.0.0", "2.0.0", true, "major version bump"},
		{"1.0.1", "1.0.0", false, "current is newer"},
		{"2.0.0", "1.9.9", false, "current major is higher"},
		{"1.0.0", "1.0.0", false, "same version"},
		{"v1.0.0", "v1.0.1", true, "with v prefix"},
		{"v1.0.0", "1.0.1", true, "mixed v prefix"},
		{"1.0.0-rc1", "1.0.0", true, "prerelease in current"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := isOutdated(tt.current, tt.latest); got != tt.want {
				t.Errorf("isOutdated(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestParseGitHubRelease(t *testing.T) {
	version, err := parseGitHubRelease([]byte(`{"tag_name":"v1.2.3","prerelease":false}`))
	if err != nil {
		t.Fatalf("parseGitHubRelease() error = %v", err)
	}
	if version != "v1.2.3" {
		t.Errorf("version = %q", version)
	}
}

func TestParseGitHubReleasePrerelease(t *testing.T) {
	if _, err := parseGitHubRelease([]byte(`{"tag_name":"v2.0.0-rc1","prerelease":true}`)); err == nil {
		t.Error("prerelease should be rejected")
	}
}

func TestParseGitHubReleaseEmptyTag(t *testing.T) {
	if _, err := parseGitHubRelease([]byte(`{"tag_name":"","prerelease":false}`)); err == nil {
		t.Error("empty tag should be rejected")
	}
}

func TestParseGitHubReleaseInvalidJSON(t *testing.T) {
	if _, err := parseGitHubRelease([]byte(`not json`)); err == nil {
		t.Error("invalid JSON should be rejected")
	}
}

func TestFetchLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v9.9.9","prerelease":false}`))
	}))
	defer server.Close()

	orig := githubAPIURL
	githubAPIURL = server.URL
	defer func() { githubAPIURL = orig }()

	version, err := fetchLatestVersion()
	if err != nil {
		t.Fatalf("fetchLatestVersion() error = %v", err)
	}
	if version != "v9.9.9" {
		t.Errorf("version = %q", version)
	}
}

func TestFetchLatestVersionHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	orig := githubAPIURL
	githubAPIURL = server.URL
	defer func() { githubAPIURL = orig }()

	if _, err := fetchLatestVersion(); err == nil {
		t.Error("non-200 response should error")
	}
}
