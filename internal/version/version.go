package version

// Build-time variables set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/petly-community/petly/internal/version.version=v0.3.0" ./cmd/petly
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}

// UserAgent is sent with every request to the petly API
func UserAgent() string {
	return "petly/" + version
}
