package version

// Set at build time with -ldflags "-X github.com/worldtrends/explorer/pkg/version.version=...".
var (
	version = "1.1.0"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}
