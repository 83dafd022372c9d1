package misc

// Set with -ldflags "-X github.com/rupor-github/junction/misc.version=..." at build time.
var (
	version = "dev"
	gitHash = "unknown"
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from.
func GetGitHash() string {
	return gitHash
}
