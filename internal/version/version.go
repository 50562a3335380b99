package version

// Set via -ldflags "-X wiseoldman/internal/version.Version=..." at build time.
var (
	AppName = "wise-old-man"
	Version = "dev"
)
