package version

// Version is overridden at build time via -ldflags.
var Version = "dev"

func FullVersion() string {
	return "readme-agent " + Version
}
