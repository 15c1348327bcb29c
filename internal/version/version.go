package version

// Version is the current version of the argo-kline library.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-kline/internal/version.Version=1.2.3"
// The value "main" indicates a development build.
var Version = "v0.4.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
