package version

// Version is the current version of the wellness CLI.
// This value can be overridden at build time using:
//
//	go build -ldflags="-X 'github.com/Tejaswini-Manjula/MURF-CONTEST/internal/version.Version=v1.0.0'"
var Version = "dev"
