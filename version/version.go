package version

// Set by -ldflags "-X github.com/sagan/respimg/version.Version=..." at release time.
var Version = "dev"
