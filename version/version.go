package version

// Version is the build version, overridden at link time by releases.
var Version = "0.0.0"
