package version

// ApplyBuildInfo fills unset fields from module build info.
var ApplyBuildInfo = apply

// Reset restores link-time defaults.
func Reset() {
	Version, Commit, Date = "dev", unknown, unknown
}
