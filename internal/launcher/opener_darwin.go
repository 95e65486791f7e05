//go:build darwin

package launcher

// PlatformOpener returns an opener that runs open(1).
func PlatformOpener() Opener {
	return CommandOpener{Name: "open"}
}
