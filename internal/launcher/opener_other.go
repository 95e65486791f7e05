//go:build !windows && !darwin

package launcher

// PlatformOpener returns an opener that runs xdg-open.
func PlatformOpener() Opener {
	return CommandOpener{Name: "xdg-open"}
}
