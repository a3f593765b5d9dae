// Package platform sends desktop notifications through the host OS.
package platform

// AppName is reported to notification daemons that group by application.
const AppName = "gridsketch"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath points to an image shown next to the message when supported.
	IconPath string
	// Timeout in milliseconds; zero lets the daemon decide.
	Timeout int32
}
