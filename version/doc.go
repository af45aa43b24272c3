// Package version carries the plugin's build version.
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/COVAS-Labs/plugin-elevenlabs/version.Version=1.2.0"
//
// When they are not, the module's VCS build settings are used.
package version
