// Package version reports restkit build information. It feeds the default
// User-Agent header sent by the transports and the `apicall version` command.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.2.0"
package version
