// Package browse opens URLs in the user's web browser.
package browse

import "github.com/pkg/browser"

// WarnFunc reports a non-fatal problem to the user.
type WarnFunc func(format string, args ...any)

// Open opens url in the default browser from a separate goroutine, so the
// caller never waits on the browser child process. Opening a browser is a
// nice-but-not-necessary feature: failures are reported through warn, never
// as errors.
func Open(url string, warn WarnFunc) {
	go func() {
		if err := browser.OpenURL(url); err != nil {
			warn("couldn't open <%s> in browser: %v", url, err)
		}
	}()
}
