// Package guard gates rendering of protected views based on session
// state and role.
package guard

import (
	"github.com/haymini/hayctl/internal/models"
	"github.com/haymini/hayctl/internal/session"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Render allows the protected view.
	Render Decision = iota

	// ShowLoading means the session outcome is not yet settled;
	// protected content must not be shown, but neither should a
	// login prompt flash while validation is in flight.
	ShowLoading

	// RedirectToLogin means the caller is not signed in.
	RedirectToLogin

	// ShowAccessDenied means the caller is signed in but lacks the
	// required role.
	ShowAccessDenied
)

// String returns the decision name for logs and errors.
func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case ShowAccessDenied:
		return "access-denied"
	default:
		return "unknown"
	}
}

// Authorize decides whether a view may render for the given session
// state. An empty required role means any authenticated user may view.
// The elevated role satisfies every requirement; the hierarchy is a
// strict one-level bypass, not a permission graph.
func Authorize(snap session.Snapshot, required models.Role) Decision {
	if snap.Status.Pending() {
		return ShowLoading
	}

	if snap.Status != session.StatusAuthenticated || snap.User == nil {
		return RedirectToLogin
	}

	if required != "" && snap.User.Role != required && !snap.User.IsElevated() {
		return ShowAccessDenied
	}

	return Render
}
