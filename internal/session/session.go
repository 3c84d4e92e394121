package session

import "github.com/haymini/hayctl/internal/models"

// Status is the lifecycle state of the session.
//
//	StatusUninitialized --(token found)--> StatusValidating --(200)--> StatusAuthenticated
//	StatusUninitialized --(no token)-----> StatusUnauthenticated
//	StatusValidating --(401)-------------> StatusExpiredRedirecting --(navigate)--> torn down
//	StatusValidating --(other error)-----> StatusUnauthenticated
//	StatusAuthenticated --(logout)-------> StatusUnauthenticated
//	StatusAuthenticated --(any 401)------> StatusExpiredRedirecting
//	StatusUnauthenticated --(login ok)---> StatusAuthenticated
type Status string

const (
	StatusUninitialized      Status = "uninitialized"
	StatusValidating         Status = "validating"
	StatusAuthenticated      Status = "authenticated"
	StatusUnauthenticated    Status = "unauthenticated"
	StatusExpiredRedirecting Status = "expired-redirecting"
)

// Pending returns true while the session outcome is not yet settled
// and views must show a loading placeholder instead of content.
func (s Status) Pending() bool {
	return s == StatusUninitialized || s == StatusValidating || s == StatusExpiredRedirecting
}

// Snapshot is a point-in-time copy of the session state, safe to hand
// to guards and views.
type Snapshot struct {
	Status Status
	User   *models.User
}

// Navigator performs the teardown-and-navigate effect triggered by an
// expired session. The browser original is a hard page redirect; the
// CLI equivalent terminates the current view after printing a notice.
type Navigator interface {
	NavigateToLogin(reason string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(reason string)

// NavigateToLogin calls fn(reason).
func (fn NavigatorFunc) NavigateToLogin(reason string) {
	fn(reason)
}
