package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/haymini/hayctl/internal/session"
)

// LoginCmd signs in with email and password.
type LoginCmd struct {
	ClientFlags

	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password" env:"HAYMINI_PASSWORD" required:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	if !env.session.Login(ctx, l.Email, l.Password) {
		return fmt.Errorf("sign in failed: check your email and password and try again")
	}

	snap := env.session.Snapshot()
	fmt.Printf("Signed in as %s (%s).\n", snap.User.Username, snap.User.Role)

	return nil
}

// LogoutCmd signs out and clears the local session.
type LogoutCmd struct {
	ClientFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := l.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)
	env.session.Logout(ctx)

	fmt.Println("Signed out.")
	return nil
}

// WhoamiCmd shows the signed-in user.
type WhoamiCmd struct {
	ClientFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := w.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, ""); err != nil {
		return err
	}

	user := env.session.Snapshot().User

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", user.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", user.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", user.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", user.Role)
	if user.OrganizationID != "" {
		fmt.Fprintf(tw, "Organization:\t%s\n", user.OrganizationID)
	}
	return tw.Flush()
}

// StatusCmd shows the session state without requiring a signed-in
// user. With no persisted token it never touches the network.
type StatusCmd struct {
	ClientFlags
}

func (s *StatusCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := s.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	snap := env.session.Snapshot()
	switch snap.Status {
	case session.StatusAuthenticated:
		fmt.Printf("Signed in as %s (%s).\n", snap.User.Username, snap.User.Role)
	default:
		fmt.Println("Not signed in.")
	}

	return nil
}
