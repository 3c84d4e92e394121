package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/haymini/hayctl/internal/api"
	"github.com/haymini/hayctl/internal/config"
	"github.com/haymini/hayctl/internal/guard"
	"github.com/haymini/hayctl/internal/logger"
	"github.com/haymini/hayctl/internal/models"
	"github.com/haymini/hayctl/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// ClientFlags are the connection flags shared by every command.
type ClientFlags struct {
	Config  string `help:"Config file path" env:"HAYCTL_CONFIG"`
	BaseURL string `help:"API base URL override" env:"HAYMINI_API_URL"`
	DataDir string `help:"Custom state directory"`
}

// appEnv bundles the wired-up client and session manager a command
// runs against.
type appEnv struct {
	client  *api.Client
	session *session.Manager
}

// buildEnv wires config, API client, token store and session manager
// together. nav is the navigation effect used on session expiry;
// commands pass a terminal navigator that ends the process.
func (f *ClientFlags) buildEnv(globals *Globals, nav session.Navigator) (*appEnv, error) {
	logger.Setup(globals.Debug)

	path := f.Config
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			log.Debug().Err(err).Msg("no home directory, using built-in defaults")
		} else {
			path = defaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}

	client := api.New(api.Config{
		BaseURL:  cfg.BaseURL,
		Timeout:  time.Duration(cfg.Timeout),
		CacheDir: cfg.CacheDir,
	})

	store, err := session.NewFileTokenStore(f.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}

	return &appEnv{
		client:  client,
		session: session.NewManager(client, store, nav),
	}, nil
}

// termNavigator is the CLI rendition of the hard redirect on expiry:
// it prints the notice and ends the process so no stale in-memory
// state survives.
type termNavigator struct{}

func (termNavigator) NavigateToLogin(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprintln(os.Stderr, "Run 'hayctl login' to sign in again.")
	os.Exit(1)
}

// requireView maps a guard decision to command flow: nil to render,
// an error otherwise.
func requireView(env *appEnv, required models.Role) error {
	switch decision := guard.Authorize(env.session.Snapshot(), required); decision {
	case guard.Render:
		return nil
	case guard.RedirectToLogin:
		return fmt.Errorf("not signed in\n\nRun 'hayctl login' to sign in")
	case guard.ShowAccessDenied:
		return fmt.Errorf("access denied: this view requires the %s role", required)
	default:
		return fmt.Errorf("session state not settled (%s)", decision)
	}
}
