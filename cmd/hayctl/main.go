package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/haymini/hayctl/cmd/hayctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Sign in to the access-control backend"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Sign out and clear the local session"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show the signed-in user"`
		Status        commands.StatusCmd        `cmd:"" help:"Show the session state"`
		Orgs          commands.OrgsCmd          `cmd:"" help:"Manage organizations"`
		Users         commands.UsersCmd         `cmd:"" help:"Manage users"`
		Devices       commands.DevicesCmd       `cmd:"" help:"Manage RFID readers"`
		Cards         commands.CardsCmd         `cmd:"" help:"Manage issued cards"`
		Events        commands.EventsCmd        `cmd:"" help:"View attendance logs"`
		Notifications commands.NotificationsCmd `cmd:"" help:"View notifications"`
		Debug         bool                      `help:"Enable debug mode."`
		Version       kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
