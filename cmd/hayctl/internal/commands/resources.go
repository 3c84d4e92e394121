package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/haymini/hayctl/internal/models"
)

// OrgsCmd manages organizations.
type OrgsCmd struct {
	List OrgsListCmd `cmd:"" help:"List organizations"`
}

// OrgsListCmd lists all organizations. Cross-tenant, so elevated only.
type OrgsListCmd struct {
	ClientFlags
}

func (o *OrgsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := o.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, models.RoleElevated); err != nil {
		return err
	}

	orgs, err := env.client.ListOrganizations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, org := range orgs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", org.ID, org.Name, org.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// UsersCmd manages platform users.
type UsersCmd struct {
	List UsersListCmd `cmd:"" help:"List users"`
}

// UsersListCmd lists all users. Cross-tenant, so elevated only.
type UsersListCmd struct {
	ClientFlags
}

func (u *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := u.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, models.RoleElevated); err != nil {
		return err
	}

	users, err := env.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tORGANIZATION")
	for _, user := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, user.Role, user.OrganizationID)
	}
	return tw.Flush()
}

// DevicesCmd manages RFID readers.
type DevicesCmd struct {
	List DevicesListCmd `cmd:"" help:"List devices"`
}

// DevicesListCmd lists devices visible to the caller; the backend
// scopes standard users to their own organization.
type DevicesListCmd struct {
	ClientFlags
}

func (d *DevicesListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := d.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, ""); err != nil {
		return err
	}

	devices, err := env.client.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERIAL\tONLINE\tLAST SEEN")
	for _, device := range devices {
		lastSeen := "never"
		if device.LastSeenAt != nil {
			lastSeen = device.LastSeenAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%s\n", device.ID, device.Name, device.SerialNumber, device.Online, lastSeen)
	}
	return tw.Flush()
}

// CardsCmd manages issued RFID cards.
type CardsCmd struct {
	List CardsListCmd `cmd:"" help:"List cards"`
}

// CardsListCmd lists cards visible to the caller.
type CardsListCmd struct {
	ClientFlags
}

func (c *CardsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := c.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, ""); err != nil {
		return err
	}

	cards, err := env.client.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if len(cards) == 0 {
		fmt.Println("No cards found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUID\tUSER\tACTIVE")
	for _, card := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", card.ID, card.UID, card.UserID, card.Active)
	}
	return tw.Flush()
}

// EventsCmd shows attendance logs.
type EventsCmd struct {
	List EventsListCmd `cmd:"" help:"List attendance events"`
}

// EventsListCmd lists recorded attendance events.
type EventsListCmd struct {
	ClientFlags
}

func (e *EventsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := e.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, ""); err != nil {
		return err
	}

	events, err := env.client.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tCARD\tDEVICE\tUSER\tDIRECTION")
	for _, event := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			event.Timestamp.Format(time.RFC3339), event.CardUID, event.DeviceID, event.UserID, event.Direction)
	}
	return tw.Flush()
}

// NotificationsCmd shows backend notifications.
type NotificationsCmd struct {
	List NotificationsListCmd `cmd:"" help:"List notifications"`
}

// NotificationsListCmd lists notifications for the current user.
type NotificationsListCmd struct {
	ClientFlags

	Unread bool `help:"Show unread notifications only" default:"false"`
}

func (n *NotificationsListCmd) Run(ctx context.Context, globals *Globals) error {
	env, err := n.buildEnv(globals, termNavigator{})
	if err != nil {
		return err
	}

	env.session.Initialize(ctx)

	if err := requireView(env, ""); err != nil {
		return err
	}

	notifications, err := env.client.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tREAD\tTITLE")
	shown := 0
	for _, notification := range notifications {
		if n.Unread && notification.Read {
			continue
		}
		fmt.Fprintf(tw, "%s\t%v\t%s\n",
			notification.CreatedAt.Format(time.RFC3339), notification.Read, notification.Title)
		shown++
	}

	if shown == 0 {
		fmt.Println("No notifications found.")
		return nil
	}

	return tw.Flush()
}
