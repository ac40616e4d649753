package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/onboarding"

	"github.com/spf13/cobra"
)

// AdminCommandHandler covers schema setup, the first admin account and invites.
type AdminCommandHandler struct {
	runtime *Runtime
}

// NewAdminCommandHandler creates the handler on top of a shared runtime.
func NewAdminCommandHandler(rt *Runtime) *AdminCommandHandler {
	return &AdminCommandHandler{runtime: rt}
}

// MigrateCmd updates the schema and seeds the default permission matrix
func (commandHandler *AdminCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	_, log, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}
	log.Info("Database migrations completed successfully")
	return nil
}

// CreateAdminCmd creates the administrator account. The password is read from
// --password or PORTAL_ADMIN_PASSWORD.
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("PORTAL_ADMIN_PASSWORD")
	}
	if email == "" || password == "" {
		return errors.New("--email and a password are required")
	}

	c, log, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	user, err := c.Members.CreateAdmin(cmd.Context(), email, password, firstName, lastName)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	log.Info("Admin account ready: ", user.Email, " (", user.ID, ")")
	return nil
}

// CreateInviteCmd issues an invite and prints its link once
func (commandHandler *AdminCommandHandler) CreateInviteCmd(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	label, _ := cmd.Flags().GetString("label")
	roleNames, _ := cmd.Flags().GetStringSlice("role")
	expiresIn, _ := cmd.Flags().GetDuration("expires-in")

	roles := make([]access.Role, 0, len(roleNames))
	for _, name := range roleNames {
		roles = append(roles, access.Role(strings.TrimSpace(name)))
	}

	c, _, err := commandHandler.runtime.Container(cmd.Context())
	if err != nil {
		return err
	}

	created, err := c.Onboarding.CreateInvite(cmd.Context(), access.SystemPrincipal(), &onboarding.CreateInviteRequest{
		Label:     label,
		Email:     email,
		Roles:     roles,
		ExpiresIn: expiresIn,
	})
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Einladung %s gültig bis %s\n", created.Invite.ID, created.Invite.ExpiresAt.In(c.Location).Format("02.01.2006 15:04"))
	fmt.Fprintln(out, created.Link)
	return nil
}

// InitAdminCommands registers migrate, create-admin and create-invite
func InitAdminCommands(rootCmd *cobra.Command, rt *Runtime) error {
	handler := NewAdminCommandHandler(rt)

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	var createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create the administrator account",
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().StringP("email", "", "", "E-mail address used to log in")
	createAdminCmd.Flags().StringP("first-name", "", "Admin", "First name")
	createAdminCmd.Flags().StringP("last-name", "", "", "Last name")
	createAdminCmd.Flags().StringP("password", "", "", "Password (falls back to PORTAL_ADMIN_PASSWORD)")
	rootCmd.AddCommand(createAdminCmd)

	var createInviteCmd = &cobra.Command{
		Use:   "create-invite",
		Short: "Create an onboarding invite and print its link",
		RunE:  handler.CreateInviteCmd,
	}
	createInviteCmd.Flags().StringP("email", "", "", "Restrict the invite to this e-mail address")
	createInviteCmd.Flags().StringP("label", "", "", "Note shown in the invite list")
	createInviteCmd.Flags().StringSliceP("role", "", nil, "Additional roles granted on redemption")
	createInviteCmd.Flags().DurationP("expires-in", "", 0, "Validity, defaults to the configured invite TTL")
	rootCmd.AddCommand(createInviteCmd)

	return nil
}
