package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	deliverycontext "habit/internal/delivery/context"
	"habit/internal/domain/entity"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/errors"
	"habit/internal/usecase"
	"habit/internal/util"

	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive account session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd.Context(), func(ctx context.Context, d deps) error {
				shell := NewShell(d.Credentials, d.Notifications, d.Logger, cmd.InOrStdin(), cmd.OutOrStdout(), int(os.Stdin.Fd()))

				return shell.Run(ctx)
			})
		},
	}
}

// Shell is the interactive front end. Every command runs as one operation with its own ID.
type Shell struct {
	credentials   usecase.CredentialUsecase
	notifications usecase.NotificationUsecase
	logger        *slog.Logger
	prompt        *prompter
	out           io.Writer
	commands      map[string]shellCommand
}

type shellCommand struct {
	help       string
	needsLogin bool
	run        func(ctx context.Context) error
}

var errQuit = errors.New("quit")

// NewShell creates a shell reading from in and writing to out.
// fd is the terminal used for hidden password input, or -1.
func NewShell(
	credentials usecase.CredentialUsecase,
	notifications usecase.NotificationUsecase,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
	fd int,
) *Shell {
	s := &Shell{
		credentials:   credentials,
		notifications: notifications,
		logger:        logger,
		prompt:        newPrompter(in, out, fd),
		out:           out,
	}

	s.commands = map[string]shellCommand{
		"register":   {help: "create an account", run: s.register},
		"login":      {help: "log in", run: s.login},
		"logout":     {help: "log out", run: s.logout},
		"whoami":     {help: "show the logged in account", run: s.whoami},
		"profile":    {help: "edit name, email or username", needsLogin: true, run: s.profile},
		"passwd":     {help: "change password", needsLogin: true, run: s.passwd},
		"delete":     {help: "delete the logged in account", needsLogin: true, run: s.deleteAccount},
		"test-email": {help: "send a test email to yourself", needsLogin: true, run: s.testEmail},
		"help":       {help: "list commands", run: s.help},
		"quit":       {help: "leave the shell", run: func(context.Context) error { return errQuit }},
	}
	s.commands["exit"] = s.commands["quit"]

	return s
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Habit account shell. Type \"help\" for commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.printf("%s> ", s.promptName())
		line, err := s.prompt.line()
		if errors.Is(err, io.EOF) {
			s.printf("\n")

			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read command")
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if err := s.dispatch(ctx, fields[0]); errors.Is(err, errQuit) {
			return nil
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, name string) error {
	cmd, ok := s.commands[name]
	if !ok {
		s.printf("Unknown command %q. Type \"help\" for commands.\n", name)

		return nil
	}

	if cmd.needsLogin {
		if _, ok := s.credentials.CurrentUser(); !ok {
			s.printf("Please log in first.\n")

			return nil
		}
	}

	opCtx := deliverycontext.StartOperation(ctx, s.logger, name)
	err := cmd.run(opCtx)
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, io.EOF) {
		s.reportError(err)
	}

	return err
}

func (s *Shell) promptName() string {
	if user, ok := s.credentials.CurrentUser(); ok {
		return user.Username
	}

	return "habit"
}

func (s *Shell) register(ctx context.Context) error {
	username, err := s.prompt.text("Username")
	if err != nil {
		return err
	}
	email, err := s.prompt.text("Email")
	if err != nil {
		return err
	}
	firstName, err := s.prompt.text("First name")
	if err != nil {
		return err
	}
	lastName, err := s.prompt.text("Last name")
	if err != nil {
		return err
	}
	password, err := s.prompt.password("Password")
	if err != nil {
		return err
	}
	confirm, err := s.prompt.password("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		s.printf("Passwords do not match.\n")

		return nil
	}

	user, err := s.credentials.Register(ctx, usecase.RegisterInput{
		Username:  username,
		Password:  password,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	s.printf("Account %s created. You can now log in.\n", user.Username)

	return nil
}

func (s *Shell) login(ctx context.Context) error {
	username, err := s.prompt.text("Username")
	if err != nil {
		return err
	}
	password, err := s.prompt.password("Password")
	if err != nil {
		return err
	}

	user, err := s.credentials.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.printf("Welcome, %s!\n", displayName(user))

	return nil
}

func (s *Shell) logout(ctx context.Context) error {
	s.credentials.Logout(ctx)
	s.printf("Logged out.\n")

	return nil
}

func (s *Shell) whoami(_ context.Context) error {
	user, ok := s.credentials.CurrentUser()
	if !ok {
		s.printf("Not logged in.\n")

		return nil
	}

	s.printf("@%s\n", user.Username)
	s.printf("  Name:  %s\n", user.FullName())
	s.printf("  Email: %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		s.printf("  Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

func (s *Shell) profile(ctx context.Context) error {
	current, _ := s.credentials.CurrentUser()
	s.printf("Press Enter to keep a value.\n")

	input := usecase.UpdateProfileInput{Username: current.Username}
	var err error
	if input.FirstName, err = s.prompt.optional("First name", current.FirstName); err != nil {
		return err
	}
	if input.LastName, err = s.prompt.optional("Last name", current.LastName); err != nil {
		return err
	}
	if input.Email, err = s.prompt.optional("Email", current.Email); err != nil {
		return err
	}
	if input.NewUsername, err = s.prompt.optional("Username", current.Username); err != nil {
		return err
	}

	if changed(input.Email, current.Email, entity.NormalizeEmail) || changed(input.NewUsername, current.Username, entity.NormalizeUsername) {
		if input.CurrentPassword, err = s.prompt.password("Current password"); err != nil {
			return err
		}
	}

	out, err := s.credentials.UpdateProfile(ctx, input)
	if err != nil {
		return err
	}

	s.printf("Profile updated successfully!\n")
	switch out.Notification.Status {
	case usecase.NotifyQueued:
		s.printf("A confirmation email is on its way to %s.\n", out.User.Email)
	case usecase.NotifyCoolingDown:
		s.printf("A confirmation email was recently sent. Please wait %s before trying again.\n",
			util.FormatDuration(out.Notification.RetryAfter))
	case usecase.NotifySkipped:
	}

	return nil
}

func (s *Shell) passwd(ctx context.Context) error {
	current, _ := s.credentials.CurrentUser()

	oldPassword, err := s.prompt.password("Current password")
	if err != nil {
		return err
	}
	newPassword, err := s.prompt.password("New password")
	if err != nil {
		return err
	}
	confirm, err := s.prompt.password("Confirm new password")
	if err != nil {
		return err
	}
	if newPassword != confirm {
		s.printf("Passwords do not match.\n")

		return nil
	}

	if err := s.credentials.ChangePassword(ctx, usecase.ChangePasswordInput{
		Username:        current.Username,
		CurrentPassword: oldPassword,
		NewPassword:     newPassword,
	}); err != nil {
		return err
	}

	s.printf("Password changed successfully!\n")

	return nil
}

func (s *Shell) deleteAccount(ctx context.Context) error {
	current, _ := s.credentials.CurrentUser()

	ok, err := s.prompt.confirm(fmt.Sprintf("Delete account %s? This cannot be undone", current.Username))
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Cancelled.\n")

		return nil
	}

	if err := s.credentials.DeleteAccount(ctx, current.Username); err != nil {
		return err
	}

	s.printf("Account %s deleted.\n", current.Username)

	return nil
}

func (s *Shell) testEmail(ctx context.Context) error {
	current, _ := s.credentials.CurrentUser()

	result, err := s.notifications.SendTestEmail(ctx, *current)
	if err != nil {
		return err
	}

	switch result.Status {
	case usecase.NotifyQueued:
		s.printf("Test email sent to %s.\n", current.Email)
	case usecase.NotifyCoolingDown:
		s.printf("Please wait %s before sending another test email.\n", util.FormatDuration(result.RetryAfter))
	case usecase.NotifySkipped:
		s.printf("No email address on record.\n")
	}

	return nil
}

func (s *Shell) help(_ context.Context) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		if name != "exit" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		s.printf("  %-11s %s\n", name, s.commands[name].help)
	}

	return nil
}

func (s *Shell) reportError(err error) {
	s.printf("Error: %s\n", domainerrors.MessageOf(err))

	if domainerrors.KindOf(err) == domainerrors.KindUnknown || domainerrors.KindOf(err) == domainerrors.KindStorage {
		s.logger.Error("Command failed", slog.Any("error", err))
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func changed(answer *string, current string, normalize func(string) string) bool {
	return answer != nil && normalize(*answer) != current
}

func displayName(user *entity.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}

	return user.Username
}
