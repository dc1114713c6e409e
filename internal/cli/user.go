package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrlokans/smartlibrary/internal/auth"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

func newUserCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(newUserCreateCommand(st), newUserListCommand(st))
	return cmd
}

type userCreateOptions struct {
	role          string
	member        string
	passwordStdin bool
}

func newUserCreateCommand(st *state) *cobra.Command {
	var opts userCreateOptions

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a login account",
		Example: `  smartlibrary user create admin --role admin
  echo "$PASSWORD" | smartlibrary user create frontdesk --role librarian --password-stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readNewPassword(cmd, opts.passwordStdin)
			if err != nil {
				return err
			}

			db, _, err := st.openLibrary()
			if err != nil {
				return err
			}
			defer db.Close()

			users, err := st.authService(db)
			if err != nil {
				return err
			}

			in := auth.NewUser{
				Username: args[0],
				Password: password,
				Role:     entities.UserRole(strings.ToLower(opts.role)),
			}
			if opts.member != "" {
				in.MemberID = &opts.member
			}

			user, err := users.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.role, "role", string(entities.UserRoleMember), "Role: admin, librarian or member")
	cmd.Flags().StringVar(&opts.member, "member", "", "Member ID to link the account to")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "Read the password from standard input")
	return cmd
}

// readNewPassword reads the password from stdin when asked to, and otherwise
// prompts twice on the terminal without echo.
func readNewPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		return readPasswordLine(cmd.InOrStdin())
	}
	if !stdinIsTerminal() {
		return "", errors.New("no terminal for the password prompt, use --password-stdin")
	}

	out := cmd.ErrOrStderr()
	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", auth.ErrPasswordRequired
	}
	return password, nil
}

func newUserListCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List login accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := st.openLibrary()
			if err != nil {
				return err
			}
			defer db.Close()

			users, err := st.authService(db)
			if err != nil {
				return err
			}
			list, err := users.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, u := range list {
				member := "-"
				if u.MemberID != nil {
					member = *u.MemberID
				}
				fmt.Fprintf(out, "%-24s %-10s %s\n", u.Username, u.Role, member)
			}
			return nil
		},
	}
}
