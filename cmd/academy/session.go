package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/config"
	"github.com/tadreeb/academy/internal/pkg/authclient"
	"github.com/tadreeb/academy/internal/pkg/helpers"
)

// SessionPasswordEnv supplies the login password for non-interactive use
const SessionPasswordEnv = "ACADEMY_SESSION_PASSWORD"

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Drive an end-user session against the auth backend",
	Long:  "Developer tool: sign in against the external auth backend and keep the session in a local file.",
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a password or a one-time code",
	RunE:  runSessionLogin,
}

var sessionWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user, refreshing the session when needed",
	RunE:  runSessionWhoami,
}

var sessionSSOCmd = &cobra.Command{
	Use:   "sso",
	Short: "Print the training platform hand-off URL",
	RunE:  runSessionSSO,
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and remove the local file",
	RunE:  runSessionLogout,
}

var (
	sessionFile  string
	sessionEmail string
	sessionOTP   bool
	sessionNext  string
)

func init() {
	sessionCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Session file (default from config)")

	sessionLoginCmd.Flags().StringVar(&sessionEmail, "email", "", "Account email")
	sessionLoginCmd.Flags().BoolVar(&sessionOTP, "otp", false, "Request a one-time code by email instead of using a password")
	_ = sessionLoginCmd.MarkFlagRequired("email")

	sessionSSOCmd.Flags().StringVar(&sessionNext, "next", "/", "Relative path to open on the training platform")

	sessionCmd.AddCommand(sessionLoginCmd, sessionWhoamiCmd, sessionSSOCmd, sessionLogoutCmd)
}

func newSessionManager() (*authclient.Manager, *config.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := authclient.New(authclient.Config{
		BaseURL: cfg.AuthBackend.BaseURL,
		Timeout: helpers.ParseDuration(cfg.AuthBackend.Timeout, 15*time.Second),
	})
	if err != nil {
		return nil, nil, err
	}

	path := sessionFile
	if path == "" {
		path = cfg.AuthBackend.SessionFile
	}

	m := authclient.NewManager(client, authclient.NewFileStore(path),
		authclient.WithRefreshSkew(helpers.ParseDuration(cfg.AuthBackend.RefreshSkew, authclient.DefaultRefreshSkew)))
	return m, cfg, nil
}

func runSessionLogin(cmd *cobra.Command, args []string) error {
	m, _, err := newSessionManager()
	if err != nil {
		return err
	}
	ctx := contextOf(cmd)

	var sess *authclient.Session
	if sessionOTP {
		if err := m.Client().RequestOTP(ctx, authclient.OTPRequest{Email: sessionEmail, Purpose: "login"}); err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "A code was sent to %s.\nCode: ", sessionEmail)
		code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && strings.TrimSpace(code) == "" {
			return fmt.Errorf("failed to read code: %w", err)
		}
		sess, err = m.VerifyOTP(ctx, authclient.VerifyOTPRequest{Email: sessionEmail, Code: strings.TrimSpace(code), Purpose: "login"})
		if err != nil {
			return describe(err)
		}
	} else {
		password, err := readSecret(cmd, SessionPasswordEnv, "Password: ")
		if err != nil {
			return err
		}
		sess, err = m.Login(ctx, authclient.LoginRequest{Email: sessionEmail, Password: password})
		if err != nil {
			return describe(err)
		}
	}

	name := sessionEmail
	if sess.User != nil && sess.User.FullName != "" {
		name = sess.User.FullName
	}
	fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", name)
	return nil
}

func runSessionWhoami(cmd *cobra.Command, args []string) error {
	m, _, err := newSessionManager()
	if err != nil {
		return err
	}

	user, err := m.Me(contextOf(cmd))
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "id:     %s\nemail:  %s\nname:   %s\nphone:  %s\n", user.ID, user.Email, user.FullName, user.Phone)
	return nil
}

func runSessionSSO(cmd *cobra.Command, args []string) error {
	m, cfg, err := newSessionManager()
	if err != nil {
		return err
	}
	if cfg.AuthBackend.TrainingPlatformURL == "" {
		return errors.New("training platform URL is not configured")
	}

	u, err := m.SSORedirectURL(contextOf(cmd), cfg.AuthBackend.TrainingPlatformURL, sessionNext)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), u)
	return nil
}

func runSessionLogout(cmd *cobra.Command, args []string) error {
	m, _, err := newSessionManager()
	if err != nil {
		return err
	}
	if err := m.Logout(contextOf(cmd)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "signed out")
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// describe prefixes err with its taxonomy kind so the terminal shows what went wrong.
func describe(err error) error {
	if errors.Is(err, authclient.ErrNoSession) {
		return errors.New("not signed in; run `academy session login` first")
	}
	var apiErr *authclient.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		parts := make([]string, 0, len(apiErr.Fields))
		for _, name := range apiErr.FieldNames() {
			parts = append(parts, name+": "+apiErr.Fields[name])
		}
		return fmt.Errorf("%s error: %w (%s)", authclient.Kind(err), err, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%s error: %w", authclient.Kind(err), err)
}
