package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tadreeb/academy/internal/app/models"
	appRepos "github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/bootstrap"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	pkgAuth "github.com/tadreeb/academy/internal/pkg/auth"
)

// AdminPasswordEnv supplies the password for non-interactive use
const AdminPasswordEnv = "ACADEMY_ADMIN_PASSWORD"

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office users",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a back-office user",
	Long:  "Create a back-office user. The password is read from " + AdminPasswordEnv + " or, when unset, from the first line of stdin.",
	RunE:  runAdminCreate,
}

var (
	adminEmail string
	adminName  string
	adminRole  string
)

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "Full name")
	adminCreateCmd.Flags().StringVar(&adminRole, "role", string(models.RoleAdmin), "Role: ADMIN or EDITOR")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("name")

	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	password, err := readSecret(cmd, AdminPasswordEnv, "Password: ")
	if err != nil {
		return err
	}

	cfg, lgr, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	repos := appRepos.NewRepositories(database.Pool)
	svc := services.NewAdminAuthService(repos.UserRepository, repos.TokenRepository, pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	}), lgr)

	user, err := svc.CreateUser(context.Background(), adminEmail, password, adminName, models.Role(strings.ToUpper(adminRole)))
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return fmt.Errorf("a user with email %s already exists", adminEmail)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}

// readSecret takes the value from env when set, otherwise the first line of stdin.
func readSecret(cmd *cobra.Command, env, prompt string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("no value given; set %s or pipe it on stdin", env)
	}
	return line, nil
}
