// Package users holds account bootstrap commands.
package users

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/db/bunx"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

var (
	usernameFlag string
	emailFlag    string
	passwordFlag string
	nicknameFlag string
	adminFlag    bool
	stdinFlag    bool
)

// UsersCmd is the parent command for account management.
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Account management commands",
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	Long:  `Creates an account directly in the database. Use --admin to bootstrap the first administrator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if usernameFlag == "" {
			return fmt.Errorf("--username flag is required")
		}
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}
		if _, err := mail.ParseAddress(emailFlag); err != nil {
			return fmt.Errorf("invalid email format: %w", err)
		}

		password := passwordFlag
		if stdinFlag {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}
		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		ctx := context.Background()
		users := repository.NewBunUserRepository(db)

		if _, err := users.GetByUsername(ctx, usernameFlag); err == nil {
			return fmt.Errorf("username %q is taken", usernameFlag)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if _, err := users.GetByEmail(ctx, emailFlag); err == nil {
			return fmt.Errorf("user with email %q already exists", emailFlag)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		role := auth.RoleUser
		if adminFlag {
			role = auth.RoleAdmin
		}
		nickname := nicknameFlag
		if nickname == "" {
			nickname = usernameFlag
		}

		user := &models.User{
			Username:     usernameFlag,
			Email:        emailFlag,
			PasswordHash: hash,
			Nickname:     nickname,
			Role:         string(role),
			Status:       models.StatusActive,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Println("User created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("User ID: %d\n", user.ID)
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Role: %s\n", user.Role)
		fmt.Println("----------------------------------------")

		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&usernameFlag, "username", "", "Login username (required)")
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Account email (required)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Account password")
	createCmd.Flags().StringVar(&nicknameFlag, "nickname", "", "Display name (defaults to username)")
	createCmd.Flags().BoolVar(&adminFlag, "admin", false, "Grant the admin role")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the password from stdin")

	UsersCmd.AddCommand(createCmd)
}
