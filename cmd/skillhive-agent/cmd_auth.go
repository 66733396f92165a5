package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in with email and password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		res, err := backend.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		if err := sess.Begin(res); err != nil {
			return fmt.Errorf("signed in, but failed to persist token: %w", err)
		}
		fmt.Printf("✅ Signed in as %s %s <%s>\n", res.User.FirstName, res.User.LastName, res.User.Email)
		return nil
	},
}

var (
	regFirstName string
	regLastName  string
	regAddress   string
	regBirthday  string
	regAvatarURL string
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		res, err := backend.Register(cmd.Context(), domain.Registration{
			Email:     args[0],
			Password:  password,
			FirstName: regFirstName,
			LastName:  regLastName,
			Address:   regAddress,
			Birthday:  regBirthday,
			AvatarURL: regAvatarURL,
		})
		if err != nil {
			return err
		}
		if err := sess.Begin(res); err != nil {
			return fmt.Errorf("registered, but failed to persist token: %w", err)
		}
		fmt.Printf("✅ Welcome to SkillHive, %s!\n", res.User.FirstName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.End(); err != nil {
			return err
		}
		fmt.Println("👋 Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := sess.User()
		if u == nil {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("%s %s <%s>  id=%s\n", u.FirstName, u.LastName, u.Email, u.ID)
		if u.Address != "" {
			fmt.Printf("  address:  %s\n", u.Address)
		}
		if u.Birthday != "" {
			fmt.Printf("  birthday: %s\n", u.Birthday)
		}
		return nil
	},
}

// promptSecret reads a password from stdin. Plain line read; the agent is
// meant for scripted and dev use, not shared terminals.
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	secret := strings.TrimSpace(line)
	if secret == "" {
		return "", fmt.Errorf("password is required")
	}
	return secret, nil
}

func init() {
	registerCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&regAddress, "address", "", "address")
	registerCmd.Flags().StringVar(&regBirthday, "birthday", "", "birthday (YYYY-MM-DD)")
	registerCmd.Flags().StringVar(&regAvatarURL, "avatar-url", "", "avatar URL")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
