package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/vibeprompt/internal/config"
	"github.com/mark3labs/vibeprompt/internal/credentials"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Gemini API key",
	Long: `Manage the Gemini API key.

The key is looked up in GEMINI_API_KEY, then GOOGLE_API_KEY, then the
system keychain. 'auth set' stores it in the keychain.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key in the system keychain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			var err error
			if key, err = readKey(cmd); err != nil {
				return err
			}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("API key cannot be empty")
		}
		if err := credentials.Store(key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s in the system keychain\n", credentials.Mask(key))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		key, source, err := credentials.Resolve()
		if errors.Is(err, credentials.ErrNoAPIKey) {
			fmt.Fprintln(cmd.OutOrStdout(), "No API key configured")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (from %s)\n", credentials.Mask(key), source)
		return nil
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the API key from the system keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credentials.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed from the system keychain")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authClearCmd)
}

// readKey prompts without echo on a terminal and reads a line otherwise.
func readKey(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Gemini API key: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return line, nil
}
