package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rojo-rbx/rokit/internal/github"
	"github.com/rojo-rbx/rokit/internal/manifest"
)

var (
	authRemove     bool
	authToken      string
	authSkipVerify bool
)

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Store (or remove) a GitHub bearer token used for release lookups",
	Long: `Authenticate saves a GitHub personal access token to auth.toml
under Home, used as a bearer token on every GitHub API request so installs
aren't subject to GitHub's much lower unauthenticated rate limit. With
--remove, any stored token is deleted instead.`,
	Args: cobra.NoArgs,
	RunE: runAuthenticate,
}

func init() {
	authenticateCmd.Flags().BoolVar(&authRemove, "remove", false, "Remove any stored token instead of setting one")
	authenticateCmd.Flags().StringVar(&authToken, "token", "", "Token value; prompted for on stdin if omitted")
	authenticateCmd.Flags().BoolVar(&authSkipVerify, "skip-verify", false, "Store the token without confirming it against the provider first")
}

func runAuthenticate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.AuthManifestPath()

	authManifest, err := manifest.LoadAuthManifest(path)
	if err != nil {
		return err
	}

	if authRemove {
		authManifest.RemoveToken(github.ProviderName)
		if err := authManifest.Save(path); err != nil {
			return err
		}
		cmd.Println("Removed stored GitHub token")
		return nil
	}

	token := authToken
	if token == "" {
		token, err = promptForToken(cmd)
		if err != nil {
			return err
		}
	}

	provider, err := github.NewProvider(token)
	if err != nil {
		return err
	}
	if !authSkipVerify {
		if err := provider.VerifyToken(cmd.Context()); err != nil {
			return err
		}
	}

	authManifest.SetToken(github.ProviderName, token)
	if err := authManifest.Save(path); err != nil {
		return err
	}

	cmd.Println("Stored GitHub token")
	return nil
}

func promptForToken(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "GitHub personal access token: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
