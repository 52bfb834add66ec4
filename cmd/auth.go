package cmd

import (
	"github.com/spf13/cobra"

	"github.com/velikanov/deezgrab/internal/app"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage authentication for Deezer.

Use 'auth token' to log in via browser and automatically extract your ARL token.`,
	}

	authTokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Login to Deezer and extract the ARL token",
		Long: `Opens a browser window for you to log in to Deezer.

The login process:
1. Browser opens at https://www.deezer.com/login
2. Accept cookies if prompted
3. Log in with your Deezer account
4. Wait for authentication to complete

After successful login, the 'arl' session cookie is automatically
extracted from the browser and saved to the configuration file.

You can then download a track:
deezgrab https://www.deezer.com/track/3135556`,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteAuthTokenCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add token subcommand to auth command.
	authCmd.AddCommand(authTokenCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
