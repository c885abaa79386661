package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

var (
	credLogin    string
	credPassword string
	credName     string
	credRole     string
	credUserID   int64
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage API credentials",
}

var credentialsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a credential, an Administrator by default",
	Long: `Registers a login directly in the database. Use it to bootstrap the first
Administrator, since POST /api/v1/security itself requires one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if credLogin == "" || credPassword == "" {
			return errors.New("--login and --password are required")
		}
		a, err := appFromContext(cmd.Context())
		if err != nil {
			return err
		}

		name := credName
		if name == "" {
			name = credLogin
		}
		in := ports.RegisterInput{
			Login:    credLogin,
			Password: credPassword,
			Name:     name,
			Role:     credRole,
		}
		if credUserID > 0 {
			in.UserID = &credUserID
		}

		sec, err := a.Services.Security.Register(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create credential: %w", err)
		}
		fmt.Printf("Created credential %d: %s (%s)\n", sec.ID, sec.Login, sec.Role)
		return nil
	},
}

func init() {
	f := credentialsCreateCmd.Flags()
	f.StringVar(&credLogin, "login", "", "login name")
	f.StringVar(&credPassword, "password", "", "password, at least 6 characters")
	f.StringVar(&credName, "name", "", "display name (defaults to the login)")
	f.StringVar(&credRole, "role", domain.RoleAdministrator, "Administrator or User")
	f.Int64Var(&credUserID, "user-id", 0, "optional id of the linked user")

	credentialsCmd.AddCommand(credentialsCreateCmd)
}
