package admin

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/dmitrijs2005/jablog/internal/server/services"
)

var errPasswordMismatch = errors.New("passwords do not match")

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(userAddCommand())
	return cmd
}

func userAddCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "add --email EMAIL",
		Short: "Create user",
		Long: "Creates an account for the given email. The password is read twice from\n" +
			"the terminal without echo, or line by line from stdin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}

			password, err := readPassword(cmd.ErrOrStderr(), "password: ")
			if err != nil {
				return err
			}
			confirm, err := readPassword(cmd.ErrOrStderr(), "repeat password: ")
			if err != nil {
				return err
			}
			if !bytes.Equal(password, confirm) {
				return errPasswordMismatch
			}

			db, repos, err := openStore(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			codec, err := auth.NewCodec(e.cfg.SecretKey)
			if err != nil {
				return err
			}
			users, err := services.NewUserService(db, repos, codec, services.NewLogMailer(e.logger), e.logger, e.cfg)
			if err != nil {
				return err
			}

			user, err := users.Register(cmd.Context(), email, string(password))
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			e.logger.Info(cmd.Context(), "created user", "id", user.ID, "email", user.Email)
			cmd.Printf("created user %s\n", user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
