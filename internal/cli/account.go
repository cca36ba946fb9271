package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MiracleBell/java-go-game/internal/protocol"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <login> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{
				Command:  protocol.CmdRegister,
				Login:    args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}

			var payload protocol.AuthPayload
			if err := decodePayload(resp, &payload); err != nil {
				return err
			}
			if err := cfg.SaveToken(payload.Token); err != nil {
				return err
			}

			fmt.Printf("Registered as %s\n", args[0])
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <login> <password>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do(protocol.Request{
				Command:  protocol.CmdLogin,
				Login:    args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}

			var payload protocol.AuthPayload
			if err := decodePayload(resp, &payload); err != nil {
				return err
			}
			if err := cfg.SaveToken(payload.Token); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", args[0])
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Do(protocol.Request{Command: protocol.CmdLogout}); err != nil {
				return err
			}
			if err := cfg.ClearToken(); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}
