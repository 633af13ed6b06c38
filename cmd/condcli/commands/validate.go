package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	conditions "crypto-conditions"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a condition or fulfillment",
	}

	var message string

	condCmd := &cobra.Command{
		Use:   "condition <condition-uri>",
		Short: "Check that a condition URI is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conditions.ValidateCondition(args[0]); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	fulfillCmd := &cobra.Command{
		Use:   "fulfillment <fulfillment-uri> <condition-uri>",
		Short: "Check that a fulfillment satisfies a condition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := base64.StdEncoding.DecodeString(message)
			if err != nil {
				return fmt.Errorf("bad --message: %w", err)
			}
			if err := conditions.ValidateFulfillment(args[0], args[1], msg); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	fulfillCmd.Flags().StringVar(&message, "message", "", "base64-encoded message the fulfillment must validate against")

	cmd.AddCommand(condCmd, fulfillCmd)
	return cmd
}
