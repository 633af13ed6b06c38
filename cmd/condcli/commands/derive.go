package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	conditions "crypto-conditions"
)

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive <fulfillment-uri>",
		Short: "Print the condition a fulfillment derives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, err := conditions.FulfillmentToCondition(args[0])
			if err != nil {
				return err
			}
			fmt.Println(uri)
			return nil
		},
	}
}
