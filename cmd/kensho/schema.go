package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	js "github.com/reoring/kensho/jsonschema"
	"github.com/reoring/kensho/validation/user"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the user record JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sch, err := user.Schema().JSONSchema()
			if err != nil {
				return fmt.Errorf("project schema: %w", err)
			}
			b, err := json.MarshalIndent(js.Document(sch, "User"), "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			_, err = fmt.Fprintln(a.stdout, string(b))
			return err
		},
	}
}
