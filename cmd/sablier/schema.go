package main

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

type schemaOptions struct {
	partial bool
}

func newSchemaCmd() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate the JSON Schema of the stored theme document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var schema *jsonschema.Schema
			if opts.partial {
				schema = themeReflector().Reflect(&theme.Partial{})
			} else {
				schema = themeReflector().Reflect(&theme.Theme{})
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(schema)
		},
	}

	cmd.Flags().BoolVar(&opts.partial, "partial", false, "Generate the schema of a customization document")

	return cmd
}

func themeReflector() *jsonschema.Reflector {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.ExpandedStruct = true
	reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
		switch t {
		case reflect.TypeOf(theme.Colors{}):
			return colorsSchema()
		case reflect.TypeOf(theme.ColorScheme("")):
			return &jsonschema.Schema{
				Type: "string",
				Enum: []any{string(theme.SchemeLight), string(theme.SchemeDark), string(theme.SchemeSystem)},
			}
		}
		return nil
	}
	return reflector
}

// colorsSchema describes the flat-or-grouped color map, which has no exported
// fields to reflect on.
func colorsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Color tokens. A string value is a flat token; an object is a group whose members project as <group>-<key>.",
		AdditionalProperties: &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "string"},
				{Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "string"}},
			},
		},
	}
}
