package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/report"
	"astron-hq/astroncheck/pkg/schema"
)

// topLevelName selects the document root schema in "schema show".
const topLevelName = "document"

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the registered role schemas",
	Long: `Inspect the schemas configuration files are validated against.

Examples:
  # List role types
  astroncheck schema list

  # Show the attributes of a role type
  astroncheck schema show clientagent

  # Show the top-level document schema
  astroncheck schema show document`,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered role types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSchemas(cmd.OutOrStdout(), registry())
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show TYPE",
	Short: "Show the attributes of a role type",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return append([]string{topLevelName}, registry().Types()...), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSchema(cmd.OutOrStdout(), registry(), args[0])
	},
}

func init() {
	schemaCmd.AddCommand(schemaListCmd, schemaShowCmd)
	rootCmd.AddCommand(schemaCmd)
}

// registry builds the built-in registry with the configured channel policy.
func registry() *schema.Registry {
	return schema.Builtin(config.GetConfig().Validation.ChannelPolicy())
}

func listSchemas(w io.Writer, reg *schema.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tDESCRIPTION")
	for _, typ := range reg.Types() {
		rs, err := reg.SchemaFor(typ)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", rs.Type, rs.Description)
	}
	return tw.Flush()
}

func showSchema(w io.Writer, reg *schema.Registry, name string) error {
	var node *schema.Node
	if name == topLevelName {
		node = reg.TopLevel()
		fmt.Fprintln(w, "Top-level document")
	} else {
		rs, err := reg.SchemaFor(name)
		if err != nil {
			if errors.Is(err, schema.ErrUnknownRole) {
				if hint := report.SuggestName(name, reg.Types()); hint != "" {
					return fmt.Errorf("%w. %s", err, hint)
				}
			}
			return err
		}
		node = rs.Node
		fmt.Fprintf(w, "Role %s: %s\n", rs.Type, rs.Description)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTRIBUTE\tTYPE\tREQUIRED\tCONSTRAINT")
	writeFields(tw, "", node)
	if err := tw.Flush(); err != nil {
		return err
	}

	rules := collectRules("", node)
	if len(rules) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rules:")
		for _, r := range rules {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}

// writeFields prints one row per field, descending into nested mappings.
func writeFields(w io.Writer, prefix string, node *schema.Node) {
	for _, f := range node.Fields {
		name := prefix + f.Name
		required := "no"
		if f.Required {
			required = "yes"
		}
		constraint := f.Constraint
		if f.NonEmpty {
			constraint = strings.TrimPrefix(constraint+", non-empty", ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, f.TypeName(), required, constraint)
		if f.Kind == schema.KindMapping && f.Child != nil {
			writeFields(w, name+".", f.Child)
		}
	}
}

func collectRules(prefix string, node *schema.Node) []string {
	var out []string
	for _, r := range node.Rules {
		out = append(out, prefix+r.Description)
	}
	for _, f := range node.Fields {
		if f.Kind == schema.KindMapping && f.Child != nil {
			out = append(out, collectRules(prefix+f.Name+".", f.Child)...)
		}
	}
	return out
}
