package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/failure"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/spf13/cobra"
)

func newListCommand(factory ServiceFactory, opts *options) *cobra.Command {
	var (
		filter models.ListFilter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List guardrails, or the versions of one guardrail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, opts, func(svc guardrail.Manager) error {
				summaries, err := svc.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), summaries)
				}
				return writeTable(cmd.OutOrStdout(), summaries)
			})
		},
	}
	cmd.Flags().StringVar(&filter.GuardrailID, "guardrail-id", "", "list the versions of this guardrail")
	cmd.Flags().StringVar(&filter.NameContains, "name", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&filter.Status, "status", "", "status filter (READY, FAILED, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newGetCommand(factory ServiceFactory, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <guardrail-id>",
		Short: "Print the full configuration of a guardrail version as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, opts, func(svc guardrail.Manager) error {
				cfg, err := svc.Get(cmd.Context(), args[0], opts.version)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), cfg)
			})
		},
	}
}

func newExportCommand(factory ServiceFactory, opts *options) *cobra.Command {
	var (
		output       string
		resourceName string
	)

	cmd := &cobra.Command{
		Use:   "export <guardrail-id>",
		Short: "Export a guardrail version as a Terraform resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, opts, func(svc guardrail.Manager) error {
				hcl, err := svc.ExportTerraform(cmd.Context(), args[0], opts.version, resourceName)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = io.WriteString(cmd.OutOrStdout(), hcl)
					return err
				}
				if err := os.WriteFile(output, []byte(hcl), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	cmd.Flags().StringVar(&resourceName, "resource-name", "", "Terraform resource name")
	return cmd
}

func newDeleteCommand(factory ServiceFactory, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <guardrail-id>",
		Short: "Delete a guardrail, or one version with --version-id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, opts, func(svc guardrail.Manager) error {
				if err := svc.Delete(cmd.Context(), args[0], opts.version); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func writeTable(w io.Writer, summaries []models.GuardrailSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVERSION\tSTATUS\tUPDATED")
	for _, s := range summaries {
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.UTC().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Version, s.Status, updated)
	}
	return tw.Flush()
}

// printError prints service failures with their kind so scripts can grep for them.
func printError(w io.Writer, err error) {
	payload := failure.From(err)
	switch {
	case payload.Kind == failure.KindInternal:
		fmt.Fprintf(w, "error: %s\n", err)
	case payload.Code != "":
		fmt.Fprintf(w, "error (%s, %s): %s\n", payload.Kind, payload.Code, payload.Message)
	default:
		fmt.Fprintf(w, "error (%s): %s\n", payload.Kind, payload.Message)
	}
}
