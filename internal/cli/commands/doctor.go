package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	cliconfig "github.com/xenon-lang/carrier/internal/cli/config"
	"github.com/xenon-lang/carrier/internal/source"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks      []HealthCheck `json:"checks"`
	SourceFiles int           `json:"source_files"`
	IssueCount  int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project and toolchain setup",
		Long: `Check that the project is in a runnable state.

The doctor command verifies that the configuration file is present,
that the configured compiler, interpreter, and VM can be found, and
that the source directory contains Xenon files. A missing tool is the
most common reason a build or run fails with a spawn error.`,
		Example: `  # Check the project
  carrier doctor

  # Machine-readable output
  carrier doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContext(cmd)
	settings := cmdCtx.Settings
	r := cmdCtx.Renderer

	out := DoctorOutput{}

	if cfgFile := cliconfig.GetConfigFileUsed(); cfgFile != "" {
		out.Checks = append(out.Checks, HealthCheck{Name: "config file", Status: "pass", Detail: cfgFile})
	} else {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "config file", Status: "warn",
			Detail: "no carrier.yaml found; using defaults (run 'carrier init'?)",
		})
	}

	tools := []struct {
		name string
		path string
	}{
		{"compiler", settings.CompilerPath},
		{"interpreter", settings.InterpreterPath},
		{"vm", settings.VMPath},
	}
	for _, tool := range tools {
		resolved, err := exec.LookPath(tool.path)
		if err != nil {
			out.Checks = append(out.Checks, HealthCheck{
				Name: tool.name, Status: "fail",
				Detail: fmt.Sprintf("%q not found: %v", tool.path, err),
			})
			continue
		}
		out.Checks = append(out.Checks, HealthCheck{Name: tool.name, Status: "pass", Detail: resolved})
	}

	if _, err := os.Stat(settings.SrcDir); err != nil {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "source directory", Status: "warn",
			Detail: settings.SrcDir + " does not exist",
		})
	} else {
		files, err := source.Gather(settings.SrcDir)
		if err != nil {
			return err
		}
		out.SourceFiles = len(files)
		status := "pass"
		if len(files) == 0 {
			status = "warn"
		}
		out.Checks = append(out.Checks, HealthCheck{
			Name: "source directory", Status: status,
			Detail: fmt.Sprintf("%s (%d %s files)", settings.SrcDir, len(files), source.Ext),
		})
	}

	for _, c := range out.Checks {
		if c.Status != "pass" {
			out.IssueCount++
		}
	}

	if opts.Format == "json" {
		return r.JSON(out)
	}

	for _, c := range out.Checks {
		r.StatusLine(c.Name, c.Status, c.Detail)
	}
	r.Println("")
	if out.IssueCount == 0 {
		r.Success("Everything looks good")
	} else {
		r.Warning(fmt.Sprintf("%d issue(s) found", out.IssueCount))
	}

	return nil
}
