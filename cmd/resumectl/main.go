// Command resumectl validates, renders and interactively fills resume
// exchange files without running the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-maker/internal/adapter/cli"
	"resume-maker/internal/domain"
	"resume-maker/internal/model"
	"resume-maker/internal/theme"
	"resume-maker/internal/usecase"
	infra "resume-maker/pkg/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd(cli.NewSurveyDriver()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(driver cli.PromptDriver) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "resumectl",
		Short:         "Work with resume exchange files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			switch strings.ToLower(logLevel) {
			case "debug":
				level = slog.LevelDebug
			case "info":
				level = slog.LevelInfo
			case "error":
				level = slog.LevelError
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateCmd(), renderCmd(), fillCmd(driver))
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a file is a valid exchange document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := readDocument(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func renderCmd() *cobra.Command {
	var (
		tpl, accent, format, out string
		templatesDir, chromePath string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render an exchange document to html, md, pdf, png or jpeg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			id, err := domain.ParseTemplate(tpl)
			if err != nil {
				return err
			}
			sel := domain.TemplateSelection{Template: id, AccentColor: accent}
			if err := sel.Validate(); err != nil {
				return err
			}
			themes, err := theme.NewRegistry(templatesDir, slog.Default())
			if err != nil {
				return err
			}
			exp := usecase.NewExporter(usecase.ExporterConfig{
				Renderer: infra.NewChromedpRenderer(chromePath),
				Themes:   themes,
				Logger:   slog.Default(),
			})

			ctx := cmd.Context()
			var dl usecase.Download
			switch strings.ToLower(format) {
			case "html":
				dl, err = exp.ExportHTML(ctx, doc, sel)
			case "md", "markdown":
				dl, err = exp.ExportMarkdown(ctx, doc, sel)
			case "pdf", "png", "jpeg":
				cfg := domain.DefaultExportConfig()
				cfg.Output = domain.OutputFormat(strings.ToLower(format))
				dl, err = exp.ExportDocument(ctx, doc, sel, cfg)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = usecase.SafeFileName(dl.FileName)
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(dl.Body)
				return err
			}
			if err := os.WriteFile(out, dl.Body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(dl.Body))
			return nil
		},
	}
	cmd.Flags().StringVarP(&tpl, "template", "t", string(domain.DefaultTemplate), "Template (classic, modern, minimal, creative)")
	cmd.Flags().StringVar(&accent, "accent", domain.DefaultAccentColor, "Accent color")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, - for stdout (default: derived from the name)")
	cmd.Flags().StringVar(&templatesDir, "templates-dir", "", "Directory with stylesheet overrides")
	cmd.Flags().StringVar(&chromePath, "chrome-path", "", "Chrome executable for pdf and image output")
	return cmd
}

func fillCmd(driver cli.PromptDriver) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a resume interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := model.Default()
			if in != "" {
				var err error
				if doc, err = readDocument(in); err != nil {
					return err
				}
			}
			filled, err := cli.NewFiller(driver).Fill(cmd.Context(), doc)
			if err != nil {
				return err
			}
			body, err := model.ToExchangeIndent(filled)
			if err != nil {
				return err
			}
			if out == "" {
				out = usecase.SafeFileName(usecase.BaseName(filled) + "_data.json")
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Exchange file to start from")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path")
	return cmd
}

func readDocument(path string) (model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.FromExchange(raw)
}
