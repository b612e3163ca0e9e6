package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/app"
	"github.com/tahcohcat/ttsstudio/internal/models"
	"github.com/tahcohcat/ttsstudio/internal/studio"
)

type flags struct {
	prefs     models.Preferences
	textFile  string
	outputDir string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ttsctl",
		Short:         "Generate professional speech files from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newPreviewCmd(), newOptionsCmd(), newHistoryCmd())
	return root
}

func addPreferenceFlags(cmd *cobra.Command, f *flags) {
	d := models.DefaultPreferences()
	cmd.Flags().StringVar(&f.prefs.Voice, "voice", d.Voice, "voice identity")
	cmd.Flags().StringVar(&f.prefs.Style, "style", d.Style, "voice style")
	cmd.Flags().StringVar(&f.prefs.Tone, "tone", d.Tone, "tone")
	cmd.Flags().StringVar(&f.prefs.Punctuation, "punctuation", d.Punctuation, "punctuation handling")
	cmd.Flags().StringVar(&f.prefs.Delivery, "delivery", d.Delivery, "delivery style")
	cmd.Flags().StringVar(&f.prefs.Emphasis, "emphasis", d.Emphasis, "emphasis level")
	cmd.Flags().Float64Var(&f.prefs.Speed, "speed", d.Speed, "speech speed (0.5-2.0, step 0.1)")
	cmd.Flags().StringVarP(&f.textFile, "file", "f", "", "read text from file ('-' for stdin)")
}

// readText joins the positional args, or reads --file when given.
func readText(cmd *cobra.Command, f *flags, args []string) (string, error) {
	switch f.textFile {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	default:
		b, err := os.ReadFile(f.textFile)
		return string(b), err
	}
}

func newGenerateCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "generate [text...]",
		Short: "Synthesize text and save the MP3",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, f, args)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if f.outputDir != "" {
				cfg.Output.Dir = f.outputDir
			}

			a, err := app.Build(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			timeout := f.timeout
			if timeout == 0 {
				timeout = time.Duration(cfg.OpenAI.Timeout) * time.Second
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := a.Studio.Generate(ctx, text, f.prefs)
			if errors.Is(err, studio.ErrEmptyText) {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  Please enter text before generating audio")
				return err
			}
			var genErr *studio.GenerationError
			if errors.As(err, &genErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n💡 Troubleshooting Tips:\n", err)
				for _, tip := range studio.TroubleshootingTips {
					fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", tip)
				}
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✅ Professional audio generated successfully!")
			fmt.Fprintf(out, "📁 File: %s\n", res.FileName)
			fmt.Fprintf(out, "📍 Location: %s\n", res.Path)
			fmt.Fprintf(out, "📊 Size: %s\n", humanize.Bytes(uint64(res.Size)))
			return nil
		},
	}
	addPreferenceFlags(cmd, f)
	cmd.Flags().StringVarP(&f.outputDir, "output", "o", "", "output folder (overrides output.dir)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "request timeout (defaults to openai.timeout)")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "preview [text...]",
		Short: "Show the rewritten text and instruction block without calling the provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, f, args)
			if err != nil {
				return err
			}
			p := studio.New(nil, nil).Preview(text, f.prefs)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Characters: %d  Words: %d  Est. Duration: %.1f min\n\n",
				p.Stats.Characters, p.Stats.Words, p.Stats.EstimatedMinutes)
			fmt.Fprintf(out, "--- text ---\n%s\n\n--- instructions ---\n%s", p.Text, p.Instructions)
			return nil
		},
	}
	addPreferenceFlags(cmd, f)
	return cmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the available selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Voices:")
			for _, v := range models.Voices {
				fmt.Fprintf(out, "  %-8s %s\n", v.ID, v.Description)
			}
			list := func(title string, items []string) {
				fmt.Fprintf(out, "%s:\n", title)
				for _, it := range items {
					fmt.Fprintf(out, "  %s\n", it)
				}
			}
			list("Styles", models.Styles)
			list("Tones", models.Tones)
			list("Punctuation", models.Punctuations)
			list("Delivery", models.Deliveries)
			list("Emphasis", models.EmphasisLevels)
			fmt.Fprintf(out, "Speed: %.1f-%.1f (step %.1f)\n", models.MinSpeed, models.MaxSpeed, models.SpeedStep)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently generated files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("history is disabled (database.enabled=false)")
			}
			a, err := app.Build(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			gens, err := a.History.Recent(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range gens {
				fmt.Fprintf(out, "%s  %-8s %-30s %8s  %s\n",
					g.CreatedAt.Format("2006-01-02 15:04"), g.Voice, g.Style, humanize.Bytes(uint64(g.SizeBytes)), g.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}
