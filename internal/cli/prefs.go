package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/prefs"
)

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the stored preferences",
	}
	cmd.AddCommand(newPrefsGetCommand(rootOpts))
	cmd.AddCommand(newPrefsSetCommand(rootOpts))
	return cmd
}

func newPrefsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get",
		Short:         "Print entry mode and language",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := openPrefs(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer ps.Close()

			p, err := ps.Load(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load preferences", err)
			}
			printPrefs(cmd, p)
			return nil
		},
	}
}

func newPrefsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var entry, language string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change entry mode and/or language",
		Long: `Change entry mode (tap|drag) and/or language (en|es|zh|ko).
Flags that are not given keep their stored value.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if entry == "" && language == "" {
				return WrapExitError(ExitCommandError, "nothing to set", fmt.Errorf("give --entry and/or --language"))
			}

			ps, err := openPrefs(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer ps.Close()

			p, err := ps.Load(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load preferences", err)
			}
			if entry != "" {
				if p.Entry, err = prefs.ParseEntryMode(entry); err != nil {
					return WrapExitError(ExitCommandError, "invalid --entry", err)
				}
			}
			if language != "" {
				if p.Language, err = prefs.ParseLanguage(language); err != nil {
					return WrapExitError(ExitCommandError, "invalid --language", err)
				}
			}
			if err := ps.Save(cmd.Context(), p); err != nil {
				return WrapExitError(ExitCommandError, "failed to save preferences", err)
			}
			printPrefs(cmd, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "entry mode: tap or drag")
	cmd.Flags().StringVar(&language, "language", "", "language: en, es, zh or ko")

	return cmd
}

func printPrefs(cmd *cobra.Command, p prefs.Preferences) {
	fmt.Fprintf(cmd.OutOrStdout(), "entry: %s\nlanguage: %s\n", p.Entry, p.Language)
}
