package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage pipeline defaults",
	Long: `View and change the defaults used by discover-topics, build and extract.

Values are stored in config.toml under $KGTOOL_HOME (default ~/.kgtool).
Command-line flags always override these defaults.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Validates and stores a setting. When the value is omitted it is read
from standard input, showing the current value as the default.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	keys := settingsService.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	for _, k := range keys {
		v, err := settingsService.Value(k)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", k, err)
		}
		fmt.Fprintf(out, "  %s  %s\n", styled(out, labelStyle, fmt.Sprintf("%-*s", width, k)), v)
	}
	if configPath != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styled(out, mutedStyle, "Config file: "+configPath))
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	v, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key := args[0]

	current, err := settingsService.Value(key)
	if err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		value = prompt(cmd.OutOrStdout(), cmd.InOrStdin(), key, current)
	}

	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// prompt asks for a value, returning defaultVal on empty input.
func prompt(w io.Writer, r io.Reader, label, defaultVal string) string {
	fmt.Fprintf(w, "%s [%s]: ", label, defaultVal)
	input, _ := bufio.NewReader(r).ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}
