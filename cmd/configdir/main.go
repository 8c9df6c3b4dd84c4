// configdir is a CLI for inspecting directory-based configuration: it loads
// a directory the way the library would and prints the merged tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linxlib/configdir"
)

var (
	profile        string
	defaultProfile string
	pattern        string
	format         string
	driverName     string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:           "configdir",
	Short:         "Inspect directory-based configuration",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var dumpCmd = &cobra.Command{
	Use:   "dump <directory>",
	Short: "Load a configuration directory and print the merged tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder := configdir.DriverByName(format)
		if encoder == nil {
			return fmt.Errorf("unknown format %q", format)
		}
		driver := configdir.DriverByName(driverName)
		if driver == nil {
			return fmt.Errorf("unknown driver %q", driverName)
		}

		// The dump never feeds the shared store.
		tree, err := configdir.Load(args[0], &configdir.Option{
			Pattern:        pattern,
			Driver:         driver,
			Profile:        profile,
			DefaultProfile: defaultProfile,
			Verbose:        verbose,
			DryRun:         true,
		})
		if err != nil {
			return err
		}

		out, err := encoder.Encode(tree)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s", out)
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&profile, "profile", "", "Active profile (default: CONFIGDIR_ENV or \"development\")")
	dumpCmd.Flags().StringVar(&defaultProfile, "default-profile", "default", "Profile merged underneath the active one")
	dumpCmd.Flags().StringVar(&pattern, "pattern", "", "Comma-separated glob set (default: the yaml driver's)")
	dumpCmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json or toml")
	dumpCmd.Flags().StringVar(&driverName, "driver", "yaml", "Input driver: yaml, json or toml")
	dumpCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print files as they load")
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
