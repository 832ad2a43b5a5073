package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/simon/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printSettings(cmd.OutOrStdout(), v)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// printSettings writes every resolved key, sorted, with the file it came from
func printSettings(w io.Writer, v *viper.Viper) {
	if used := v.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# no config file, defaults and environment only")
	}

	keys := v.AllKeys()
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s = %v\n", k, v.Get(k))
	}
}
