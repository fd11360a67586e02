package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modelsrepo/internal/core"
)

type validateOptions struct {
	ShowPath bool
	Expanded bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate DTMI [DTMI...]",
		Short: "Check DTMIs against the grammar and print their storage paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.ShowPath, "show-path", false, "Print the canonical repository path for each DTMI")
	cmd.Flags().BoolVar(&opts.Expanded, "expanded", false, "Use the expanded document path with --show-path")
	return cmd
}

func runValidate(opts validateOptions, dtmis []string) error {
	var invalid []string
	for _, dtmi := range dtmis {
		if !core.IsValidDtmi(dtmi) {
			invalid = append(invalid, dtmi)
			continue
		}
		if opts.ShowPath {
			fmt.Printf("%s %s\n", dtmi, core.DtmiToPath(dtmi, opts.Expanded))
		} else {
			fmt.Printf("%s valid\n", dtmi)
		}
	}
	if len(invalid) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid DTMI(s): %s", strings.Join(invalid, ", ")))
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}
