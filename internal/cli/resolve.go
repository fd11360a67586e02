package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modelsrepo/internal/adapters"
	"modelsrepo/internal/app"
	"modelsrepo/internal/types"
)

type resolveOptions struct {
	Repo       string
	Mode       string
	Output     string
	Format     string
	ExpandDir  string
	TimeoutSec int
	CacheSize  int
	NoMetadata bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve DTMI [DTMI...]",
		Short: "Resolve DTMIs and their dependencies from a models repository",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Repo, "repo", adapters.DefaultRepository, "Repository location (URL or path)")
	cmd.Flags().StringVar(&opts.Mode, "mode", string(types.DependencyModeEnabled), "Dependency mode: disabled, enabled, or tryFromExpanded")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&opts.ExpandDir, "expand-to", "", "Write resolved models as a repository tree under this directory")
	cmd.Flags().IntVar(&opts.TimeoutSec, "timeout", 60, "Per-request timeout in seconds")
	cmd.Flags().IntVar(&opts.CacheSize, "cache-size", 0, "LRU document cache size (0 disables)")
	cmd.Flags().BoolVar(&opts.NoMetadata, "no-metadata", false, "Skip the repository capability probe")

	_ = viper.BindPFlag("repo", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("cache_size", cmd.Flags().Lookup("cache-size"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions, dtmis []string) error {
	mode, ok := types.ParseDependencyMode(resolveString(cmd, opts.Mode, "mode", "mode"))
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mode must be disabled, enabled, or tryFromExpanded")
	}

	service, err := app.NewService(resolveString(cmd, opts.Repo, "repo", "repo"), app.Options{
		Timeout:         time.Duration(resolveInt(cmd, opts.TimeoutSec, "timeout", "timeout")) * time.Second,
		CacheSize:       resolveInt(cmd, opts.CacheSize, "cache_size", "cache-size"),
		DisableMetadata: opts.NoMetadata,
	})
	if err != nil {
		return err
	}

	resolved, err := service.Resolve(ctx, app.ResolveRequest{Dtmis: dtmis, Mode: mode})
	if err != nil {
		return err
	}

	if opts.ExpandDir != "" {
		writer := adapters.NewOutputWriterAdapter(os.Stdout)
		if err := writer.WriteRepository(resolved, opts.ExpandDir); err != nil {
			return err
		}
		fmt.Printf("resolved %d model(s) into %s\n", len(resolved), opts.ExpandDir)
		return nil
	}

	out := os.Stdout
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	writer := adapters.NewOutputWriterAdapter(out)
	return writer.WriteModels(resolved, types.OutputFormat(opts.Format))
}
