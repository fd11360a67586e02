package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"modelsrepo/internal/adapters"
	"modelsrepo/internal/app"
)

type metadataOptions struct {
	Repo       string
	TimeoutSec int
}

func newMetadataCommand() *cobra.Command {
	opts := metadataOptions{}
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Fetch a repository's metadata document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMetadata(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repo, "repo", adapters.DefaultRepository, "Repository location (URL or path)")
	cmd.Flags().IntVar(&opts.TimeoutSec, "timeout", 60, "Per-request timeout in seconds")
	return cmd
}

func runMetadata(ctx context.Context, cmd *cobra.Command, opts metadataOptions) error {
	service, err := app.NewService(resolveString(cmd, opts.Repo, "repo", "repo"), app.Options{
		Timeout: time.Duration(resolveInt(cmd, opts.TimeoutSec, "timeout", "timeout")) * time.Second,
	})
	if err != nil {
		return err
	}
	meta, err := service.Metadata(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(meta)
}
