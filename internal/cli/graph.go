package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/typewire/typewire/internal/config"
	"github.com/typewire/typewire/pkg/store"
	"github.com/typewire/typewire/pkg/wire"
)

// newGraphCmd creates the graph command group for working with the graph
// store. All subcommands share the --config flag; without it the default
// configuration (local MongoDB) is used.
func newGraphCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Push, pull, list and remove documents in the graph store",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (TOML)")

	cmd.AddCommand(newGraphPushCmd(&configPath))
	cmd.AddCommand(newGraphListCmd(&configPath))
	cmd.AddCommand(newGraphPullCmd(&configPath))
	cmd.AddCommand(newGraphRmCmd(&configPath))

	return cmd
}

// openStore loads config and connects to the configured MongoDB store.
func openStore(ctx context.Context, configPath string) (store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	sp := newSpinnerWithContext(ctx, "Connecting to "+cfg.Mongo.URI)
	sp.Start()
	st, err := store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	sp.Stop()
	if err != nil {
		return nil, err
	}
	return st, nil
}

func newGraphPushCmd(configPath *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Upload a type-graph document to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			// Validate before uploading so the store only ever holds
			// decodable documents.
			types, err := wire.Deserialize(bytes.NewReader(data))
			if err != nil {
				return err
			}

			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if name == "" {
				name = filepath.Base(args[0])
			}
			g, err := st.Put(ctx, name, data, len(types))
			if err != nil {
				return err
			}

			printSuccess("Pushed %s (%d nodes)", name, g.NodeCount)
			printKeyValue("id", g.ID)
			printKeyValue("hash", g.Hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name to store the document under (default: file name)")
	return cmd
}

func newGraphListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			graphs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(graphs) == 0 {
				printInfo("store is empty")
				return nil
			}

			for _, g := range graphs {
				printKeyValue(g.Name, fmt.Sprintf("%s  %d nodes  %s",
					g.ID, g.NodeCount, g.CreatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func newGraphPullCmd(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [id]",
		Short: "Download a document from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			g, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = g.Name + ".json"
			}
			out, err := openOutput(path)
			if err != nil {
				return err
			}
			defer out.Close()
			if _, err := out.Write(g.Data); err != nil {
				return err
			}

			printSuccess("Pulled %s (%d nodes)", g.Name, g.NodeCount)
			if path != "-" {
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json, '-' for stdout)")
	return cmd
}

func newGraphRmCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a document from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}
