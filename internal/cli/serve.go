package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytm-offline/internal/assets"
)

func newServeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the assets directory until interrupted",
		Long: `Serve the assets directory so that downloaded artifacts can be
opened by URL without the GUI running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := assets.NewServer(st.cfg.Self.Address(), st.cfg.Assets.Dir, st.logger.Component("assets"))
			addr, err := server.Start()
			if err != nil {
				return fmt.Errorf("failed to start assets server: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s%s\n", st.cfg.Assets.Dir, addr, assets.PathPrefix)

			<-cmd.Context().Done()
			return server.Shutdown(context.Background())
		},
	}
}
