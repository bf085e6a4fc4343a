package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/platform"
	"github.com/ytget/ytm-offline/internal/progress"
)

func newUploadCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Stream local audio files to the backend",
		Long: `Stream local audio files to the backend, all files at once.

Every file is sent as its own multipart request. The command fails unless
every file was accepted.`,
		Example: `  ytm-offline upload song.mp3
  ytm-offline upload ~/Music/album/*.mp3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := platform.DescribeFiles(args)
			if err != nil {
				return err
			}

			bars := progress.NewTerminalBars(len(files))
			for _, f := range files {
				bars.Add(f)
			}

			presenter := NewConsolePresenter(bars.Writer(), nil, false)
			c := newCore(st, presenter, nil)
			presenter.SetResponder(c.dialogs)
			defer c.dialogs.Close()

			c.tracker.SetUpdateCallback(bars.Observe)
			c.orch.SetFileResultCallback(func(name string, outcome model.Outcome) {
				if outcome.Kind.IsFailure() {
					bars.Fail(name, errors.New(outcome.String()))
				}
			})

			if err := c.orch.SubmitFiles(cmd.Context(), files); err != nil {
				bars.Wait()
				return err
			}
			c.orch.Wait()
			bars.Wait()

			if !c.tracker.IsBatchComplete() {
				completed, total := c.tracker.Counts()
				return fmt.Errorf("%d of %d files uploaded", completed, total)
			}
			return nil
		},
	}
	return cmd
}
