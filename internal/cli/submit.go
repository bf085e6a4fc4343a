package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytm-offline/internal/model"
)

func newSubmitCmd(st *state) *cobra.Command {
	var (
		kind      string
		direction string
		assumeYes bool
		open      bool
	)

	cmd := &cobra.Command{
		Use:   "submit URL",
		Short: "Send a song or playlist URL to the backend",
		Long: `Send a song or playlist URL to the backend.

With --direction upload the backend ingests the URL. With --direction
download the backend answers with the artifact, which is saved under the
uploads folder of the assets directory.`,
		Example: `  ytm-offline submit --kind audio https://youtu.be/xyz
  ytm-offline submit --kind playlist --direction download --open https://youtube.com/playlist?list=abc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := model.ParseMediaKind(kind)
			if err != nil {
				return err
			}
			dir, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			presenter := NewConsolePresenter(out, cmd.InOrStdin(), assumeYes)
			c := newCore(st, presenter, consoleLauncher(out, st.cfg.UploadsDir(), open))
			presenter.SetResponder(c.dialogs)
			defer c.dialogs.Close()

			outcome, err := c.orch.SubmitURL(cmd.Context(), media, dir, args[0])
			presenter.Wait()
			if err != nil {
				return err
			}
			if outcome.Kind.IsFailure() {
				return fmt.Errorf("submission failed: %s", outcome)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(model.MediaAudio), "Media kind: audio or playlist")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(model.DirectionUpload), "Direction: upload or download")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
	cmd.Flags().BoolVar(&open, "open", false, "Open downloaded artifacts with the system handler")

	return cmd
}
