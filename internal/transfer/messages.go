package transfer

import (
	"errors"
	"fmt"

	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/transport"
)

// Dialog titles
const (
	TitleSuccess       = "Success"
	TitleUnauthorized  = "Unauthorized"
	TitleError         = "Error"
	TitleDownloadReady = "Download ready"
	TitleFileUploaded  = "File Uploaded"
	TitleFilesUploaded = "Files Uploaded"
)

// Dialog bodies
const (
	MsgAudioUploaded    = "File uploaded!"
	MsgPlaylistUploaded = "Playlist uploaded!"
	MsgUnauthorized     = "The backend rejected the request (401). Check your credentials or access token and try again."
	MsgTransportFailure = "Could not reach the backend. Check that it is running and try again."
	MsgSingleFileDone   = "File has been uploaded!"
)

// uploadedMessage returns the success body for a URL upload of media
func uploadedMessage(media model.MediaKind) string {
	if media == model.MediaPlaylist {
		return MsgPlaylistUploaded
	}
	return MsgAudioUploaded
}

// batchDoneMessage returns the title and body shown once a batch completes
func batchDoneMessage(total int) (string, string) {
	if total == 1 {
		return TitleFileUploaded, MsgSingleFileDone
	}
	return TitleFilesUploaded, fmt.Sprintf("All %d files have been uploaded!", total)
}

// failureMessage returns the title and body for a failed outcome
func failureMessage(o model.Outcome) (string, string) {
	switch o.Kind {
	case model.OutcomeUnauthorized:
		return TitleUnauthorized, MsgUnauthorized
	case model.OutcomeServerError:
		return TitleError, fmt.Sprintf("The backend answered with status %d.", o.StatusCode)
	default:
		if o.Err != nil && !errors.Is(o.Err, transport.ErrTransport) {
			return TitleError, fmt.Sprintf("The request could not be sent: %v", o.Err)
		}
		return TitleError, MsgTransportFailure
	}
}

func downloadReadyMessage(id string) string {
	return fmt.Sprintf("Saved as %s", id)
}

func confirmLaunchMessage(url string) string {
	return fmt.Sprintf("Open %s now?", url)
}
