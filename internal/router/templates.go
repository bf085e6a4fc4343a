package router

import "github.com/ytget/ytm-offline/internal/model"

// Route is a navigable path, e.g. "/audio/upload"
type Route string

// Supported routes
const (
	RouteRoot             Route = "/"
	RouteAudio            Route = "/audio"
	RoutePlaylist         Route = "/playlist"
	RouteAudioUpload      Route = "/audio/upload"
	RoutePlaylistUpload   Route = "/playlist/upload"
	RouteAudioDownload    Route = "/audio/download"
	RoutePlaylistDownload Route = "/playlist/download"
	RouteLogin            Route = "/login"
	RouteRegister         Route = "/register"
)

// String returns the string representation of Route
func (r Route) String() string {
	return string(r)
}

// InputKind is the widget an input is rendered with
type InputKind string

const (
	InputText   InputKind = "text"
	InputSecret InputKind = "secret"
	InputFiles  InputKind = "files"
)

// Input declares one field a view collects
type Input struct {
	Name       string
	Kind       InputKind
	Label      string
	Extensions []string // InputFiles only, e.g. ".mp3"
	Multiple   bool     // InputFiles only
}

// ActionKind is what the submit control of a view does
type ActionKind string

const (
	ActionNone        ActionKind = "none"
	ActionSubmitURL   ActionKind = "submit-url"
	ActionUploadFiles ActionKind = "upload-files"
)

// Action is the submit action of a view
type Action struct {
	Kind      ActionKind
	Media     model.MediaKind // ActionSubmitURL only
	Direction model.Direction // ActionSubmitURL only
	Label     string          // button text
}

// MenuEntry is one item of the root menu
type MenuEntry struct {
	Label string
	Route Route
}

// Template is the static description of a view
type Template struct {
	Route   Route
	Title   string
	Heading string
	Inputs  []Input
	Action  Action
	Menu    []MenuEntry // root only
}

// Input names shared with the renderer
const (
	InputURL      = "url"
	InputFileSet  = "files"
	InputUsername = "username"
	InputPassword = "password"
)

var (
	audioExtensions    = []string{".mp3"}
	playlistExtensions = []string{".zip"}
)

func urlTemplate(route Route, title, label string, media model.MediaKind, dir model.Direction) Template {
	return Template{
		Route:   route,
		Title:   title,
		Heading: "This is the " + title + " Page",
		Inputs:  []Input{{Name: InputURL, Kind: InputText, Label: label}},
		Action:  Action{Kind: ActionSubmitURL, Media: media, Direction: dir, Label: "Submit"},
	}
}

func uploadTemplate(route Route, title string, extensions []string) Template {
	return Template{
		Route:   route,
		Title:   title,
		Heading: "This is the " + title + " Page",
		Inputs: []Input{{
			Name:       InputFileSet,
			Kind:       InputFiles,
			Label:      "Select files...",
			Extensions: extensions,
			Multiple:   true,
		}},
		Action: Action{Kind: ActionUploadFiles, Label: "Upload"},
	}
}

func credentialsTemplate(route Route, title, submit string) Template {
	return Template{
		Route:   route,
		Title:   title,
		Heading: title,
		Inputs: []Input{
			{Name: InputUsername, Kind: InputText, Label: "Username"},
			{Name: InputPassword, Kind: InputSecret, Label: "Password"},
		},
		Action: Action{Kind: ActionNone, Label: submit},
	}
}

var registry = map[Route]Template{
	RouteRoot: {
		Route:   RouteRoot,
		Title:   "ytm-offline",
		Heading: "Choose what to send or fetch from the menu",
		Action:  Action{Kind: ActionNone},
		Menu: []MenuEntry{
			{Label: "Audio URL", Route: RouteAudio},
			{Label: "Playlist URL", Route: RoutePlaylist},
			{Label: "Audio Upload", Route: RouteAudioUpload},
			{Label: "Playlist Upload", Route: RoutePlaylistUpload},
			{Label: "Audio Download", Route: RouteAudioDownload},
			{Label: "Playlist Download", Route: RoutePlaylistDownload},
			{Label: "Login", Route: RouteLogin},
			{Label: "Register", Route: RouteRegister},
		},
	},
	RouteAudio:            urlTemplate(RouteAudio, "Audio URL", "Enter song URL", model.MediaAudio, model.DirectionUpload),
	RoutePlaylist:         urlTemplate(RoutePlaylist, "Playlist URL", "Enter playlist URL", model.MediaPlaylist, model.DirectionUpload),
	RouteAudioDownload:    urlTemplate(RouteAudioDownload, "Audio Download", "Enter song URL", model.MediaAudio, model.DirectionDownload),
	RoutePlaylistDownload: urlTemplate(RoutePlaylistDownload, "Playlist Download", "Enter playlist URL", model.MediaPlaylist, model.DirectionDownload),
	RouteAudioUpload:      uploadTemplate(RouteAudioUpload, "Upload .mp3 audio", audioExtensions),
	RoutePlaylistUpload:   uploadTemplate(RoutePlaylistUpload, "Upload .zip playlist", playlistExtensions),
	RouteLogin:            credentialsTemplate(RouteLogin, "Login", "Log in"),
	RouteRegister:         credentialsTemplate(RouteRegister, "Register", "Create account"),
}

// Lookup returns the template registered for route. Matching is exact and
// case-sensitive.
func Lookup(route Route) (Template, bool) {
	t, ok := registry[route]
	return t, ok
}

// Routes returns every supported route, root first, then in menu order
func Routes() []Route {
	root := registry[RouteRoot]
	routes := make([]Route, 0, len(root.Menu)+1)
	routes = append(routes, RouteRoot)
	for _, entry := range root.Menu {
		routes = append(routes, entry.Route)
	}
	return routes
}
