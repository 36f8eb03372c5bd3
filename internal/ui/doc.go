// Package ui holds the terminal presentation used by the CLI.
//
// [SetupModel] is a bubbletea form collecting Spotify application credentials (client id, client secret and
// redirect URI) for `moodmix setup` when they are not passed as flags. [RunSetup] drives it to completion.
//
// [Palette] renders titles, success, error and warning lines with lipgloss; [Styles] is the shared instance.
package ui
