package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextEntry, []string{"n", "pgdown"}, "Next entry", "playback"},
	{ActionPrevEntry, []string{"p", "pgup"}, "Previous entry", "playback"},
	{ActionSeekBack, []string{"left"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek forward", "playback"},
	{ActionCycleLoop, []string{"r"}, "Cycle loop mode", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Toggle mute", "playback"},

	// Playlist
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First entry", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last entry", "playlist"},
	{ActionSelect, []string{"enter"}, "Play entry", "playlist"},
	{ActionDelete, []string{"d", "delete"}, "Remove entry", "playlist"},
	{ActionMoveItemDown, []string{"J"}, "Drag entry down", "playlist"},
	{ActionMoveItemUp, []string{"K"}, "Drag entry up", "playlist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
