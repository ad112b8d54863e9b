// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextEntry   Action = "next_entry"
	ActionPrevEntry   Action = "prev_entry"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionCycleLoop   Action = "cycle_loop"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionToggleMute  Action = "toggle_mute"

	// Playlist navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Playlist editing
	ActionSelect       Action = "select"         // enter - play highlighted entry
	ActionDelete       Action = "delete"         // d/delete - remove highlighted entry
	ActionMoveItemUp   Action = "move_item_up"   // shift+k - drag entry up one slot
	ActionMoveItemDown Action = "move_item_down" // shift+j - drag entry down one slot
)
