package usecase

// KeyEvent is a key press as reported by the client.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrlKey"`
	Meta  bool   `json:"metaKey"`
	Shift bool   `json:"shiftKey"`
	Alt   bool   `json:"altKey"`
}

// Action is the command bound to a shortcut.
type Action string

const (
	ActionNone       Action = ""
	ActionSave       Action = "save"
	ActionExportPDF  Action = "export-pdf"
	ActionExportJSON Action = "export-json"
)

var shortcuts = map[string]Action{
	"s": ActionSave,
	"p": ActionExportPDF,
	"e": ActionExportJSON,
}

// ResolveShortcut maps Ctrl/Cmd+S, Ctrl/Cmd+P and Ctrl/Cmd+E to their actions.
// preventDefault is true exactly when an action matched.
func ResolveShortcut(ev KeyEvent) (action Action, preventDefault bool) {
	if !ev.Ctrl && !ev.Meta {
		return ActionNone, false
	}
	a, ok := shortcuts[ev.Key]
	if !ok {
		return ActionNone, false
	}
	return a, true
}
