package domain

// Selection is the outcome of the video picker. It is one of ChosenVideo,
// NextPage, PreviousPage or Quit.
type Selection interface {
	isSelection()
}

// ChosenVideo carries the video the user picked.
type ChosenVideo struct {
	Video SearchResult
}

// NextPage asks for the following page of results.
type NextPage struct{}

// PreviousPage asks for the preceding page of results.
type PreviousPage struct{}

// Quit ends the browsing session. Cancelling the picker also yields Quit.
type Quit struct{}

func (ChosenVideo) isSelection()  {}
func (NextPage) isSelection()     {}
func (PreviousPage) isSelection() {}
func (Quit) isSelection()         {}

// Action is what to do with the chosen format.
type Action int

const (
	ActionStream Action = iota + 1
	ActionDownload
)

// String returns the label shown in the action picker.
func (a Action) String() string {
	switch a {
	case ActionStream:
		return "Stream"
	case ActionDownload:
		return "Download"
	default:
		return "Unknown"
	}
}

// Actions lists the actions in picker order.
var Actions = []Action{ActionStream, ActionDownload}
