// Package tuimsg holds messages sent from scenes to the root model.
package tuimsg

// BreakdownRequestedMsg asks the root model to compute the breakdown of the
// employee at Index in the loaded batch.
type BreakdownRequestedMsg struct {
	Index int
}

// BackMsg asks the root model to leave the current scene.
type BackMsg struct{}
