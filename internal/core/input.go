package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionAimUp            // Up arrow - raise the launch angle
	ActionAimDown          // Down arrow - lower the launch angle
	ActionPowerUp          // Right arrow - pull the catapult further
	ActionPowerDown        // Left arrow - release some tension
	ActionLaunch           // Space, Enter - release the catapult
	ActionBoost            // Space while flying - dive boost
	ActionConfirm          // Enter - confirm selection in menus
	ActionRestart          // R key - restart after game over
	ActionQuit             // Q, Ctrl+C - leave the game
	ActionPause            // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAimUp:
		return "AimUp"
	case ActionAimDown:
		return "AimDown"
	case ActionPowerUp:
		return "PowerUp"
	case ActionPowerDown:
		return "PowerDown"
	case ActionLaunch:
		return "Launch"
	case ActionBoost:
		return "Boost"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}
