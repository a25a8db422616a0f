package viewer

import (
	"github.com/gdamore/tcell/v2"
)

// Action tells the event loop what to do after a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRedraw
)

// coarseSteps is the multiplier for PgUp/PgDn and [ ] adjustments
const coarseSteps = 10

// HandleKey applies one key press to the controls and view
func (v *Viewer) HandleKey(ev *tcell.EventKey) (Action, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		return ActionQuit, nil
	case tcell.KeyUp, tcell.KeyBacktab:
		v.Controls.Prev()
		return ActionRedraw, nil
	case tcell.KeyDown, tcell.KeyTab:
		v.Controls.Next()
		return ActionRedraw, nil
	case tcell.KeyLeft:
		return v.adjust(-1)
	case tcell.KeyRight:
		return v.adjust(1)
	case tcell.KeyPgDn:
		return v.adjust(-coarseSteps)
	case tcell.KeyPgUp:
		return v.adjust(coarseSteps)
	case tcell.KeyEnter:
		return ActionRedraw, v.Apply()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return ActionNone, nil
}

func (v *Viewer) handleRune(r rune) (Action, error) {
	switch r {
	case 'q', 'Q':
		return ActionQuit, nil
	case 'k':
		v.Controls.Prev()
	case 'j':
		v.Controls.Next()
	case 'h', '-':
		return v.adjust(-1)
	case 'l', '+', '=':
		return v.adjust(1)
	case '[':
		return v.adjust(-coarseSteps)
	case ']':
		return v.adjust(coarseSteps)
	case 'd', 'D':
		v.Controls.ToggleDirection()
		return ActionRedraw, v.ParamsChanged()
	case 'r', 'R':
		if v.Controls.Reset() {
			return ActionRedraw, v.ParamsChanged()
		}
	case 'a', 'A':
		return ActionRedraw, v.Apply()
	case 'v', 'V':
		v.Live = !v.Live
		if v.Live && v.stale {
			return ActionRedraw, v.Apply()
		}
	case 'm', 'M':
		v.ToggleRenderMode()
		return ActionRedraw, v.Resize(v.termW, v.termH)
	case 'c', 'C':
		v.ToggleColorMode()
	case 's', 'S':
		v.ShowStatus = !v.ShowStatus
		return ActionRedraw, v.Resize(v.termW, v.termH)
	default:
		return ActionNone, nil
	}
	return ActionRedraw, nil
}

func (v *Viewer) adjust(steps int) (Action, error) {
	if !v.Controls.Adjust(steps) {
		return ActionNone, nil
	}
	return ActionRedraw, v.ParamsChanged()
}
