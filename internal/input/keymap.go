// internal/input/keymap.go
package input

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps keys to decoded events.
type Keymap map[tcell.Key]ActionEvent

// MotionKeymap maps navigation keys to cursor motions.
type MotionKeymap map[tcell.Key]buffer.Motion

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	commands    Keymap
	motions     MotionKeymap
	ctrlMotions MotionKeymap // Ctrl held with a navigation key
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		commands:    make(Keymap),
		motions:     make(MotionKeymap),
		ctrlMotions: make(MotionKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.commands[tcell.KeyCtrlN] = ActionEvent{Action: ActionNew}
	p.commands[tcell.KeyCtrlO] = ActionEvent{Action: ActionOpen}
	p.commands[tcell.KeyCtrlS] = ActionEvent{Action: ActionSave}
	p.commands[tcell.KeyF12] = ActionEvent{Action: ActionSaveAs}
	p.commands[tcell.KeyCtrlQ] = ActionEvent{Action: ActionForceQuit}
	p.commands[tcell.KeyCtrlW] = ActionEvent{Action: ActionQuit}
	p.commands[tcell.KeyEscape] = ActionEvent{Action: ActionQuit}
	p.commands[tcell.KeyCtrlC] = ActionEvent{Action: ActionCopy}
	p.commands[tcell.KeyCtrlX] = ActionEvent{Action: ActionCut}
	p.commands[tcell.KeyCtrlV] = ActionEvent{Action: ActionPaste}
	p.commands[tcell.KeyF2] = ActionEvent{Action: ActionCycleTheme}
	p.commands[tcell.KeyCtrlA] = ActionEvent{Action: ActionEdit, Edit: buffer.SelectAll{}}
	p.commands[tcell.KeyEnter] = ActionEvent{Action: ActionEdit, Edit: buffer.Enter{}}
	p.commands[tcell.KeyTab] = ActionEvent{Action: ActionEdit, Edit: buffer.Insert{Text: "\t"}}
	p.commands[tcell.KeyBackspace] = ActionEvent{Action: ActionEdit, Edit: buffer.Backspace{}}
	p.commands[tcell.KeyBackspace2] = ActionEvent{Action: ActionEdit, Edit: buffer.Backspace{}}
	p.commands[tcell.KeyDelete] = ActionEvent{Action: ActionEdit, Edit: buffer.DeleteForward{}}

	p.motions[tcell.KeyUp] = buffer.MotionUp
	p.motions[tcell.KeyDown] = buffer.MotionDown
	p.motions[tcell.KeyLeft] = buffer.MotionLeft
	p.motions[tcell.KeyRight] = buffer.MotionRight
	p.motions[tcell.KeyHome] = buffer.MotionHome
	p.motions[tcell.KeyEnd] = buffer.MotionEnd

	p.ctrlMotions[tcell.KeyLeft] = buffer.MotionWordLeft
	p.ctrlMotions[tcell.KeyRight] = buffer.MotionWordRight
	p.ctrlMotions[tcell.KeyHome] = buffer.MotionDocumentStart
	p.ctrlMotions[tcell.KeyEnd] = buffer.MotionDocumentEnd
}

// ProcessEvent decodes a key event. Shift with a navigation key extends
// the selection; plain runes become inserts.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if m, ok := p.motions[key]; ok {
		if mod&tcell.ModCtrl != 0 {
			if cm, ok := p.ctrlMotions[key]; ok {
				m = cm
			}
		}
		if mod&tcell.ModShift != 0 {
			return ActionEvent{Action: ActionEdit, Edit: buffer.Select{Motion: m}}
		}
		return ActionEvent{Action: ActionEdit, Edit: buffer.Move{Motion: m}}
	}

	if ae, ok := p.commands[key]; ok {
		return ae
	}

	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionEdit, Edit: buffer.Insert{Text: string(ev.Rune())}}
	}
	return ActionEvent{Action: ActionUnknown}
}
