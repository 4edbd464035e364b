package input

import (
	"testing"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/session"
	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want ActionEvent
	}{
		{"rune", tcell.KeyRune, 'é', tcell.ModNone, ActionEvent{Action: ActionEdit, Edit: buffer.Insert{Text: "é"}}},
		{"shifted rune", tcell.KeyRune, 'A', tcell.ModShift, ActionEvent{Action: ActionEdit, Edit: buffer.Insert{Text: "A"}}},
		{"alt rune ignored", tcell.KeyRune, 'x', tcell.ModAlt, ActionEvent{Action: ActionUnknown}},
		{"arrow", tcell.KeyLeft, 0, tcell.ModNone, ActionEvent{Action: ActionEdit, Edit: buffer.Move{Motion: buffer.MotionLeft}}},
		{"shift arrow selects", tcell.KeyDown, 0, tcell.ModShift, ActionEvent{Action: ActionEdit, Edit: buffer.Select{Motion: buffer.MotionDown}}},
		{"ctrl arrow word", tcell.KeyRight, 0, tcell.ModCtrl, ActionEvent{Action: ActionEdit, Edit: buffer.Move{Motion: buffer.MotionWordRight}}},
		{"ctrl shift end", tcell.KeyEnd, 0, tcell.ModCtrl | tcell.ModShift, ActionEvent{Action: ActionEdit, Edit: buffer.Select{Motion: buffer.MotionDocumentEnd}}},
		{"ctrl up is plain up", tcell.KeyUp, 0, tcell.ModCtrl, ActionEvent{Action: ActionEdit, Edit: buffer.Move{Motion: buffer.MotionUp}}},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, ActionEvent{Action: ActionEdit, Edit: buffer.Enter{}}},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, ActionEvent{Action: ActionEdit, Edit: buffer.Backspace{}}},
		{"save", tcell.KeyCtrlS, 0, tcell.ModCtrl, ActionEvent{Action: ActionSave}},
		{"save as", tcell.KeyF12, 0, tcell.ModNone, ActionEvent{Action: ActionSaveAs}},
		{"open", tcell.KeyCtrlO, 0, tcell.ModCtrl, ActionEvent{Action: ActionOpen}},
		{"copy", tcell.KeyCtrlC, 0, tcell.ModCtrl, ActionEvent{Action: ActionCopy}},
		{"theme", tcell.KeyF2, 0, tcell.ModNone, ActionEvent{Action: ActionCycleTheme}},
		{"unbound", tcell.KeyF5, 0, tcell.ModNone, ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if got != tt.want {
				t.Fatalf("ProcessEvent=%+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSessionEvent(t *testing.T) {
	tests := []struct {
		in   ActionEvent
		want session.Event
		ok   bool
	}{
		{ActionEvent{Action: ActionNew}, session.NewDocument{}, true},
		{ActionEvent{Action: ActionOpen}, session.OpenRequested{}, true},
		{ActionEvent{Action: ActionSave}, session.SaveRequested{}, true},
		{ActionEvent{Action: ActionSaveAs}, session.SaveAsRequested{}, true},
		{ActionEvent{Action: ActionEdit, Edit: buffer.Enter{}}, session.Edit{Action: buffer.Enter{}}, true},
		{ActionEvent{Action: ActionEdit}, nil, false},
		{ActionEvent{Action: ActionCopy}, nil, false},
		{ActionEvent{Action: ActionQuit}, nil, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.SessionEvent()
		if ok != tt.ok || got != tt.want {
			t.Errorf("SessionEvent(%+v)=(%v,%v), want (%v,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
