package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveShortcut(t *testing.T) {
	cases := []struct {
		name    string
		ev      KeyEvent
		action  Action
		prevent bool
	}{
		{"ctrl s", KeyEvent{Key: "s", Ctrl: true}, ActionSave, true},
		{"cmd s", KeyEvent{Key: "s", Meta: true}, ActionSave, true},
		{"ctrl p", KeyEvent{Key: "p", Ctrl: true}, ActionExportPDF, true},
		{"cmd e", KeyEvent{Key: "e", Meta: true}, ActionExportJSON, true},
		{"ctrl shift e", KeyEvent{Key: "e", Ctrl: true, Shift: true}, ActionExportJSON, true},
		{"plain s", KeyEvent{Key: "s"}, ActionNone, false},
		{"ctrl x", KeyEvent{Key: "x", Ctrl: true}, ActionNone, false},
		{"alt s", KeyEvent{Key: "s", Alt: true}, ActionNone, false},
		{"ctrl S uppercase", KeyEvent{Key: "S", Ctrl: true}, ActionNone, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			action, prevent := ResolveShortcut(c.ev)
			assert.Equal(t, c.action, action)
			assert.Equal(t, c.prevent, prevent)
		})
	}
}
