package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catapult/internal/config"
)

func TestSessionOptionsPlayerName(t *testing.T) {
	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		holder: config.NewHolder(config.DefaultParams()),
		logger: log.New(io.Discard),
	}

	tests := []struct {
		user string
		want string
	}{
		{"bob", "bob"},
		{"jane.doe", "janedoe"},
		{"x_<script>", "xscript"},
		{"---", ""},
	}
	for _, tt := range tests {
		opts := srv.SessionOptions(tt.user, 80, 24)
		if opts.Settings.Name != tt.want {
			t.Errorf("SessionOptions(%q) name = %q, want %q", tt.user, opts.Settings.Name, tt.want)
		}
	}

	// A user without usable characters is asked for a name.
	m := NewModel(srv.SessionOptions("---", 80, 24))
	if m.view != viewName {
		t.Errorf("view = %d, want name prompt", m.view)
	}
	if srv.SessionOptions("bob", 80, 24).SettingsPath != "" {
		t.Error("remote sessions must not persist settings")
	}
}
