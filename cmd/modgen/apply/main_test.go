package apply

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/modgen/pkg/workspace"
)

const barHx = "class Bar {\n\tpublic function baz() {}\n}\n"

const barOutline = `
language: haxe
classes:
  - name: Bar
    lines: [0, 2]
    flags: [class]
    members:
      - name: baz
        lines: [1, 1]
        flags: [function]
        access: public
`

func setup(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/Bar.hx", []byte(barHx), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/Bar.yaml", []byte(barOutline), 0o644))
	return fs
}

func handler(selected int, label string, write bool) *Handler {
	noConfig := ""
	return &Handler{
		configPath: &noConfig,
		opts:       workspace.Options{File: "/Bar.hx", Outline: "/Bar.yaml", Position: "2:2"},
		selected:   selected,
		label:      label,
		write:      write,
	}
}

func TestHandler_Run(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name     string
		me       *Handler
		wantOut  string
		wantFile string
		wantErr  string
	}{
		{
			name:     "diff by label",
			me:       handler(0, "add inline modifier", false),
			wantOut:  "-\tpublic function baz() {}\n+\tpublic inline function baz() {}\n",
			wantFile: barHx,
		},
		{
			name:     "write by index",
			me:       handler(3, "", true),
			wantFile: "class Bar {\n\tpublic static function baz() {}\n}\n",
		},
		{
			name:    "unknown label",
			me:      handler(0, "make it fast", false),
			wantErr: "no toggle labelled",
		},
		{
			name:    "index out of range",
			me:      handler(9, "", false),
			wantErr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setup(t)

			var out bytes.Buffer
			err := tt.me.Run(context.Background(), fs, &out)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())

			data, err := afero.ReadFile(fs, "/Bar.hx")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, string(data))
		})
	}
}
