package workspace_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/modgen/pkg/generator"
	"github.com/walteh/modgen/pkg/workspace"
)

const mainHx = "class Main {\n\tstatic function main() {\n\t\ttrace(1);\n\t}\n}\n"

const mainOutline = `
path: src/Main.hx
classes:
  - name: Main
    lines: [0, 4]
    flags: [class]
    members:
      - name: main
        lines: [1, 3]
        flags: [function, static]
`

func setup(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/src/Main.hx", []byte(mainHx), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/out/Main.yaml", []byte(mainOutline), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/proj/.modgen.yaml", []byte("languages:\n  - name: haxe\n    files: [\"**/*.hx\"]\n"), 0o644))
	return fs
}

func TestOpen(t *testing.T) {
	fs := setup(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		opts         workspace.Options
		wantLanguage string
		wantCursor   int
		wantErr      bool
	}{
		{
			name:         "language from file pattern",
			opts:         workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Position: "2:3"},
			wantLanguage: "haxe",
			wantCursor:   15,
		},
		{
			name:         "language flag wins",
			opts:         workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Language: "as3"},
			wantLanguage: "as3",
		},
		{
			name:         "settings file",
			opts:         workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Config: "/proj/.modgen.yaml", Position: "1:1"},
			wantLanguage: "haxe",
		},
		{
			name:    "missing outline",
			opts:    workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Nope.yaml"},
			wantErr: true,
		},
		{
			name:    "missing settings",
			opts:    workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Config: "/proj/nope.yaml"},
			wantErr: true,
		},
		{
			name:    "position past the last line",
			opts:    workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Position: "40:1"},
			wantErr: true,
		},
		{
			name:    "malformed position",
			opts:    workspace.Options{File: "/proj/src/Main.hx", Outline: "/proj/out/Main.yaml", Position: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := workspace.Open(ctx, fs, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLanguage, session.Language)
			assert.Equal(t, tt.wantCursor, session.Buffer.CursorOffset())
			assert.False(t, session.Changed())
		})
	}
}

func TestSession_ApplyDiffSave(t *testing.T) {
	fs := setup(t)
	ctx := context.Background()

	session, err := workspace.Open(ctx, fs, workspace.Options{
		File:     "/proj/src/Main.hx",
		Outline:  "/proj/out/Main.yaml",
		Position: "2:2",
	})
	require.NoError(t, err)

	items, handled := generator.New(session.Registry).Contextual(ctx, session.Host())
	require.True(t, handled)

	var invoked bool
	for _, item := range items {
		if item.Label == "Make public" {
			require.NoError(t, item.Invoke(ctx))
			invoked = true
		}
	}
	require.True(t, invoked)

	assert.True(t, session.Changed())
	assert.Equal(t, "-\tstatic function main() {\n+\tpublic static function main() {\n", session.Diff())

	require.NoError(t, session.Save(ctx))
	assert.False(t, session.Changed())

	data, err := afero.ReadFile(fs, "/proj/src/Main.hx")
	require.NoError(t, err)
	assert.Equal(t, "class Main {\n\tpublic static function main() {\n\t\ttrace(1);\n\t}\n}\n", string(data))
}
