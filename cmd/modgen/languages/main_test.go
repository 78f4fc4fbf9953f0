package languages

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	color.NoColor = true

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/modgen.hcl", []byte(`
language "flex" {
  base          = "as3"
  files         = ["**/*.as"]
  custom_access = ["mx_internal"]
}
`), 0o644))

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), fs, "", &out))
	assert.Equal(t,
		"haxe  files=**/*.hx  visibility=public,private\n"+
			"as3  files=**/*.as,**/*.mxml  visibility=public,protected,internal,private\n",
		out.String())

	out.Reset()
	require.NoError(t, Run(context.Background(), fs, "/modgen.hcl", &out))
	assert.Equal(t, "flex  files=**/*.as  visibility=public,protected,internal,private  custom=mx_internal\n", out.String())

	assert.Error(t, Run(context.Background(), fs, "/missing.hcl", &out))
}
