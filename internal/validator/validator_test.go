package validator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/logging"
	"github.com/aretw0/graft/internal/manifest"
	"github.com/aretw0/graft/internal/validator"
	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/store"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func validProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "units/Panel/unit.yaml", `unit: Panel
inputs:
  title: string
  onSave: func
state: {}
context: {}
children: [Button]
connect:
  state: [title]
  dispatch: [onSave]
entry: connected
`)
	writeFile(t, root, "units/Button/unit.yaml", `unit: Button
inputs:
  onSave: func
state: {}
context: {}
`)
	writeFile(t, root, "modules/module.yaml", `module: app
state:
  children: [user]
`)
	writeFile(t, root, "modules/user/module.yaml", `module: user
state:
  fields:
    name: string
  children: [session]
`)
	writeFile(t, root, "modules/user/session/module.yaml", `module: session
state:
  fields:
    token: string
`)

	return root
}

func validate(t *testing.T, root string) *validator.Report {
	t.Helper()
	tree, err := manifest.Load(root)
	require.NoError(t, err)
	report, _ := validator.New(logging.NewNop()).Validate(tree)
	return report
}

func findCodes(r *validator.Report) map[string]bool {
	codes := make(map[string]bool)
	for _, f := range r.Findings {
		codes[f.Code] = true
	}
	return codes
}

func TestValidate_CleanProject(t *testing.T) {
	report := validate(t, validProject(t))

	assert.Empty(t, report.Findings)
	assert.Equal(t, 2, report.Units)
	assert.Equal(t, 3, report.Modules)
	assert.NoError(t, report.Err(true))
}

func TestValidate_RegistryResolvesEntries(t *testing.T) {
	tree, err := manifest.Load(validProject(t))
	require.NoError(t, err)

	_, reg := validator.New(logging.NewNop()).Validate(tree)

	panel, err := reg.Resolve("Panel")
	require.NoError(t, err)
	assert.True(t, panel.Connected())

	button, err := reg.Resolve("Button")
	require.NoError(t, err)
	assert.False(t, button.Connected())
}

func TestValidate_IncompleteDefaults(t *testing.T) {
	root := validProject(t)
	// "width" becomes optional without a default entry.
	writeFile(t, root, "units/Button/unit.yaml", `unit: Button
inputs:
  onSave: func
optional:
  width: int
state: {}
context: {}
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)[contract.CodeMissingDefault])
	assert.Error(t, report.Err(false))
}

func TestValidate_InvalidSlice(t *testing.T) {
	root := validProject(t)
	writeFile(t, root, "units/Panel/unit.yaml", `unit: Panel
inputs:
  title: string
state: {}
context: {}
connect:
  state: [title, subtitle]
entry: connected
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)["unknown_input"])
}

func TestValidate_MirroringDrift(t *testing.T) {
	root := validProject(t)
	// The state shape declares a "cart" child with no matching directory.
	writeFile(t, root, "modules/module.yaml", `module: app
state:
  children: [user, cart]
`)

	report := validate(t, root)
	require.True(t, findCodes(report)[validator.CodeMirroringDrift])

	// Drift passes locally and fails in strict (CI) mode.
	assert.NoError(t, report.Err(false))
	assert.Error(t, report.Err(true))
}

func TestValidate_DirectoryNameMismatch(t *testing.T) {
	root := validProject(t)
	writeFile(t, root, "modules/user/module.yaml", `module: account
state:
  fields:
    name: string
  children: [session]
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)[validator.CodeMirroringDrift])
}

func TestValidate_SiblingRead(t *testing.T) {
	root := validProject(t)
	writeFile(t, root, "modules/module.yaml", `module: app
state:
  children: [user, cart]
`)
	writeFile(t, root, "modules/cart/module.yaml", `module: cart
state:
  fields:
    items: "[string]"
queries:
  - name: ownerName
    reads: [user]
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)[store.CodeSiblingRead])
	assert.Error(t, report.Err(false))
}

func TestValidate_DuplicateEntry(t *testing.T) {
	root := validProject(t)
	writeFile(t, root, "units/Panel2/unit.yaml", `unit: Panel
inputs:
  title: string
  onSave: func
state: {}
context: {}
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)[validator.CodeDuplicateEntry])
}

func TestValidate_UnknownChildWarns(t *testing.T) {
	root := validProject(t)
	writeFile(t, root, "units/Panel/unit.yaml", `unit: Panel
inputs:
  title: string
state: {}
context: {}
children: [Ghost]
`)

	report := validate(t, root)
	assert.True(t, findCodes(report)[validator.CodeUnknownChild])
	assert.Equal(t, 1, report.WarningCount())
}

func TestValidate_EntryValueTypo(t *testing.T) {
	root := validProject(t)
	// A misspelled entry must surface as an error finding, not silently
	// publish the plain unit.
	writeFile(t, root, "units/Panel/unit.yaml", `unit: Panel
inputs:
  title: string
  onSave: func
state: {}
context: {}
connect:
  state: [title]
  dispatch: [onSave]
entry: conected
`)

	tree, err := manifest.Load(root)
	require.NoError(t, err)
	report, reg := validator.New(logging.NewNop()).Validate(tree)

	assert.True(t, findCodes(report)[validator.CodeManifestError])
	assert.Error(t, report.Err(false))

	_, err = reg.Resolve("Panel")
	assert.Error(t, err)
}
