package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/connect"
	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/registry"
	"github.com/aretw0/graft/pkg/schema"
)

func TestRegistry_PlainAndConnected(t *testing.T) {
	button := contract.New("Button").
		Require("onSave", schema.Func()).
		MustBuild()
	label := contract.New("Label").
		Require("text", schema.String()).
		MustBuild()

	binding, err := connect.Bind(button, connect.ToDispatch(connect.MustPick(button, "onSave")))
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, reg.RegisterConnected(binding))
	require.NoError(t, reg.RegisterPlain(label))

	// Callers resolve a name; the entry decides plain vs connected.
	entry, err := reg.Resolve("Button")
	require.NoError(t, err)
	assert.True(t, entry.Connected())
	b, ok := entry.Binding()
	require.True(t, ok)
	assert.Equal(t, []string{"onSave"}, b.DispatchInputs().Names())

	entry, err = reg.Resolve("Label")
	require.NoError(t, err)
	assert.False(t, entry.Connected())
	assert.Equal(t, label, entry.Unit())

	assert.Equal(t, []string{"Button", "Label"}, reg.Names())
}

func TestRegistry_OneEntryPerUnit(t *testing.T) {
	button := contract.New("Button").
		Require("onSave", schema.Func()).
		MustBuild()

	reg := registry.New()
	require.NoError(t, reg.RegisterPlain(button))

	err := reg.RegisterPlain(button)
	assert.ErrorIs(t, err, registry.ErrDuplicateEntry)

	binding, err := connect.Bind(button, connect.ToDispatch(connect.MustPick(button, "onSave")))
	require.NoError(t, err)
	err = reg.RegisterConnected(binding)
	assert.ErrorIs(t, err, registry.ErrDuplicateEntry)
}

func TestRegistry_NotRegistered(t *testing.T) {
	reg := registry.New()

	_, err := reg.Resolve("Ghost")
	assert.ErrorIs(t, err, registry.ErrNotRegistered)
}

// Swapping a unit's entry from plain to connected must be invisible to the
// composing parent: same name, same unit contract behind it.
func TestRegistry_SwapIsTransparentToCallers(t *testing.T) {
	build := func() *contract.Unit {
		return contract.New("Panel").
			Require("title", schema.String()).
			MustBuild()
	}

	plainReg := registry.New()
	require.NoError(t, plainReg.RegisterPlain(build()))

	connectedReg := registry.New()
	unit := build()
	binding, err := connect.Bind(unit, connect.FromState(connect.AllRequired(unit)))
	require.NoError(t, err)
	require.NoError(t, connectedReg.RegisterConnected(binding))

	a, err := plainReg.Resolve("Panel")
	require.NoError(t, err)
	b, err := connectedReg.Resolve("Panel")
	require.NoError(t, err)

	assert.Equal(t, a.Unit().RequiredNames(), b.Unit().RequiredNames())
	assert.Equal(t, a.Unit().Defaults(), b.Unit().Defaults())
}
