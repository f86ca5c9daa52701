package connect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/schema"
)

func panelUnit(t *testing.T) *contract.Unit {
	t.Helper()
	unit, err := contract.New("Panel").
		Require("id", schema.String()).
		Require("title", schema.String()).
		Require("onSave", schema.Func()).
		Optional("width", 600).
		Child("Button").
		Build()
	require.NoError(t, err)
	return unit
}

func TestPick_SelectsByName(t *testing.T) {
	panel := panelUnit(t)

	s, err := Pick(panel, "title", "id", "title")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title"}, s.Names())
	assert.True(t, s.Contains("title"))
	assert.False(t, s.Contains("onSave"))
}

func TestPick_UnknownInput(t *testing.T) {
	panel := panelUnit(t)

	_, err := Pick(panel, "title", "subtitle")
	require.Error(t, err)
	assert.True(t, contract.HasCode(err, CodeUnknownInput))
}

func TestSlice_ShapeExportsSelectedTypes(t *testing.T) {
	panel := panelUnit(t)

	s := MustPick(panel, "title", "width")
	shape := s.Shape()

	require.Len(t, shape, 2)
	assert.Equal(t, "string", shape["title"].Name())
	assert.Equal(t, "int", shape["width"].Name())
}

func TestAllRequired_AliasesRequiredSet(t *testing.T) {
	panel := panelUnit(t)

	s := AllRequired(panel)
	assert.Equal(t, panel.RequiredNames(), s.Names())
}

func TestBind_Valid(t *testing.T) {
	panel := panelUnit(t)

	b, err := Bind(panel,
		FromState(MustPick(panel, "title")),
		FromOwner(MustPick(panel, "id")),
		ToDispatch(MustPick(panel, "onSave")),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "onSave", "title"}, b.EffectiveNames())
}

func TestBind_EmptyRolesMayBeOmitted(t *testing.T) {
	panel := panelUnit(t)

	// Everything from state: own and dispatch stay undeclared.
	b, err := Bind(panel, FromState(AllRequired(panel)))
	require.NoError(t, err)

	assert.True(t, b.OwnInputs().Empty())
	assert.True(t, b.DispatchInputs().Empty())
}

func TestBind_OverlappingSlices(t *testing.T) {
	panel := panelUnit(t)

	_, err := Bind(panel,
		FromState(MustPick(panel, "title", "id", "onSave")),
		FromOwner(MustPick(panel, "id")),
	)
	require.Error(t, err)
	assert.True(t, contract.HasCode(err, CodeOverlappingSlices))
}

func TestBind_UncoveredRequired(t *testing.T) {
	panel := panelUnit(t)

	_, err := Bind(panel, FromState(MustPick(panel, "title")))
	require.Error(t, err)
	assert.True(t, contract.HasCode(err, CodeUncoveredRequired))
}

func TestBind_OptionalInputsMayStayUncovered(t *testing.T) {
	panel := panelUnit(t)

	// "width" is optional and covered by no role; it falls back to defaults.
	b, err := Bind(panel, FromState(AllRequired(panel)))
	require.NoError(t, err)
	assert.NotContains(t, b.EffectiveNames(), "width")
}

func TestBind_ForeignSlice(t *testing.T) {
	panel := panelUnit(t)
	other, err := contract.New("Other").
		Require("title", schema.String()).
		Build()
	require.NoError(t, err)

	_, err = Bind(panel,
		FromState(MustPick(other, "title")),
		FromOwner(MustPick(panel, "id")),
		ToDispatch(MustPick(panel, "onSave")),
	)
	require.Error(t, err)
	assert.True(t, contract.HasCode(err, CodeForeignSlice))
}
