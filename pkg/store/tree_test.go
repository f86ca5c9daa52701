package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/schema"
)

// userTree builds the canonical user/session hierarchy: the module at
// "user/session" owns exactly the state reachable at state.user.session.
func userTree() *Module {
	return &Module{
		Name: "app",
		StateShape: &Shape{
			Children: map[string]*Shape{
				"user": {
					Fields: schema.Schema{"name": schema.String()},
					Children: map[string]*Shape{
						"session": {
							Fields: schema.Schema{"token": schema.String(), "expires": schema.Int()},
						},
					},
				},
			},
		},
		Children: []*Module{
			{
				Name:       "user",
				StateShape: &Shape{Fields: schema.Schema{"name": schema.String()}, Children: map[string]*Shape{"session": {Fields: schema.Schema{"token": schema.String(), "expires": schema.Int()}}}},
				Actions:    []Action{{Name: "rename", Payload: schema.Schema{"name": schema.String()}}},
				Children: []*Module{
					{
						Name:       "session",
						StateShape: &Shape{Fields: schema.Schema{"token": schema.String(), "expires": schema.Int()}},
						Actions:    []Action{{Name: "login", Payload: schema.Schema{"token": schema.String()}}, {Name: "logout"}},
					},
				},
			},
		},
	}
}

func TestNewTree_MirrorHolds(t *testing.T) {
	tree, err := NewTree(userTree())
	require.NoError(t, err)

	session, ok := tree.At(ParsePath("user/session"))
	require.True(t, ok)
	assert.Equal(t, "session", session.Name)

	_, ok = tree.At(ParsePath("user/profile"))
	assert.False(t, ok)

	paths := tree.Paths()
	require.Len(t, paths, 3)
	assert.Equal(t, "/", paths[0].String())
}

func TestNewTree_OrphanModule(t *testing.T) {
	root := userTree()
	// A "cart" module appears with no matching state node.
	root.Children = append(root.Children, &Module{Name: "cart", StateShape: &Shape{}})

	_, err := NewTree(root)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeOrphanModule))
}

func TestNewTree_OrphanState(t *testing.T) {
	root := userTree()
	// The state tree grows a "cart" node no module manages.
	root.StateShape.Children["cart"] = &Shape{}

	_, err := NewTree(root)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeOrphanState))
}

func TestNewTree_SiblingRead(t *testing.T) {
	root := userTree()
	// Grow a sibling branch, mirrored on both sides so only the read is bad.
	root.StateShape.Children["cart"] = &Shape{}
	root.Children = append(root.Children, &Module{
		Name:       "cart",
		StateShape: &Shape{},
		Queries: []Query{
			{Name: "ownerName", Reads: []Path{ParsePath("user")}},
		},
	})

	_, err := NewTree(root)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeSiblingRead))
}

func TestNewTree_LineageReadsAllowed(t *testing.T) {
	root := userTree()
	user := root.Children[0]
	user.Queries = []Query{
		{Name: "sessionToken", Reads: []Path{ParsePath("user/session")}}, // descendant
		{Name: "whole", Reads: []Path{{}}},                               // ancestor (root)
		{Name: "self", Reads: []Path{ParsePath("user")}},
	}

	_, err := NewTree(root)
	assert.NoError(t, err)
}

func TestNewTree_UnspecifiedShape(t *testing.T) {
	_, err := NewTree(&Module{Name: "app"})
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeUnspecifiedShape))
}

func TestNewTree_DuplicateSiblingsAndActions(t *testing.T) {
	root := &Module{
		Name:       "app",
		StateShape: &Shape{Children: map[string]*Shape{"user": {}}},
		Actions:    []Action{{Name: "reset"}, {Name: "reset"}},
		Children: []*Module{
			{Name: "user", StateShape: &Shape{}},
			{Name: "user", StateShape: &Shape{}},
		},
	}

	_, err := NewTree(root)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeDuplicateModule))
	assert.True(t, IsCode(err, CodeDuplicateAction))
}

func TestExtract_TravelsAsAUnit(t *testing.T) {
	tree, err := NewTree(userTree())
	require.NoError(t, err)

	sub, err := tree.Extract(ParsePath("user"))
	require.NoError(t, err)

	// The extracted tree keeps its children and their state shape.
	session, ok := sub.At(ParsePath("session"))
	require.True(t, ok)
	assert.NotNil(t, session.StateShape)
	assert.Contains(t, session.StateShape.Fields, "token")

	_, err = tree.Extract(ParsePath("nope"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestPath_Relations(t *testing.T) {
	user := ParsePath("user")
	session := ParsePath("user/session")
	cart := ParsePath("cart")

	assert.True(t, user.Related(session))
	assert.True(t, session.Related(user))
	assert.True(t, user.Related(user))
	assert.True(t, Path{}.Related(session))
	assert.False(t, cart.Related(user))
	assert.Equal(t, "user/session", user.Child("session").String())
	assert.True(t, ParsePath("/").IsRoot())
}
