package graft_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/validator"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "units/Panel/unit.yaml", `unit: Panel
inputs:
  title: string
  onSave: func
optional:
  subtitle: string
defaults:
  subtitle: ""
state: {}
context: {}
children: [Button]
connect:
  state: [title]
  own: [subtitle]
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
actions:
  - name: rename
    payload:
      name: string
`)

	return root
}

func TestOpen_MissingDirectoryStillLoads(t *testing.T) {
	// An empty directory is an empty project, not an error.
	p, err := graft.Open(t.TempDir())
	require.NoError(t, err)

	report, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Units)
	assert.NoError(t, report.Err(true))
}

func TestCheck_CleanProject(t *testing.T) {
	p, err := graft.Open(fixtureProject(t))
	require.NoError(t, err)

	report, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 2, report.Units)
	assert.NoError(t, report.Err(true))
}

func TestUnits_SortedSummaries(t *testing.T) {
	p, err := graft.Open(fixtureProject(t))
	require.NoError(t, err)

	units := p.Units()
	require.Len(t, units, 2)

	assert.Equal(t, "Button", units[0].Name)
	assert.False(t, units[0].Connected)
	assert.Equal(t, []string{"onSave"}, units[0].Required)

	assert.Equal(t, "Panel", units[1].Name)
	assert.True(t, units[1].Connected)
	assert.Equal(t, "units/Panel", filepath.ToSlash(units[1].Dir))
}

func TestDescribe_ConnectedUnit(t *testing.T) {
	p, err := graft.Open(fixtureProject(t))
	require.NoError(t, err)

	detail, err := p.Describe("Panel")
	require.NoError(t, err)

	assert.Equal(t, "string", detail.Inputs["title"])
	assert.Equal(t, "func", detail.Inputs["onSave"])
	assert.Equal(t, map[string]any{"subtitle": ""}, detail.Defaults)
	assert.Equal(t, []string{"Button"}, detail.Children)

	require.NotNil(t, detail.Slices)
	assert.Equal(t, []string{"title"}, detail.Slices.State)
	assert.Equal(t, []string{"subtitle"}, detail.Slices.Own)
	assert.Equal(t, []string{"onSave"}, detail.Slices.Dispatch)
}

func TestDescribe_UnknownUnit(t *testing.T) {
	p, err := graft.Open(fixtureProject(t))
	require.NoError(t, err)

	_, err = p.Describe("Ghost")
	assert.Error(t, err)
}

func TestModules_WalksTree(t *testing.T) {
	p, err := graft.Open(fixtureProject(t))
	require.NoError(t, err)

	modules, err := p.Modules()
	require.NoError(t, err)
	require.Len(t, modules, 2)

	assert.Equal(t, "/", modules[0].Path)
	assert.Equal(t, "app", modules[0].Name)
	assert.Equal(t, []string{"user"}, modules[0].Children)

	assert.Equal(t, "user", modules[1].Path)
	assert.Equal(t, []string{"rename"}, modules[1].Actions)
	assert.Equal(t, map[string]string{"name": "string"}, modules[1].Fields)
}

type memoryCache struct {
	mu      sync.Mutex
	reports map[string]*validator.Report
	puts    int
}

func (c *memoryCache) Get(_ context.Context, digest string) (*validator.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.reports[digest]
	return r, ok, nil
}

func (c *memoryCache) Put(_ context.Context, report *validator.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reports == nil {
		c.reports = make(map[string]*validator.Report)
	}
	c.reports[report.Digest] = report
	c.puts++
	return nil
}

func TestCheck_UsesCacheByDigest(t *testing.T) {
	dir := fixtureProject(t)
	cache := &memoryCache{}

	p1, err := graft.Open(dir, graft.WithCache(cache))
	require.NoError(t, err)
	first, err := p1.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	// Same tree, fresh project: served from cache, no second Put.
	p2, err := graft.Open(dir, graft.WithCache(cache))
	require.NoError(t, err)
	second, err := p2.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, first.Digest, second.Digest)
}
