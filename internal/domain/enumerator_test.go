package domain_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	"ghostscan.dev/pkg/ghostscan/internal/domain"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// makeTree creates empty files under root for each slash-separated path.
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}
}

func enumerate(t *testing.T, root string, denylist domain.Denylist) ([]string, error) {
	t.Helper()

	fsAdapter := adapter.NewLocalModuleFSAdapter(adapter.NewLocalCommandRunnerAdapter())
	modules, errs := domain.NewEnumerator(fsAdapter, denylist).Enumerate(context.Background(), m.Path(root))

	var names []string

	for module := range modules {
		require.Equal(t, module.Name, module.String())
		names = append(names, module.Name)
	}

	sort.Strings(names)

	return names, <-errs
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		name   string
		rel    string
		want   string
		wantOK bool
	}{
		{"top level", "foo.py", "foo", true},
		{"nested", "email/mime/text.py", "email.mime.text", true},
		{"site-packages stripped", "site-packages/requests/api.py", "requests.api", true},
		{"site-packages only as prefix", "vendor/site-packages/x.py", "vendor.site-packages.x", true},
		{"package init", "__init__.py", "", false},
		{"nested package init", "email/__init__.py", "", false},
		{"package main", "json/__main__.py", "", false},
		{"non source", "README.txt", "", false},
		{"compiled", "foo.pyc", "", false},
		{"stub", "foo.pyi", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ModuleName(m.Path(filepath.FromSlash(tt.rel)))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumerator_Scenario(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "foo.py", "idlelib/bar.py", "__init__.py")

	names, err := enumerate(t, root, domain.NewDenylist())
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, names)
}

func TestEnumerator_FullTree(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"abc.py",
		"json/__init__.py",
		"json/__main__.py",
		"json/decoder.py",
		"json/tool.py",
		"email/mime/text.py",
		"email/test/test_email.py",
		"site-packages/attr/_make.py",
		"site-packages/six.py",
		"site-packages/my-dist/mod.py",
		"lib-dynload/_ssl.so",
		"notes.txt",
	)

	names, err := enumerate(t, root, domain.NewDenylist("email.mime"))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "json.decoder", "json.tool", "six"}, names)
}

func TestEnumerator_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	makeTree(t, target, "foo.py", "json/decoder.py", "json/__init__.py")

	link := filepath.Join(t.TempDir(), "stdlib")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	names, err := enumerate(t, link, domain.NewDenylist())
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "json.decoder"}, names)
}

func TestEnumerator_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	names, err := enumerate(t, root, domain.NewDenylist())
	require.Error(t, err)
	assert.Empty(t, names)
}

func TestEnumerator_Cancelled(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.py", "b.py", "c.py")

	fsAdapter := adapter.NewLocalModuleFSAdapter(adapter.NewLocalCommandRunnerAdapter())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	modules, errs := domain.NewEnumerator(fsAdapter, domain.NewDenylist()).Enumerate(ctx, m.Path(root))
	for range modules {
	}

	require.ErrorIs(t, <-errs, context.Canceled)
}
