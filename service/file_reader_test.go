package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
)

func createTestFile(t *testing.T, dirPath, fileName, content string) string {
	t.Helper()
	filePath := filepath.Join(dirPath, fileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	return filePath
}

func createTestDirectoryStructure(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	createTestFile(t, dir, "main.py", "def main(): pass")
	createTestFile(t, dir, "utils.py", "def helper(): return 42")
	createTestFile(t, dir, "types.pyi", "def func() -> int: ...")
	createTestFile(t, dir, "README.md", "# Documentation")
	createTestFile(t, dir, "subpackage/module.py", "class Test: pass")
	createTestFile(t, dir, "package/nested/deep/file.py", "def nested(): pass")
	createTestFile(t, dir, "tests/test_main.py", "def test_main(): pass")
	createTestFile(t, dir, ".hidden.py", "# hidden")
	createTestFile(t, dir, ".hidden_dir/inside.py", "x = 1")
	createTestFile(t, dir, "__pycache__/cached.py", "x = 1")
	createTestFile(t, dir, "venv/lib/site.py", "x = 1")
	return dir
}

func relative(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestFileReader_CollectPythonFiles(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	tests := []struct {
		name      string
		recursive bool
		include   []string
		exclude   []string
		expected  []string
	}{
		{
			name:      "recursive with defaults",
			recursive: true,
			include:   []string{"**/*.py"},
			expected: []string{
				"main.py",
				"package/nested/deep/file.py",
				"subpackage/module.py",
				"tests/test_main.py",
				"utils.py",
			},
		},
		{
			name:      "non recursive",
			recursive: false,
			include:   []string{"**/*.py"},
			expected:  []string{"main.py", "utils.py"},
		},
		{
			name:      "stub files when no include pattern",
			recursive: false,
			expected:  []string{"main.py", "types.pyi", "utils.py"},
		},
		{
			name:      "exclude directory anywhere",
			recursive: true,
			include:   []string{"**/*.py"},
			exclude:   []string{"tests/**", "nested/**"},
			expected:  []string{"main.py", "subpackage/module.py", "utils.py"},
		},
		{
			name:      "exclude by file name",
			recursive: true,
			include:   []string{"*.py"},
			exclude:   []string{"test_*.py", "utils.py"},
			expected: []string{
				"main.py",
				"package/nested/deep/file.py",
				"subpackage/module.py",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := fr.CollectPythonFiles([]string{root}, tt.recursive, tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, relative(t, root, files))
		})
	}
}

func TestFileReader_CollectPythonFiles_Deduplicates(t *testing.T) {
	root := createTestDirectoryStructure(t)
	main := filepath.Join(root, "main.py")

	files, err := NewFileReader().CollectPythonFiles([]string{main, root, main}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "types.pyi", "utils.py"}, relative(t, root, files))
}

func TestFileReader_CollectPythonFiles_MissingPath(t *testing.T) {
	_, err := NewFileReader().CollectPythonFiles([]string{filepath.Join(t.TempDir(), "absent")}, true, nil, nil)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeFileNotFound))
}

func TestFileReader_MatchesPattern(t *testing.T) {
	fr := NewFileReader()

	tests := []struct {
		pattern  string
		path     string
		expected bool
	}{
		{"postrp/cli/**", "postrp/cli/main.py", true},
		{"postrp/cli/**", "postrp/cli/subdir/file.py", true},
		{"postrp/cli/**", "other/dir/file.py", false},
		{"**/test.py", "deep/nested/test.py", true},
		{"**/test.py", "test.py", true},
		{"__pycache__/**", "/home/user/project/src/__pycache__/module.py", true},
		{"test_*.py", "test_example.py", true},
		{"test_*.py", "example_test.py", false},
		{"postrp/cli/*.py", "postrp/cli/main.py", true},
		{"postrp/cli/*.py", "postrp/cli/subdir/file.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, fr.matchesPattern(tt.pattern, tt.path))
		})
	}
}

func TestFileReader_FileExists(t *testing.T) {
	dir := t.TempDir()
	file := createTestFile(t, dir, "a.py", "x = 1")
	fr := NewFileReader()

	ok, err := fr.FileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fr.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = fr.FileExists(filepath.Join(dir, "b.py"))
	require.NoError(t, err)
	assert.False(t, ok)
}
