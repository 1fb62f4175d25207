package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFileReader is a mock implementation of domain.FileReader
type MockFileReader struct {
	mock.Mock
}

func (m *MockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileReader) IsValidPythonFile(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileReader) CollectPythonFiles(paths []string, recursive bool, includePatterns []string, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestResolveFilePaths(t *testing.T) {
	include := []string{"**/*.py"}
	exclude := []string{"tests/**"}

	tests := []struct {
		name     string
		paths    []string
		validate bool
		setup    func(m *MockFileReader)
		expected []string
		wantErr  bool
	}{
		{
			name:  "files are returned as given",
			paths: []string{"a.py", "b.py"},
			setup: func(m *MockFileReader) {
				m.On("FileExists", "a.py").Return(true, nil)
				m.On("FileExists", "b.py").Return(true, nil)
			},
			expected: []string{"a.py", "b.py"},
		},
		{
			name:     "validation rejects non python files",
			paths:    []string{"notes.txt"},
			validate: true,
			setup: func(m *MockFileReader) {
				m.On("IsValidPythonFile", "notes.txt").Return(false)
				m.On("CollectPythonFiles", []string{"notes.txt"}, true, include, exclude).Return([]string{}, nil)
			},
			expected: []string{},
		},
		{
			name:  "directories are collected",
			paths: []string{"a.py", "src"},
			setup: func(m *MockFileReader) {
				m.On("FileExists", "a.py").Return(true, nil)
				m.On("FileExists", "src").Return(false, nil)
				m.On("CollectPythonFiles", []string{"a.py", "src"}, true, include, exclude).Return([]string{"a.py", "src/b.py"}, nil)
			},
			expected: []string{"a.py", "src/b.py"},
		},
		{
			name:  "stat errors fall back to collection",
			paths: []string{"locked.py"},
			setup: func(m *MockFileReader) {
				m.On("FileExists", "locked.py").Return(false, errors.New("permission denied"))
				m.On("CollectPythonFiles", []string{"locked.py"}, true, include, exclude).Return(nil, errors.New("permission denied"))
			},
			wantErr: true,
		},
		{
			name:  "no paths are collected",
			paths: []string{},
			setup: func(m *MockFileReader) {
				m.On("CollectPythonFiles", []string{}, true, include, exclude).Return([]string{}, nil)
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockFileReader)
			tt.setup(reader)

			files, err := ResolveFilePaths(reader, tt.paths, true, include, exclude, tt.validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, files)
			}
			reader.AssertExpectations(t)
		})
	}
}
