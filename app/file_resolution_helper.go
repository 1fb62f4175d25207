package app

import "github.com/ludo-technologies/pysmell/domain"

// ResolveFilePaths returns paths unchanged when every one of them is an
// existing Python file, and otherwise collects the Python files below them
// with the given filters. When validatePythonFile is false, any existing file
// counts as already resolved.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
	validatePythonFile bool,
) ([]string, error) {
	if len(paths) > 0 && allFiles(fileReader, paths, validatePythonFile) {
		return paths, nil
	}

	return fileReader.CollectPythonFiles(paths, recursive, includePatterns, excludePatterns)
}

func allFiles(fileReader domain.FileReader, paths []string, validatePythonFile bool) bool {
	for _, path := range paths {
		if validatePythonFile && !fileReader.IsValidPythonFile(path) {
			return false
		}
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			return false
		}
	}
	return true
}
