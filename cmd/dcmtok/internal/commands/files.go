package commands

import (
	"fmt"
	"os"
	"path/filepath"
)

// collectInputFiles resolves a command's Dir/Paths/Recursive flags into a
// concrete file list, shared between DumpCmd and ProbeCmd.
func collectInputFiles(dir string, paths []string, recursive bool) ([]string, error) {
	if dir != "" {
		return listDicomFiles(dir, recursive)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files specified (use paths or --dir)")
	}
	return paths, nil
}

// listDicomFiles walks dir (recursively if requested) collecting every
// regular file found, the way the teacher's own dump command scans a
// directory of DICOM files before parsing any of them.
func listDicomFiles(dir string, recursive bool) ([]string, error) {
	var files []string
	walk := func(path string, info os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	return files, nil
}
