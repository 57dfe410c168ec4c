package static

import "errors"

var (
	errDirNotExist  = errors.New("directory does not exist")
	errFileNotExist = errors.New("file does not exist")
	errNotDir       = errors.New("path is not a directory")
	errIsDir        = errors.New("path is a directory, not a file")
)
