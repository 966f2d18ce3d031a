package program

import "errors"

var (
	// ErrDocumentFormat means a document could not be decoded into a program.
	ErrDocumentFormat = errors.New("malformed program document")
	// ErrModuleNotFound means no candidate file exists for an import path.
	ErrModuleNotFound = errors.New("module not found")
	// ErrModuleLoad means a module file exists but could not be loaded.
	ErrModuleLoad = errors.New("module load failed")
)
