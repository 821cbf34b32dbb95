package kanby

import "errors"

var (
	// ErrCorruptDocument is reported when stored bytes cannot be read as a workspace
	ErrCorruptDocument = errors.New("workspace document is corrupt")

	ErrProjectExists   = errors.New("project already exists")
	ErrProjectNotFound = errors.New("project not found")
	ErrLastProject     = errors.New("cannot delete the last project")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrReservedName    = errors.New("name is reserved")
	ErrTaskNotFound    = errors.New("task not found")
	ErrUnknownColumn   = errors.New("unknown column")

	ErrManagerClosed = errors.New("save manager is closed")
	ErrSaveTimeout   = errors.New("save did not finish before the timeout")
)
