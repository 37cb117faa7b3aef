package fsutil

// File and directory permission constants.
// These follow standard Unix permission conventions and are the only modes
// written into distributed archives and output files.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeExec    = 0o755 // -rwxr-xr-x: For executable files

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories

	// OwnerExec is the owner execute bit.
	OwnerExec = 0o100
)
