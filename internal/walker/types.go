package walker

import "errors"

// ErrPathNotFound is returned when the scan root is missing or is not a
// directory.
var ErrPathNotFound = errors.New("path not found")

// Entry is one path produced by a walk. Path is relative to the scan root
// and always uses forward slashes.
type Entry struct {
	Path    string
	AbsPath string
	Name    string
	Depth   int
	IsDir   bool
}

// SkippedReason clarifies why a file/directory was not yielded.
type SkippedReason string

const (
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError  SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedMaxDepth   SkippedReason = "Skipped (Max Depth)"
	ReasonSkippedSymlinkDir SkippedReason = "Skipped (Symlinked Directory)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker collects skipped items for one walk
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}

func (st *SkippedTracker) reset() {
	st.items = st.items[:0]
}
