package repos

// DefaultBranch is used when a request does not name a branch.
const DefaultBranch = "main"

// EntryTypeBlob is the upstream type of a file entry in a git tree.
const EntryTypeBlob = "blob"

// TreeEntry is one object reported by the upstream git tree API. Only Path
// and Type are always present; the remaining upstream fields pass through
// when the upstream sets them.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
	Type string `json:"type"`
	SHA  string `json:"sha,omitempty"`
	Size *int   `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// IsBlob reports whether the entry is a file.
func (e TreeEntry) IsBlob() bool {
	return e.Type == EntryTypeBlob
}

// Tree is the upstream answer to a recursive tree lookup.
type Tree struct {
	Entries []TreeEntry
	// Truncated is set when the upstream stopped listing before the end of the tree.
	Truncated bool
}

// TreeListing is the client-facing result of ListTree.
type TreeListing struct {
	Files []TreeEntry `json:"files"`
}

// FileContent is the client-facing result of GetFile.
type FileContent struct {
	Content string `json:"content"`
}

// TreeRef identifies a tree at a branch.
type TreeRef struct {
	Owner  string
	Repo   string
	Branch string
}

// FileRef identifies a file at a branch.
type FileRef struct {
	Owner  string
	Repo   string
	Branch string
	// Path is slash-separated and used verbatim in the upstream URL.
	Path string
}
