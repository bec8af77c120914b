package main

import (
	"crypto/sha1" //nolint:gosec // git object ids are sha1
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const (
	modeFile = "100644"
	modeDir  = "040000"
)

// TreeEntry mirrors an entry of GitHub's GET /repos/:owner/:repo/git/trees/:sha.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size *int   `json:"size,omitempty"`
	URL  string `json:"url"`
}

// TreeResponse mirrors GitHub's git tree response body.
type TreeResponse struct {
	SHA       string      `json:"sha"`
	URL       string      `json:"url"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// node is a directory or file in an in-memory snapshot of a branch.
type node struct {
	name     string
	content  *string
	children map[string]*node
}

func (n *node) isDir() bool { return n.content == nil }

// sortedChildren orders entries the way git does: directory names compare
// as if they ended in "/".
func (n *node) sortedChildren() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].sortKey() < out[j].sortKey() })
	return out
}

func (n *node) sortKey() string {
	if n.isDir() {
		return n.name + "/"
	}
	return n.name
}

// buildNodes turns a flat path → content map into a directory tree.
func buildNodes(files map[string]string) *node {
	root := &node{children: map[string]*node{}}
	for path, content := range files {
		cur := root
		parts := strings.Split(path, "/")
		for i, part := range parts {
			child, ok := cur.children[part]
			if !ok {
				child = &node{name: part}
				if i < len(parts)-1 {
					child.children = map[string]*node{}
				} else {
					c := content
					child.content = &c
				}
				cur.children[part] = child
			}
			if i < len(parts)-1 && !child.isDir() {
				// "a" is already a file, so "a/..." cannot be placed.
				break
			}
			cur = child
		}
	}
	return root
}

// hashObject computes a git object id.
func hashObject(kind string, body []byte) string {
	h := sha1.New() //nolint:gosec // git object ids are sha1
	fmt.Fprintf(h, "%s %d\x00", kind, len(body))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// hash returns the git object id of n, computing subtree ids bottom-up.
func (n *node) hash() string {
	if !n.isDir() {
		return hashObject("blob", []byte(*n.content))
	}
	var body []byte
	for _, c := range n.sortedChildren() {
		mode := modeFile
		if c.isDir() {
			mode = "40000"
		}
		raw, _ := hex.DecodeString(c.hash())
		body = append(body, []byte(mode+" "+c.name+"\x00")...)
		body = append(body, raw...)
	}
	return hashObject("tree", body)
}

// listTree renders the GitHub tree response for a branch snapshot. With
// recursive=false only the top-level entries are listed.
func listTree(files map[string]string, apiBase, owner, repo string, recursive bool) TreeResponse {
	root := buildNodes(files)
	repoURL := fmt.Sprintf("%s/repos/%s/%s/git", apiBase, owner, repo)

	entries := []TreeEntry{}
	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		for _, c := range n.sortedChildren() {
			sha := c.hash()
			e := TreeEntry{Path: prefix + c.name, SHA: sha}
			if c.isDir() {
				e.Mode, e.Type, e.URL = modeDir, "tree", repoURL+"/trees/"+sha
			} else {
				size := len(*c.content)
				e.Mode, e.Type, e.URL, e.Size = modeFile, "blob", repoURL+"/blobs/"+sha, &size
			}
			entries = append(entries, e)
			if c.isDir() && recursive {
				walk(c, prefix+c.name+"/")
			}
		}
	}
	walk(root, "")

	rootSHA := root.hash()
	return TreeResponse{
		SHA:  rootSHA,
		URL:  repoURL + "/trees/" + rootSHA,
		Tree: entries,
	}
}
