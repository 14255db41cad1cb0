package transfer

import (
	"fmt"
	"path"

	"github.com/lumipallolabs/sftpdive/internal/model"
	"github.com/lumipallolabs/sftpdive/internal/remote"
)

// DefaultMaxDepth bounds discovery on pathological trees.
const DefaultMaxDepth = 64

// FileRef is a leaf file found during discovery
type FileRef struct {
	Path string
	Size int64
}

// Limits bounds the discovery traversal
type Limits struct {
	MaxDepth int // 0 means DefaultMaxDepth
}

// Discover walks the tree under root depth-first and returns every leaf file
// beneath it, with files kept in the order each listing reports them. Any
// listing failure aborts the whole walk: the result is all-or-nothing, so a
// recursive download never starts from a partially known tree. Exceeding the
// depth limit is also an error rather than a silent truncation.
func Discover(port remote.Port, root string, limits Limits) ([]FileRef, error) {
	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	type frame struct {
		path  string
		depth int
	}

	var files []FileRef
	// Seen paths guard against listings that lead back into themselves
	seen := make(map[string]bool)
	stack := []frame{{path: path.Clean(root), depth: 0}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.depth > maxDepth {
			return nil, fmt.Errorf("discovery depth limit %d exceeded at %s", maxDepth, fr.path)
		}
		if seen[fr.path] {
			continue
		}
		seen[fr.path] = true

		entries, err := port.List(fr.path)
		if err != nil {
			return nil, err
		}

		var subdirs []frame
		for _, e := range entries {
			full := path.Join(fr.path, e.Name)
			switch e.Kind {
			case model.KindDir:
				subdirs = append(subdirs, frame{path: full, depth: fr.depth + 1})
			case model.KindFile:
				files = append(files, FileRef{Path: full, Size: e.Size})
			}
		}

		// Push in reverse so directories are visited in listing order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return files, nil
}
