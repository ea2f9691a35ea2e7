// Package boards loads fixed starting boards for Crush.
// This package depends on core but core does not depend on boards.
package boards

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
)

//go:embed data/*.yaml
var builtin embed.FS

// Board size limits.
const (
	MinSize = 3
	MaxSize = 20
)

// Board errors.
var (
	ErrNotFound    = errors.New("board not found")
	ErrMissingID   = errors.New("board has no id")
	ErrInvalidSize = errors.New("board size out of range")
	ErrNotSquare   = errors.New("board is not square")
	ErrBadColor    = errors.New("board has an unknown color code")
)

// Board is a named starting layout: one row string per board row,
// one color code per cell.
type Board struct {
	ID       string
	Name     string
	Size     int
	Rows     []string
	Metadata map[string]string
	FilePath string
}

// Validate checks the board is square, in range and uses known color codes.
func (b *Board) Validate() error {
	if b.ID == "" {
		return ErrMissingID
	}
	if b.Size < MinSize || b.Size > MaxSize {
		return fmt.Errorf("%w: %s is %d, want %d..%d", ErrInvalidSize, b.ID, b.Size, MinSize, MaxSize)
	}

	for i, row := range b.Rows {
		codes := []rune(row)
		if len(codes) != b.Size {
			return fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrNotSquare, b.ID, i, len(codes), b.Size)
		}
		for j, code := range codes {
			if _, ok := core.ParseColorCode(code); !ok {
				return fmt.Errorf("%w: %s has %q at (%d,%d)", ErrBadColor, b.ID, code, i, j)
			}
		}
	}
	return nil
}

// Apply fills the empty cells of the rules' grid from this board.
func (b *Board) Apply(r *core.Rules) error {
	if r.Grid().Size() != b.Size {
		return fmt.Errorf("board %s is %dx%d, grid is %dx%d", b.ID, b.Size, b.Size, r.Grid().Size(), r.Grid().Size())
	}
	return r.LoadSpecifiedBoard(b.Rows)
}

// Loader loads boards from a file system tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin creates a loader over the boards compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		// Only fails on a malformed path literal.
		panic(err)
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// LoadAll recursively scans and loads all board files.
// Invalid files are skipped. Returns boards sorted by ID.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		b, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		boards = append(boards, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
	return boards, nil
}

// LoadFile loads a single board file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Board, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	b, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	b.FilePath = path.Join(l.root, p)
	return b, nil
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}

	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

// Resolve finds a board by reference: a path to a board file, or the ID of
// a builtin board.
func Resolve(ref string) (Board, error) {
	if ext := strings.ToLower(path.Ext(ref)); isSupportedExtension(ext) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return Board{}, fmt.Errorf("reading file %s: %w", ref, err)
		}
		b, err := ParseYAML(data)
		if err != nil {
			return Board{}, fmt.Errorf("parsing file %s: %w", ref, err)
		}
		b.FilePath = ref
		return b, nil
	}
	return Builtin().LoadByID(ref)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
