// Package pattern provides starting populations: a small built-in catalogue plus loaders for
// plaintext (.cells) and YAML pattern files.
package pattern

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPattern is returned when a name is neither built in nor a readable file
var ErrUnknownPattern = errors.New("unknown pattern")

// Pattern is a named set of live cells. Cells are kept as raw pairs so that malformed entries
// from files are reported by the seeding code instead of being dropped here.
type Pattern struct {
	Name  string  `yaml:"name"`
	Cells [][]int `yaml:"cells"`
}

var builtins = map[string]Pattern{
	"block":       {Name: "block", Cells: [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	"beehive":     {Name: "beehive", Cells: [][]int{{1, 0}, {2, 0}, {0, 1}, {3, 1}, {1, 2}, {2, 2}}},
	"blinker":     {Name: "blinker", Cells: [][]int{{0, 0}, {1, 0}, {2, 0}}},
	"toad":        {Name: "toad", Cells: [][]int{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}}},
	"glider":      {Name: "glider", Cells: [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	"lwss":        {Name: "lwss", Cells: [][]int{{1, 0}, {4, 0}, {0, 1}, {0, 2}, {4, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3}}},
	"r-pentomino": {Name: "r-pentomino", Cells: [][]int{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}}},
	"acorn":       {Name: "acorn", Cells: [][]int{{1, 0}, {3, 1}, {0, 2}, {1, 2}, {4, 2}, {5, 2}, {6, 2}}},
}

// Builtin returns the built-in pattern with the given name
func Builtin(name string) (Pattern, bool) {
	p, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Pattern{}, false
	}
	return p.Translate(0, 0), true
}

// Names lists the built-in patterns in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves a built-in name or reads a pattern file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as plaintext.
func Load(nameOrPath string) (Pattern, error) {
	if p, ok := Builtin(nameOrPath); ok {
		return p, nil
	}

	f, err := os.Open(nameOrPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[Load] %q", nameOrPath)
		}
		return Pattern{}, errors.Wrapf(err, "[Load] failed to open pattern file: %+v", nameOrPath)
	}
	defer f.Close()

	base := filepath.Base(nameOrPath)
	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParsePlaintext(strings.TrimSuffix(base, filepath.Ext(base)), f)
	}
}

// ParseYAML decodes a pattern of the form {name: ..., cells: [[x, y], ...]}
func ParseYAML(r io.Reader) (Pattern, error) {
	var p Pattern
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return Pattern{}, errors.Wrap(err, "[ParseYAML] failed to decode pattern")
	}
	return p, nil
}

/*
ParsePlaintext reads the plaintext .cells format: lines starting with '!' are comments, every
other line is one row where 'O' or '*' marks a live cell and any other character a dead one.
A "!Name:" comment overrides the given name.
*/
func ParsePlaintext(name string, r io.Reader) (Pattern, error) {
	p := Pattern{Name: name}
	scanner := bufio.NewScanner(r)
	y := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "!") {
			if rest, ok := strings.CutPrefix(line, "!Name:"); ok {
				p.Name = strings.TrimSpace(rest)
			}
			continue
		}
		for x, ch := range []rune(line) {
			if ch == 'O' || ch == '*' {
				p.Cells = append(p.Cells, []int{x, y})
			}
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return Pattern{}, errors.Wrap(err, "[ParsePlaintext] failed to read pattern")
	}
	return p, nil
}

// Translate returns a copy of the pattern shifted by (dx, dy). Malformed pairs are copied as is.
func (p Pattern) Translate(dx, dy int) Pattern {
	out := Pattern{Name: p.Name, Cells: make([][]int, len(p.Cells))}
	for i, c := range p.Cells {
		cp := append([]int(nil), c...)
		if len(cp) == 2 {
			cp[0] += dx
			cp[1] += dy
		}
		out.Cells[i] = cp
	}
	return out
}

// Size returns the width and height spanned by the well-formed cells
func (p Pattern) Size() (w, h int) {
	_, _, w, h = p.extent()
	return w, h
}

// Centered returns a copy of the pattern shifted so its extent is centred on the origin
func (p Pattern) Centered() Pattern {
	minX, minY, w, h := p.extent()
	return p.Translate(-minX-w/2, -minY-h/2)
}

func (p Pattern) extent() (minX, minY, w, h int) {
	first := true
	var maxX, maxY int
	for _, c := range p.Cells {
		if len(c) != 2 {
			continue
		}
		if first {
			minX, maxX, minY, maxY = c[0], c[0], c[1], c[1]
			first = false
			continue
		}
		minX, maxX = min(minX, c[0]), max(maxX, c[0])
		minY, maxY = min(minY, c[1]), max(maxY, c[1])
	}
	if first {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX - minX + 1, maxY - minY + 1
}
