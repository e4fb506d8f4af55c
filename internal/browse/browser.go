package browse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Browser is an interactive directory picker. It keeps a single piece of
// state, the current directory, and reads transitions from its input
// until the user selects a path or cancels.
type Browser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewBrowser constructs a browser over the given streams. Nil streams
// default to stdin/stdout.
func NewBrowser(in io.Reader, out io.Writer) *Browser {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Browser{in: bufio.NewReader(in), out: out}
}

// listing holds one directory's entries, directories first, each group
// in case-insensitive alphabetical order.
type listing struct {
	dirs  []string
	files []string
}

func readListing(dir string) (*listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	l := &listing{}
	for _, e := range entries {
		if e.IsDir() {
			l.dirs = append(l.dirs, e.Name())
		} else {
			l.files = append(l.files, e.Name())
		}
	}
	insensitive := func(names []string) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		}
	}
	sort.Slice(l.dirs, insensitive(l.dirs))
	sort.Slice(l.files, insensitive(l.files))
	return l, nil
}

// Run starts the browser at startDir and returns the selected path.
// ok is false when the user cancels.
func (b *Browser) Run(startDir string) (path string, ok bool, err error) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	start := current

	for {
		l, err := readListing(current)
		if err != nil {
			fmt.Fprintf(b.out, "Cannot read %s: %v\n", current, err)
			if current == start {
				// The reset target itself is unreadable, nothing left
				// to fall back to.
				return "", false, err
			}
			// Report and reset to the starting directory rather than
			// crashing out of the session.
			current = start
			continue
		}

		b.render(current, l)

		line, err := b.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return "", false, nil
			}
			return "", false, err
		}
		input := strings.TrimSpace(line)

		switch {
		case input == ".":
			return current, true, nil
		case input == "..":
			parent := filepath.Dir(current)
			if parent != current {
				current = parent
			}
		case input == "c" || input == "cancel":
			return "", false, nil
		case isNumeric(input):
			n, _ := strconv.Atoi(input)
			if n < 1 || n > len(l.dirs) {
				fmt.Fprintf(b.out, "Invalid choice: %s\n", input)
				continue
			}
			current = filepath.Join(current, l.dirs[n-1])
		default:
			fmt.Fprintf(b.out, "Invalid input %q. Enter a number, '.', '..', or 'c' to cancel.\n", input)
		}
	}
}

func (b *Browser) render(current string, l *listing) {
	fmt.Fprintf(b.out, "\n%s\n", current)
	for i, d := range l.dirs {
		fmt.Fprintf(b.out, "  %d) %s/\n", i+1, d)
	}
	for _, f := range l.files {
		fmt.Fprintf(b.out, "     %s\n", f)
	}
	fmt.Fprint(b.out, "Select: [number] descend, [.] choose here, [..] up, [c] cancel > ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Placeholder is the token commands use to mark a path to be filled in.
const Placeholder = "<PATH>"

var safePathRe = regexp.MustCompile(`^[a-zA-Z0-9_./~-]+$`)

// ShellQuote escapes a path for safe use in a shell command. Paths made
// of safe characters pass through unchanged; everything else is wrapped
// in single quotes with embedded quotes escaped.
func ShellQuote(path string) string {
	if path != "" && safePathRe.MatchString(path) {
		return path
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// Apply substitutes the selected path into the command's Placeholder,
// or appends it when no placeholder exists.
func Apply(command, path string) string {
	quoted := ShellQuote(path)
	if strings.Contains(command, Placeholder) {
		return strings.ReplaceAll(command, Placeholder, quoted)
	}
	return command + " " + quoted
}

// NeedsPath reports whether a command carries the path placeholder.
func NeedsPath(command string) bool {
	return strings.Contains(command, Placeholder)
}
