// Package enrich is the optional context-enrichment collaborator. Given the
// raw error text and an optional file path, it gathers best-effort project
// context: where the error points, the surrounding code, recent
// version-control changes, project layout, environment facts, and declared
// dependencies.
//
// Unlike the engine, the collector does touch the filesystem and shells out
// to git. Every sub-lookup fails independently: a missing repo or unreadable
// file leaves that field empty without failing the whole call, and
// enrichment never alters the engine's base result.
package enrich

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/silvermoss/loupe/internal/engine/trace"
)

const (
	surroundingLines  = 5
	recentChangeCount = 5
	maxStructureItems = 30
	lookupTimeout     = 3 * time.Second
)

// Context is the best-effort enrichment bundle. Any field may be empty.
type Context struct {
	ErrorLocation    string            `json:"error_location,omitempty"`
	SurroundingCode  string            `json:"surrounding_code,omitempty"`
	RecentChanges    []string          `json:"recent_changes,omitempty"`
	ProjectStructure []string          `json:"project_structure,omitempty"`
	EnvironmentInfo  map[string]string `json:"environment_info,omitempty"`
	Dependencies     []string          `json:"dependencies,omitempty"`
}

// Collector performs enrichment lookups rooted at a project directory.
type Collector struct {
	root string
	log  zerolog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger for failed-lookup debug messages.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Collector) { c.log = log }
}

// NewCollector creates a Collector rooted at dir ("." when empty).
func NewCollector(dir string, opts ...Option) *Collector {
	if dir == "" {
		dir = "."
	}
	c := &Collector{root: dir, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs every sub-lookup and returns whatever succeeded. It never
// returns an error; absent context is represented by empty fields.
func (c *Collector) Collect(ctx context.Context, rawText, filePath string) *Context {
	out := &Context{}

	out.ErrorLocation = c.errorLocation(rawText, filePath)
	out.SurroundingCode = c.surroundingCode(out.ErrorLocation)
	out.RecentChanges = c.recentChanges(ctx)
	out.ProjectStructure = c.projectStructure()
	out.EnvironmentInfo = c.environmentInfo()
	out.Dependencies = c.dependencies()

	return out
}

// errorLocation pulls the first "file:line" out of the raw text, preferring
// the explicit filePath when the text yields nothing.
func (c *Collector) errorLocation(rawText, filePath string) string {
	for _, frame := range trace.ExtractChain(rawText) {
		if frame.Location != "" {
			return frame.Location
		}
	}
	for _, frame := range trace.RelevantFrames(rawText) {
		if loc := trace.LocationOf(frame); loc != "" {
			return loc
		}
	}
	return filePath
}

// surroundingCode reads ± surroundingLines around the located line.
func (c *Collector) surroundingCode(location string) string {
	file, line := splitLocation(location)
	if file == "" || line <= 0 {
		return ""
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(c.root, file)
	}

	f, err := os.Open(file)
	if err != nil {
		c.log.Debug().Err(err).Str("file", file).Msg("surrounding code unavailable")
		return ""
	}
	defer f.Close()

	var (
		b       strings.Builder
		current int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		current++
		if current < line-surroundingLines {
			continue
		}
		if current > line+surroundingLines {
			break
		}
		marker := "  "
		if current == line {
			marker = "> "
		}
		b.WriteString(marker + strconv.Itoa(current) + "\t" + scanner.Text() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// recentChanges shells out to git for the last few commits.
func (c *Collector) recentChanges(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", c.root, "log", "--oneline", "-n", strconv.Itoa(recentChangeCount))
	out, err := cmd.Output()
	if err != nil {
		c.log.Debug().Err(err).Msg("git history unavailable")
		return nil
	}

	var changes []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			changes = append(changes, line)
		}
	}
	return changes
}

// projectStructure lists top-level entries under the root, directories first.
func (c *Collector) projectStructure() []string {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		c.log.Debug().Err(err).Msg("project structure unavailable")
		return nil
	}

	var items []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			name += "/"
		}
		items = append(items, name)
	}
	sort.Slice(items, func(i, j int) bool {
		di, dj := strings.HasSuffix(items[i], "/"), strings.HasSuffix(items[j], "/")
		if di != dj {
			return di
		}
		return items[i] < items[j]
	})
	if len(items) > maxStructureItems {
		items = items[:maxStructureItems]
	}
	return items
}

func (c *Collector) environmentInfo() map[string]string {
	info := map[string]string{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
	if host, err := os.Hostname(); err == nil {
		info["hostname"] = host
	}
	return info
}

// dependencyManifests maps manifest filenames to the ecosystem they declare.
var dependencyManifests = []string{
	"go.mod", "package.json", "requirements.txt", "Pipfile",
	"pom.xml", "build.gradle", "Cargo.toml", "Gemfile", "*.csproj",
}

// dependencies reports which dependency manifests exist at the root.
func (c *Collector) dependencies() []string {
	var found []string
	for _, pattern := range dependencyManifests {
		matches, err := filepath.Glob(filepath.Join(c.root, pattern))
		if err != nil || len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			found = append(found, filepath.Base(m))
		}
	}
	return found
}

// splitLocation splits "file:line" into its parts. Windows drive letters
// (C:\...) keep their colon.
func splitLocation(location string) (string, int) {
	i := strings.LastIndexByte(location, ':')
	if i <= 0 || i == len(location)-1 {
		return location, 0
	}
	line, err := strconv.Atoi(location[i+1:])
	if err != nil {
		return location, 0
	}
	return location[:i], line
}
