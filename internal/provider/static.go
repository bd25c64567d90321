package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/model"
)

// Source retrieves a named static resource: the manifest or one of the
// per-material schedule files it references.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPSource fetches resources relative to a base URL.
type HTTPSource struct {
	Client  *http.Client
	BaseURL string
}

// Fetch retrieves BaseURL/name.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	url := strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status for %s: %d - %s", url, resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// DirSource reads resources from a local directory.
type DirSource struct {
	Dir string
}

// Fetch reads Dir/name.
func (s *DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

// manifestEntry describes one schedule file in the static manifest.
type manifestEntry struct {
	File string `json:"file"`
	Type string `json:"type"`
	Year int    `json:"year"`
}

// StaticConfig configures a StaticProvider.
type StaticConfig struct {
	// Source supplies the manifest and the files it names. Required.
	Source Source
	// Manifest is the resource name of the dataset manifest.
	// Defaults to "dataset.json".
	Manifest string
	// Region is stamped on every category. Defaults to model.RegionZH.
	Region model.Region
	// LoadTimeout bounds the whole background load. Zero means no deadline.
	LoadTimeout time.Duration
	// Retry configures per-fetch retry behavior.
	Retry common.RetryOptions
}

// StaticProvider loads schedules from a manifest of fixed-format CSV
// files. The load starts immediately on construction.
type StaticProvider struct {
	cfg  StaticConfig
	load *loader
}

// NewStatic creates a StaticProvider and kicks off its background load.
func NewStatic(cfg StaticConfig) *StaticProvider {
	if cfg.Manifest == "" {
		cfg.Manifest = "dataset.json"
	}
	if cfg.Region == "" {
		cfg.Region = model.RegionZH
	}

	p := &StaticProvider{cfg: cfg}
	p.load = startLoad(cfg.LoadTimeout, p.loadData)
	return p
}

// Dataset returns the shared load outcome, waiting for it if necessary.
func (p *StaticProvider) Dataset(ctx context.Context) (*model.Dataset, error) {
	return p.load.wait(ctx)
}

func (p *StaticProvider) loadData(ctx context.Context) (*model.Dataset, error) {
	raw, err := p.fetch(ctx, p.cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", common.ErrLoadFailed, err)
	}

	var entries []manifestEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", common.ErrLoadFailed, err)
	}

	builder := &datasetBuilder{}
	for _, entry := range entries {
		material, err := model.ParseMaterial(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: manifest entry %q: %v", common.ErrLoadFailed, entry.File, err)
		}

		text, err := p.fetch(ctx, entry.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", common.ErrLoadFailed, entry.File, err)
		}

		rows := p.parseFile(string(text), material, builder)
		slog.Debug("Loaded static schedule file",
			"file", entry.File,
			"material", material,
			"year", entry.Year,
			"rows", rows)
	}

	ds := builder.dataset()
	slog.Info("Static dataset loaded",
		"files", len(entries),
		"categories", len(ds.Categories),
		"events", len(ds.Events))
	return ds, nil
}

// parseFile parses one schedule file: the first line is a header, each
// remaining line is `"<area>","<YYYY-MM-DD>"` with optional quotes. Rows
// missing either field are skipped.
func (p *StaticProvider) parseFile(text string, material model.Material, builder *datasetBuilder) int {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // discard header
	}

	added := 0
	for _, line := range lines {
		area, dateStr, ok := splitRow(strings.ReplaceAll(line, `"`, ""))
		if !ok {
			continue
		}

		date, ok := parseLocalDate(dateStr)
		if !ok {
			continue
		}

		cat := model.Category{
			Material: material,
			Region:   p.cfg.Region,
			Area:     area,
		}
		if builder.add(cat, date) {
			added++
		}
	}
	return added
}

func (p *StaticProvider) fetch(ctx context.Context, name string) ([]byte, error) {
	var out []byte
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		out, fetchErr = p.cfg.Source.Fetch(ctx, name)
		return fetchErr
	}, p.cfg.Retry)
	return out, err
}

// splitRow splits a raw row into (area, date), reporting whether both
// fields are present.
func splitRow(line string) (string, string, bool) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseLocalDate parses Y-M-D (leading zeros optional) at local midnight.
func parseLocalDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	y, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	d, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}

	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}
