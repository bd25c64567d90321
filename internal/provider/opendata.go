package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/model"
)

const (
	defaultRecordsBaseURL = "https://data.stadt-zuerich.ch"
	defaultPageSize       = 1000
	defaultMaxPages       = 1000
)

// MaterialPackage maps a material to the CKAN package that publishes its
// collection calendar.
type MaterialPackage struct {
	Material model.Material
	URL      string
}

// DefaultPackages lists the published Zürich collection calendars.
var DefaultPackages = []MaterialPackage{
	{model.MaterialPaper, "https://ckan.opendata.swiss/api/3/action/package_show?id=entsorgungskalender-papier1"},
	{model.MaterialCardboard, "https://ckan.opendata.swiss/api/3/action/package_show?id=entsorgungskalender-karton1"},
	{model.MaterialOrganic, "https://ckan.opendata.swiss/api/3/action/package_show?id=entsorgungskalender-bioabfall1"},
	{model.MaterialHousehold, "https://ckan.opendata.swiss/api/3/action/package_show?id=entsorgungskalender-kehricht1"},
}

// CKAN response shapes. The records payload is newline-delimited
// `<area>,<date>` text, not JSON.
type packageResponse struct {
	Result struct {
		Resources []struct {
			DownloadURL string `json:"download_url"`
			Identifier  string `json:"identifier"`
		} `json:"resources"`
	} `json:"result"`
}

type datastoreResponse struct {
	Result *struct {
		Records string `json:"records"`
		Links   *struct {
			Start string `json:"start"`
			Next  string `json:"next"`
		} `json:"_links"`
		Total int `json:"total"`
	} `json:"result"`
	Success bool `json:"success"`
}

// OpenDataConfig configures an OpenDataProvider. The zero value targets
// the published Zürich datasets.
type OpenDataConfig struct {
	Client *http.Client
	// Packages overrides the material to package-metadata mapping.
	Packages []MaterialPackage
	// RecordsBaseURL hosts the datastore_search API; page links are
	// resolved relative to it.
	RecordsBaseURL string
	// PageSize bounds records per page.
	PageSize int
	// MaxPages caps a single resource's pagination chain. A malformed
	// upstream that keeps returning next links fails the load instead of
	// looping forever.
	MaxPages int
	// Region is stamped on every category. Defaults to model.RegionZH.
	Region model.Region
	// LoadTimeout bounds the whole background load. Zero means no deadline.
	LoadTimeout time.Duration
	// Retry configures per-fetch retry behavior.
	Retry common.RetryOptions
}

// OpenDataProvider loads schedules from the CKAN open-data API: package
// metadata enumerates resource identifiers, then each resource's records
// are drained page by page. The load starts immediately on construction.
type OpenDataProvider struct {
	cfg  OpenDataConfig
	load *loader
}

// NewOpenData creates an OpenDataProvider and kicks off its background load.
func NewOpenData(cfg OpenDataConfig) *OpenDataProvider {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = DefaultPackages
	}
	if cfg.RecordsBaseURL == "" {
		cfg.RecordsBaseURL = defaultRecordsBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.Region == "" {
		cfg.Region = model.RegionZH
	}

	p := &OpenDataProvider{cfg: cfg}
	p.load = startLoad(cfg.LoadTimeout, p.loadData)
	return p
}

// Dataset returns the shared load outcome, waiting for it if necessary.
func (p *OpenDataProvider) Dataset(ctx context.Context) (*model.Dataset, error) {
	return p.load.wait(ctx)
}

// resourceRef is one datastore resource discovered through package metadata.
type resourceRef struct {
	Material model.Material
	ID       string
}

func (p *OpenDataProvider) loadData(ctx context.Context) (*model.Dataset, error) {
	var refs []resourceRef
	for _, pkg := range p.cfg.Packages {
		ids, err := p.listResources(ctx, pkg.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s metadata: %v", common.ErrLoadFailed, pkg.Material, err)
		}
		for _, id := range ids {
			refs = append(refs, resourceRef{Material: pkg.Material, ID: id})
		}
	}

	builder := &datasetBuilder{}
	for _, ref := range refs {
		lines, err := p.drainResource(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: resource %s: %v", common.ErrLoadFailed, ref.ID, err)
		}

		added := 0
		for _, line := range lines {
			if line == "" {
				continue
			}
			area, dateStr, ok := splitRow(line)
			if !ok {
				continue
			}
			date, err := parseRecordDate(dateStr)
			if err != nil {
				slog.Debug("Skipping record with unparseable date",
					"resource", ref.ID, "value", dateStr)
				continue
			}

			cat := model.Category{
				Material: ref.Material,
				Region:   p.cfg.Region,
				Area:     area,
			}
			if builder.add(cat, date) {
				added++
			}
		}

		slog.Debug("Drained open-data resource",
			"resource", ref.ID,
			"material", ref.Material,
			"records", len(lines),
			"events", added)
	}

	ds := builder.dataset()
	slog.Info("Open-data dataset loaded",
		"resources", len(refs),
		"categories", len(ds.Categories),
		"events", len(ds.Events))
	return ds, nil
}

// listResources fetches package metadata and returns resource identifiers.
func (p *OpenDataProvider) listResources(ctx context.Context, url string) ([]string, error) {
	var pkg packageResponse
	if err := p.fetchJSON(ctx, url, &pkg); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(pkg.Result.Resources))
	for _, res := range pkg.Result.Resources {
		ids = append(ids, res.Identifier)
	}
	return ids, nil
}

// drainResource follows the records API's next links until the chain ends,
// concatenating every page's record lines in order. A page whose records
// are empty (or a single blank line) is an explicit end-of-data signal,
// even when a next link is present.
func (p *OpenDataProvider) drainResource(ctx context.Context, resourceID string) ([]string, error) {
	pageURL := fmt.Sprintf("/api/3/action/datastore_search?resource_id=%s&limit=%d&records_format=csv&fields=PLZ,Abholdatum",
		resourceID, p.cfg.PageSize)

	var lines []string
	for page := 0; pageURL != ""; page++ {
		if page >= p.cfg.MaxPages {
			return nil, fmt.Errorf("%w: %d pages", common.ErrTooManyPages, page)
		}

		var resp datastoreResponse
		if err := p.fetchJSON(ctx, p.cfg.RecordsBaseURL+pageURL, &resp); err != nil {
			return nil, err
		}
		if !resp.Success || resp.Result == nil {
			return nil, fmt.Errorf("datastore_search returned failure for %s", resourceID)
		}

		records := strings.Split(resp.Result.Records, "\n")
		if len(records) == 0 || (len(records) == 1 && records[0] == "") {
			break
		}
		lines = append(lines, records...)

		pageURL = ""
		if resp.Result.Links != nil {
			pageURL = resp.Result.Links.Next
		}
	}

	return lines, nil
}

// fetchJSON fetches a URL with retry and decodes the JSON body into out.
func (p *OpenDataProvider) fetchJSON(ctx context.Context, url string, out any) error {
	return common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		slog.Debug("Fetching open-data URL", "url", url)
		resp, err := p.cfg.Client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("unexpected status for %s: %d - %s", url, resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &common.RetryableError{
				Err:       fmt.Errorf("failed to decode %s: %w", url, err),
				Retryable: false,
			}
		}
		return nil
	}, p.cfg.Retry)
}

// recordDateLayouts covers the date formats the datastore has been seen
// to publish.
var recordDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// parseRecordDate parses an ISO 8601-ish date in local time, truncated to
// midnight: events carry a calendar date, not a time of day.
func parseRecordDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range recordDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return model.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
