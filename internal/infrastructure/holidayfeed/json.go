package holidayfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/sommertheater/portal/internal/domain/holidays"
)

type jsonFetcher struct {
	url    string
	path   string
	client *http.Client
}

// NewJSONFetcher reads holidays from a JSON API. path is a JSONPath
// expression selecting the array of holiday objects.
func NewJSONFetcher(url, path string, client *http.Client) (holidays.Fetcher, error) {
	if url == "" {
		return nil, errors.New("json url is empty")
	}
	if strings.TrimSpace(path) == "" {
		path = "$[*]"
	}
	return &jsonFetcher{url: url, path: path, client: client}, nil
}

func (f *jsonFetcher) Source() holidays.Source {
	return holidays.SourceJSON
}

func (f *jsonFetcher) Fetch(ctx context.Context, year int, region string) ([]holidays.Holiday, error) {
	body, err := download(ctx, f.client, expandURL(f.url, year, region))
	if err != nil {
		return nil, err
	}
	return ParseJSON(body, f.path, year, region)
}

// ParseJSON extracts holidays from a JSON document. Each selected object needs
// a "date" (YYYY-MM-DD, optionally followed by a time) and a "localName" or
// "name". Objects flagged "global": false are kept only when region is listed
// in their "counties".
func ParseJSON(data []byte, path string, year int, region string) ([]holidays.Holiday, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}

	items, ok := selected.([]interface{})
	if !ok {
		items = []interface{}{selected}
	}

	var out []holidays.Holiday
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if global, ok := obj["global"].(bool); ok && !global && !inCounties(obj["counties"], region) {
			continue
		}

		date, ok := parseFeedDate(obj["date"])
		if !ok || date.Year() != year {
			continue
		}
		name := firstString(obj, "localName", "name")
		if name == "" {
			continue
		}

		out = append(out, holidays.Holiday{
			Date:   date,
			Name:   name,
			Source: holidays.SourceJSON,
			Region: region,
		})
	}
	return out, nil
}

func parseFeedDate(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || len(s) < len(time.DateOnly) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func inCounties(v interface{}, region string) bool {
	counties, ok := v.([]interface{})
	if !ok || region == "" {
		return false
	}
	for _, c := range counties {
		if s, ok := c.(string); ok && strings.EqualFold(strings.TrimSpace(s), region) {
			return true
		}
	}
	return false
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
