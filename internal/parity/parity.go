// Package parity compares the legacy site's API routes with this service.
package parity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Target is one route compared on both deployments.
type Target struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	LegacyPath string `json:"legacyPath"`
	Critical   bool   `json:"critical"`
}

// DefaultTargets are the read routes the legacy site exposes.
var DefaultTargets = []Target{
	{Method: http.MethodGet, Path: "/reviewed-events", LegacyPath: "/api/reviewed-events", Critical: true},
}

// Comparison is the outcome for one target.
type Comparison struct {
	Target         Target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

// Breaking reports whether the comparison should fail the run.
func (c Comparison) Breaking() bool {
	if !c.Target.Critical {
		return false
	}
	return c.Err != nil || !c.StatusMatch || !c.BodyMatch
}

// LoadTargets reads {"targets": [...]} from path.
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []Target `json:"targets"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

// Checker runs comparisons between two base URLs.
type Checker struct {
	Client     *http.Client
	GoBase     string
	LegacyBase string
}

// Compare requests tgt on both deployments and compares status and body.
func (ch Checker) Compare(ctx context.Context, tgt Target) Comparison {
	comp := Comparison{Target: tgt}
	legacyPath := tgt.LegacyPath
	if legacyPath == "" {
		legacyPath = tgt.Path
	}

	goStatus, goBody, goDur, goErr := ch.fetch(ctx, ch.GoBase, tgt.Method, tgt.Path)
	legacyStatus, legacyBody, legacyDur, legacyErr := ch.fetch(ctx, ch.LegacyBase, tgt.Method, legacyPath)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur
	if goErr != nil {
		comp.Err = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Err = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = BodiesEqual(goBody, legacyBody)
	return comp
}

func (ch Checker) fetch(ctx context.Context, base, method, path string) (int, []byte, time.Duration, error) {
	if ch.Client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := ch.Client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// BodiesEqual compares JSON bodies ignoring key order, integer formatting and
// the order of an "events" list, which both sides sort differently.
func BodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
		if events, ok := val["events"].([]interface{}); ok {
			sortByLink(events)
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func sortByLink(items []interface{}) {
	link := func(i int) string {
		if m, ok := items[i].(map[string]interface{}); ok {
			s, _ := m["link"].(string)
			return s
		}
		return ""
	}
	sort.SliceStable(items, func(i, j int) bool { return link(i) < link(j) })
}
