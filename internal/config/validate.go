package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims the source list and checks the knobs that
// would otherwise fail at runtime.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// Drop blank sources, trim names.
	var sources []Source
	seen := map[string]bool{}
	for _, s := range out.Sources {
		s.Name = strings.TrimSpace(s.Name)
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		s.URL = strings.TrimSpace(s.URL)
		s.Path = strings.TrimSpace(s.Path)
		s.Sheet = strings.TrimSpace(s.Sheet)
		if s.Name == "" && s.URL == "" && s.Path == "" {
			continue
		}
		sources = append(sources, s)
	}
	out.Sources = sources

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Cache.TTLSeconds <= 0 {
		res.addErr("cache.ttl_seconds must be > 0")
	} else if out.Cache.TTLSeconds < 30 {
		res.addWarn("cache.ttl_seconds is very low (%d); every page view may refetch the sheets.", out.Cache.TTLSeconds)
	}
	if out.Polling.RefreshSeconds < 0 {
		res.addErr("polling.refresh_seconds must be >= 0 (0 disables the poller)")
	}
	if out.Fetch.RequestsPerSec <= 0 {
		res.addErr("fetch.requests_per_sec must be > 0")
	}
	if out.Fetch.Burst <= 0 {
		res.addErr("fetch.burst must be > 0")
	}
	if out.Fetch.TimeoutSeconds <= 0 {
		res.addErr("fetch.timeout_seconds must be > 0")
	}

	if len(out.Sources) == 0 {
		res.addWarn("no sources configured; the dashboard will be empty.")
	}
	for i, s := range out.Sources {
		if s.Name == "" {
			res.addErr("sources[%d].name is required", i)
		} else if seen[strings.ToLower(s.Name)] {
			res.addErr("duplicate source name %q", s.Name)
		}
		seen[strings.ToLower(s.Name)] = true

		switch s.Kind {
		case KindGSheet:
			if s.URL == "" {
				res.addErr("sources[%d] (%s): url is required for kind gsheet", i, s.Name)
			}
		case KindXLSX:
			if s.Path == "" {
				res.addErr("sources[%d] (%s): path is required for kind xlsx", i, s.Name)
			}
		default:
			res.addErr("sources[%d] (%s): unknown kind %q (want gsheet or xlsx)", i, s.Name, s.Kind)
		}
	}

	return out, res
}
