// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import "context"

// GeoIPReloadJob is the name of the GeoIP database refresh job.
const GeoIPReloadJob = "geoip_reload"

// Reloader reopens a file-backed resource when it changed on disk.
type Reloader interface {
	Reload() error
}

// AddGeoIPReload checks hourly for a replaced GeoIP database.
func (s *Scheduler) AddGeoIPReload(r Reloader) error {
	return s.Add(GeoIPReloadJob, "@hourly", func(context.Context) error {
		return r.Reload()
	})
}
