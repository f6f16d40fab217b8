// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net"
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/olegiv/ngl-guild/internal/geoip"
)

// clientIP returns the request's remote IP without the port. RemoteAddr
// is already rewritten by the RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// clientDetails describes where a request came from, for the audit log.
// geo may be nil.
func clientDetails(r *http.Request, geo *geoip.Lookup) map[string]string {
	ip := clientIP(r)
	details := map[string]string{"ip": ip}
	if geo != nil {
		if c := geo.Country(ip); c != "" {
			details["country"] = c
		}
	}

	if raw := r.UserAgent(); raw != "" {
		ua := useragent.Parse(raw)
		if ua.Name != "" {
			details["browser"] = ua.Name
		}
		if ua.OS != "" {
			details["os"] = ua.OS
		}
		switch {
		case ua.Bot:
			details["device"] = "bot"
		case ua.Mobile:
			details["device"] = "mobile"
		case ua.Tablet:
			details["device"] = "tablet"
		default:
			details["device"] = "desktop"
		}
	}
	return details
}
