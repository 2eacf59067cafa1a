// Package httpapi exposes company search and seeding over HTTP.
//
// Routes:
//
//	GET  /companies/search?q=<text>  ranked companies as a JSON array
//	POST /companies/seed             seed result as JSON; 500 when the run failed
//	GET  /healthz                    liveness probe
//
// Search is rate limited per client IP.
package httpapi
