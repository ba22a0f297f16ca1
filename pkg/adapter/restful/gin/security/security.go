// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package security provides the static and stateless access policy of
// the REST APIs. Requests whose paths match one of the permitted
// patterns are served anonymously. Other paths require an
// authenticated principal, but no authentication mechanism exists,
// so they are always forbidden.
//
// The policy keeps no session state, so no cookie is ever set, and
// since there is no cookie based authentication, no CSRF protection
// is required either.
package security

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-management/pkg/core/cerr"
)

var errAuthRequired = errors.New("authentication is required")

// DefaultPermitAll lists the patterns which are permitted when no
// patterns are configured explicitly.
var DefaultPermitAll = []string{"/cars/**"}

// Policy is an allow-list of path patterns.
// Patterns are matched segment by segment, where a "*" segment matches
// exactly one path segment and a "**" segment matches zero or more
// path segments. For example, "/cars/**" matches "/cars", "/cars/1",
// and "/cars/1/x", but not "/carsx".
type Policy struct {
	PermitAll []string
}

// Permits reports whether the `path` request path matches one of the
// permitted patterns.
func (p Policy) Permits(path string) bool {
	ps := segments(path)
	for _, pattern := range p.PermitAll {
		if match(segments(pattern), ps) {
			return true
		}
	}
	return false
}

// Middleware aborts requests which are not permitted with the 403
// status code. Since the middleware is registered on the engine, it
// also guards the paths which have no route.
func (p Policy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.Permits(c.Request.URL.Path) {
			c.Next()
			return
		}
		serdser.SerErr(c, cerr.Authorization(errAuthRequired))
		c.Abort()
	}
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, path []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case "**":
			for i := 0; i <= len(path); i++ {
				if match(pattern[1:], path[i:]) {
					return true
				}
			}
			return false
		case "*":
			if len(path) == 0 {
				return false
			}
		default:
			if len(path) == 0 || pattern[0] != path[0] {
				return false
			}
		}
		pattern, path = pattern[1:], path[1:]
	}
	return len(path) == 0
}
