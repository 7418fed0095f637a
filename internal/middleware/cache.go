// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"net/http"

	"factorysite/internal/cache"
)

// bodyRecorder tees a response so a 200 body can be cached.
type bodyRecorder struct {
	responseWriter
	buf bytes.Buffer
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	br.buf.Write(b)
	return br.responseWriter.Write(b)
}

// CacheResponses serves GET requests from rc and stores successful
// responses. The key includes the negotiated language, so Lang must run
// first. A nil rc disables caching.
func CacheResponses(rc *cache.Responses) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rc == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := cache.Key(string(LangFromCtx(r.Context())), r.URL.RequestURI())
			if body, ok := rc.Get(r.Context(), key); ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &bodyRecorder{responseWriter: responseWriter{ResponseWriter: w, statusCode: http.StatusOK}}
			next.ServeHTTP(rec, r)
			if rec.statusCode == http.StatusOK && rec.buf.Len() > 0 {
				rc.Set(r.Context(), key, rec.buf.Bytes())
			}
		})
	}
}
