package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/random-robbie/standing-data/internal/dataset"
)

// defaultLimit is the number of rows returned when no limit param is given.
const defaultLimit = 100

// handleSearch builds the handler for one entity collection.
//
// Query parameters other than "limit" are treated as search predicates;
// names the entity does not recognise are ignored by the engine. The limit
// defaults to 100 and is clamped to the engine's hard cap. A truncated
// result is flagged with the X-Partial-Result header.
func (s *Server) handleSearch(entity dataset.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit := defaultLimit
		if raw := query.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeBadRequest(w, "limit must be an integer")
				return
			}
			limit = parsed
		}

		preds := make(dataset.Predicates, len(query))
		for name, values := range query {
			if name == "limit" || len(values) == 0 {
				continue
			}
			preds[name] = values[0]
		}

		start := time.Now()
		res, err := s.store.Search(r.Context(), entity, preds, limit)
		if err != nil {
			s.logger.Error("search failed",
				"entity", string(entity),
				"error", err,
				"request_id", r.Context().Value(ctxKeyRequestID),
			)
			writeInternalError(w, "search failed")
			return
		}

		if s.influx != nil {
			s.influx.WriteQueryMetric(
				string(entity),
				float64(time.Since(start).Microseconds())/1000.0,
				len(res.Rows),
				res.ShardsScanned,
				res.Partial,
			)
		}

		if res.Partial {
			w.Header().Set("X-Partial-Result", "true")
		}

		rows := res.Rows
		if rows == nil {
			rows = []dataset.Row{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
