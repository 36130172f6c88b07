package server

import (
	"net/http"

	"github.com/etnz/ledgerview"
	"github.com/etnz/ledgerview/logger"
	"github.com/etnz/ledgerview/source"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// filtersResponse describes how a query resolves.
type filtersResponse struct {
	Query      string                 `json:"query"`
	Filters    ledgerview.FilterState `json:"filters"`
	Resolution ledgerview.Resolution  `json:"resolution"`
	Valid      bool                   `json:"valid"`
	Error      string                 `json:"error,omitempty"`
	// Clamped is the corrected query when the range leaves the bounds.
	Clamped string `json:"clamped,omitempty"`
}

// filters handles GET /api/filters?<query>.
func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	state := ledgerview.ParseFilterState(r.URL.Query())
	now := s.now()
	res := ledgerview.ResolveDateRange(state, now)
	resp := filtersResponse{
		Query:      state.Encode(),
		Filters:    state,
		Resolution: res,
		Valid:      true,
	}
	if err := ledgerview.ValidateRange(res.Range()); err != nil {
		resp.Valid, resp.Error = false, err.Error()
	} else if clamped, ok := ledgerview.ClampFiltersToRange(state, s.bounds, now); ok {
		resp.Clamped = clamped.Encode()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// analyticsResponse is the analysis of a query.
type analyticsResponse struct {
	Resolution ledgerview.Resolution `json:"resolution"`
	Analysis   ledgerview.Analysis   `json:"analysis"`
}

// analytics handles GET /api/analytics?<query>. A range outside the bounds
// is clamped before fetching.
func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	state := ledgerview.ParseFilterState(r.URL.Query())
	now := s.now()
	if err := ledgerview.ValidateRange(ledgerview.ResolveDateRange(state, now).Range()); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if clamped, ok := ledgerview.ClampFiltersToRange(state, s.bounds, now); ok {
		log.Debug().Stringer("from", state).Stringer("to", clamped).Msg("clamped to bounds")
		state = clamped
	}

	snap, err := source.Fetch(r.Context(), s.src, state, source.Query{BusinessID: s.businessID, Limit: s.limit}, now)
	if err != nil {
		log.Error().Err(err).Msg("analytics fetch failed")
		writeError(w, r, statusOf(err), err)
		return
	}
	writeJSON(w, r, http.StatusOK, analyticsResponse{
		Resolution: snap.Resolution,
		Analysis:   snap.Analyze(s.analyze),
	})
}
