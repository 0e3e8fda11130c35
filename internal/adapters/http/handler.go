package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/ports"
)

// Forwarder relays a raw GET to the upstream setlist API.
type Forwarder interface {
	Forward(ctx context.Context, path, rawQuery string) ([]byte, error)
}

// Handler holds the HTTP handlers for the setlist API.
type Handler struct {
	service ports.SetlistService
	proxy   Forwarder
}

// NewHandler creates a new HTTP handler. proxy may be nil, in which case the
// pass-through route answers 503.
func NewHandler(service ports.SetlistService, proxy Forwarder) *Handler {
	return &Handler{service: service, proxy: proxy}
}

// RegisterRoutes sets up all API routes on the given Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/setlists", h.ListSetlists)
		api.GET("/setlists/search", h.SearchSetlists)
		api.GET("/shows/:id", h.GetShow)
		api.GET("/compare", h.CompareShows)
		api.GET("/tour", h.GetTour)
		api.GET("/tour/stats", h.GetTourStats)
		api.GET("/tour/legs", h.ListLegs)
		api.GET("/songs", h.ListSongs)
		api.GET("/cache", h.GetCacheInfo)
		api.DELETE("/cache", h.ClearCache)
	}

	r.Any("/api/setlistfm/*path", h.Proxy)
}

// Health returns a simple health check response.
//
//	@Summary		Health check
//	@Description	Returns the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ListSetlists returns one page of the artist's setlists.
//
//	@Summary		List setlists
//	@Description	Returns a page of the configured artist's setlists, newest first.
//	@Description	Pages are cached; refresh=true bypasses the cache read and rewrites the entry.
//	@Tags			setlists
//	@Produce		json
//	@Param			page	query		int		false	"Page number (1-based)"	default(1)
//	@Param			refresh	query		bool	false	"Bypass the cache"
//	@Success		200		{object}	domain.SetlistPage
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/api/v1/setlists [get]
func (h *Handler) ListSetlists(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	refresh, ok := boolQuery(c, "refresh")
	if !ok {
		return
	}

	resp, err := h.service.ArtistSetlists(c.Request.Context(), page, refresh)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchSetlists runs a filtered setlist search.
//
//	@Summary		Search setlists
//	@Description	Searches setlists by artist, date, location, venue or tour. At least one filter is required.
//	@Tags			setlists
//	@Produce		json
//	@Param			artistName	query		string	false	"Artist name"
//	@Param			artistMbid	query		string	false	"Artist MusicBrainz id"
//	@Param			year		query		int		false	"Year"
//	@Param			date		query		string	false	"Event date (dd-MM-yyyy)"
//	@Param			cityName	query		string	false	"City name"
//	@Param			countryCode	query		string	false	"Country code"
//	@Param			venueId		query		string	false	"Venue id"
//	@Param			tourName	query		string	false	"Tour name"
//	@Param			p			query		int		false	"Page number"
//	@Success		200			{object}	domain.SetlistPage
//	@Failure		400			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/api/v1/setlists/search [get]
func (h *Handler) SearchSetlists(c *gin.Context) {
	var q domain.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid search parameters: " + err.Error(),
		})
		return
	}
	if q.IsEmpty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "at least one search filter is required",
		})
		return
	}

	resp, err := h.service.SearchSetlists(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetShow returns a single normalized show.
//
//	@Summary		Get show
//	@Description	Returns the show with its counted songs numbered 1..N across sets.
//	@Description	Intro tapes and covers of other acts are left out.
//	@Tags			shows
//	@Produce		json
//	@Param			id	path		string	true	"Setlist id"
//	@Success		200	{object}	domain.Show
//	@Failure		404	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/api/v1/shows/{id} [get]
func (h *Handler) GetShow(c *gin.Context) {
	show, err := h.service.Show(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, show)
}

// CompareShows compares the setlists of two shows.
//
//	@Summary		Compare two shows
//	@Description	Tags every song of both shows as shared or unique and reports the similarity
//	@Description	relative to the first show's song count.
//	@Tags			shows
//	@Produce		json
//	@Param			show1	query		string	true	"First setlist id"
//	@Param			show2	query		string	true	"Second setlist id"
//	@Success		200		{object}	domain.Comparison
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/v1/compare [get]
func (h *Handler) CompareShows(c *gin.Context) {
	show1, show2 := c.Query("show1"), c.Query("show2")
	if show1 == "" || show2 == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "query parameters 'show1' and 'show2' are required",
		})
		return
	}

	cmp, err := h.service.CompareShows(c.Request.Context(), show1, show2)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

// GetTour returns the assembled tour.
//
//	@Summary		Get tour data
//	@Description	Returns tour metadata, legs and every show of the tour enriched with its leg, newest first.
//	@Tags			tour
//	@Produce		json
//	@Param			refresh	query		bool	false	"Bypass the cache"
//	@Success		200		{object}	domain.TourData
//	@Failure		404		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/api/v1/tour [get]
func (h *Handler) GetTour(c *gin.Context) {
	refresh, ok := boolQuery(c, "refresh")
	if !ok {
		return
	}

	data, err := h.service.TourData(c.Request.Context(), refresh)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetTourStats returns song statistics for the tour.
//
//	@Summary		Get tour statistics
//	@Description	Per-song play counts, categories (staple, rotation, rare, deep-cut), position ranges,
//	@Description	recently played and overdue songs. Pass leg to scope to one leg (0 = shows outside every leg).
//	@Tags			tour
//	@Produce		json
//	@Param			leg	query		int	false	"Leg id"
//	@Success		200	{object}	domain.TourStats
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/v1/tour/stats [get]
func (h *Handler) GetTourStats(c *gin.Context) {
	var legID *int
	if raw := c.Query("leg"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "bad_request",
				Message: "query parameter 'leg' must be an integer",
			})
			return
		}
		legID = &id
	}

	stats, err := h.service.TourStats(c.Request.Context(), legID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListLegs returns the tour legs.
//
//	@Summary		List tour legs
//	@Tags			tour
//	@Produce		json
//	@Success		200	{array}	domain.Leg
//	@Router			/api/v1/tour/legs [get]
func (h *Handler) ListLegs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Legs())
}

// ListSongs returns the song catalog grouped by album.
//
//	@Summary		List songs by album
//	@Tags			songs
//	@Produce		json
//	@Success		200	{array}	domain.Album
//	@Router			/api/v1/songs [get]
func (h *Handler) ListSongs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Albums())
}

// GetCacheInfo reports the cached payloads.
//
//	@Summary		Cache info
//	@Tags			cache
//	@Produce		json
//	@Success		200	{array}	domain.CacheInfo
//	@Router			/api/v1/cache [get]
func (h *Handler) GetCacheInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CacheInfo(c.Request.Context()))
}

// ClearCache drops every cached payload.
//
//	@Summary		Clear cache
//	@Tags			cache
//	@Success		204
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/cache [delete]
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Proxy forwards a GET to the setlist.fm API with the server's API key.
//
//	@Summary		setlist.fm pass-through
//	@Description	Forwards the path and query string to the setlist.fm REST API and returns its JSON.
//	@Tags			proxy
//	@Produce		json
//	@Param			path	path		string	true	"setlist.fm API path, e.g. setlist/63a4b2d3"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		405		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/setlistfm/{path} [get]
func (h *Handler) Proxy(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	if c.Request.Method != http.MethodGet {
		c.Header("Allow", http.MethodGet)
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "Method not allowed",
			Message: "only GET is supported",
		})
		return
	}
	if h.proxy == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "proxy_unavailable",
			Message: "the setlist.fm pass-through is not configured",
		})
		return
	}

	body, err := h.proxy.Forward(c.Request.Context(), c.Param("path"), c.Request.URL.RawQuery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch from Setlist.fm",
			Message: err.Error(),
		})
		return
	}

	c.Header("Cache-Control", "s-maxage=3600")
	c.Data(http.StatusOK, "application/json", body)
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps service errors onto status codes.
func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNoSetlists):
		status, code = http.StatusNotFound, "no_setlists"
	case errors.Is(err, domain.ErrUpstream):
		status, code = http.StatusBadGateway, "upstream_error"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "timeout"
	}
	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

func intQuery(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "query parameter '" + key + "' must be a positive integer",
		})
		return 0, false
	}
	return n, true
}

func boolQuery(c *gin.Context, key string) (bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "query parameter '" + key + "' must be a boolean",
		})
		return false, false
	}
	return b, true
}
