package handlers

import (
	"context"
	"net/http"
	"time"

	"securecheck-api/catalog"
	"securecheck-api/metrics"
	"securecheck-api/models"
	"securecheck-api/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const NoResultsMessage = "No results found for the selected query."

type ReportsHandler struct {
	catalog *catalog.Catalog
	ledger  Ledger
	cache   *services.CacheService
	ttl     time.Duration
}

func NewReportsHandler(cat *catalog.Catalog, ledger Ledger, cache *services.CacheService, ttl time.Duration) *ReportsHandler {
	return &ReportsHandler{catalog: cat, ledger: ledger, cache: cache, ttl: ttl}
}

type ReportResponse struct {
	Report  string           `json:"report"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Page    PageInfo         `json:"page"`
	Cached  bool             `json:"cached"`
	Message string           `json:"message,omitempty"`
}

func (h *ReportsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Names()})
}

func (h *ReportsHandler) Run(c *gin.Context) {
	name := c.Query("name")
	p := ParsePagination(c)

	tbl, cached, err := h.run(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	page := tbl.Page(p.Offset, p.Limit)
	resp := ReportResponse{
		Report:  name,
		Columns: page.Columns,
		Rows:    page.Rows,
		Page:    p.Info(tbl.Len(), len(page.Rows)),
		Cached:  cached,
	}
	if tbl.Len() == 0 {
		resp.Message = NoResultsMessage
	}
	c.JSON(http.StatusOK, resp)
}

// run executes name, serving from the cache when a fresh copy exists.
// Failures are never cached.
func (h *ReportsHandler) run(ctx context.Context, name string) (*models.Table, bool, error) {
	query, err := h.catalog.Template(name)
	if err != nil {
		return nil, false, err
	}

	key := services.ReportKey(h.catalog.Dialect(), name, query)
	var cached models.Table
	found, err := h.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("report", name).Msg("report cache read failed")
	}
	if found && cached.Columns != nil {
		if cached.Rows == nil {
			cached.Rows = []map[string]any{}
		}
		metrics.ReportRuns.WithLabelValues("cached").Inc()
		return &cached, true, nil
	}

	tbl, err := h.catalog.Execute(ctx, name, h.ledger)
	if err != nil {
		metrics.ReportRuns.WithLabelValues("failed").Inc()
		return nil, false, err
	}
	if tbl.Len() == 0 {
		metrics.ReportRuns.WithLabelValues("empty").Inc()
	} else {
		metrics.ReportRuns.WithLabelValues("ok").Inc()
	}

	go func() {
		if err := h.cache.Set(context.Background(), key, tbl, h.ttl); err != nil {
			log.Warn().Err(err).Str("report", name).Msg("report cache write failed")
		}
	}()
	return tbl, false, nil
}
