package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"link_tracker/clientip"
	"link_tracker/config"
	"link_tracker/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages for gin's HTML renderer.
func Templates() *template.Template {
	funcMap := template.FuncMap{
		"inc":       func(i int) int { return i + 1 },
		"shortTime": shortTime,
	}
	return template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

// shortTime renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM:SS".
func shortTime(ts string) string {
	if len(ts) > 19 {
		ts = ts[:19]
	}
	return strings.ReplaceAll(ts, "T", " ")
}

const unknownUserAgent = "Unknown"

type ClickHandler struct {
	clicks  *services.ClickService
	tracker config.TrackerConfig
	// publicURL replaces the request-derived root in the tracking link when set.
	publicURL string
}

func NewClickHandler(clicks *services.ClickService, cfg *config.Config) *ClickHandler {
	return &ClickHandler{
		clicks:    clicks,
		tracker:   cfg.Tracker,
		publicURL: cfg.Server.PublicURL,
	}
}

// Track records the visitor when first seen and always redirects to the target.
func (h *ClickHandler) Track(c *gin.Context) {
	ip := clientip.Resolve(c.Request.Header, c.Request.RemoteAddr)

	if _, err := h.clicks.RecordClick(ip, requestUserAgent(c.Request.Header)); err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.Redirect(http.StatusFound, h.clicks.TargetURL())
}

// requestUserAgent substitutes "Unknown" only when the header is absent; a
// present but empty User-Agent is recorded as sent.
func requestUserAgent(header http.Header) string {
	values := header.Values("User-Agent")
	if len(values) == 0 {
		return unknownUserAgent
	}
	return values[0]
}

func (h *ClickHandler) Stats(c *gin.Context) {
	clickLog := h.clicks.GetClicks()

	c.HTML(http.StatusOK, "stats.html", gin.H{
		"TotalUnique": clickLog.Len(),
		"Clicks":      clickLog.Clicks,
		"TrackingURL": h.trackingURL(c),
		"TargetURL":   h.clicks.TargetURL(),
		"DataFile":    h.tracker.DataFile,
		"CSVFile":     h.tracker.CSVFile,
	})
}

func (h *ClickHandler) APIStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.clicks.GetStats())
}

func (h *ClickHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"TrackingURL": h.trackingURL(c),
		"TargetURL":   h.clicks.TargetURL(),
	})
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

func (h *ClickHandler) trackingURL(c *gin.Context) string {
	if h.publicURL != "" {
		return strings.TrimRight(h.publicURL, "/") + "/track"
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/track"
}
