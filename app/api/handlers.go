package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronkov/newsbrief/app/database"
	"github.com/avoronkov/newsbrief/app/ingest"
)

const defaultArticleLimit = 50

func NewHandler(db *database.DB, sourceRepo database.SourceRepository,
	articleRepo database.ArticleRepository, runner IngestionRunner,
	validator LinkValidatorInterface) *Handler {
	return &Handler{
		db:          db,
		sourceRepo:  sourceRepo,
		articleRepo: articleRepo,
		runner:      runner,
		validator:   validator,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		health["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	health["database"] = "ok"

	if count, err := h.articleRepo.GetArticleCount(c.Request.Context()); err == nil {
		health["articles"] = count
	}
	if total, active, err := h.sourceRepo.GetSourceCount(c.Request.Context()); err == nil {
		health["sources"] = total
		health["active_sources"] = active
	}

	c.JSON(http.StatusOK, health)
}

// RunIngestion triggers one ingestion pass and returns its report. The
// caller always gets either a full report or a top-level error, never a
// silent no-op.
func (h *Handler) RunIngestion(c *gin.Context) {
	report, err := h.runner.Run(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrNoActiveSources):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ingest.ErrRunInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.Error("Ingestion run failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Ingestion failed",
				"message": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"totalIngested": report.TotalIngested,
		"totalSkipped":  report.TotalSkipped,
		"sources":       report.Sources,
	})
}

func (h *Handler) GetArticles(c *gin.Context) {
	category := c.Query("category")

	limit := defaultArticleLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	articles, err := h.articleRepo.GetArticles(c.Request.Context(), category, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	articles = ingest.DedupByImageURL(articles)

	c.JSON(http.StatusOK, gin.H{
		"articles": articleViews(articles),
		"total":    len(articles),
	})
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.articleRepo.GetArticle(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_article", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, articleView(*article))
}

func (h *Handler) GetSources(c *gin.Context) {
	total, active, err := h.sourceRepo.GetSourceCount(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_source_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	rows, err := h.sourceRepo.GetAllSources(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "get_sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	sources := make([]gin.H, 0, len(rows))
	for _, source := range rows {
		sources = append(sources, gin.H{
			"id":        source.ID,
			"name":      source.Name,
			"type":      string(source.Type),
			"endpoint":  source.Endpoint,
			"is_active": source.IsActive,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"totalSources":  total,
		"activeSources": active,
		"sources":       sources,
	})
}

func (h *Handler) ValidateLinks(c *gin.Context) {
	report, err := h.validator.Run(c.Request.Context())
	if err != nil {
		slog.Error("Link validation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Validation failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"totalChecked": report.TotalChecked,
		"validCount":   report.ValidCount,
		"invalidCount": report.InvalidCount,
		"invalidUrls":  report.InvalidURLs,
	})
}

func articleView(article database.Article) gin.H {
	return gin.H{
		"id":           article.ID,
		"title":        article.Title,
		"summary":      article.Summary,
		"category":     article.Category,
		"source":       article.Source,
		"url":          article.URL,
		"image_url":    article.ImageURL,
		"published_at": article.PublishedAt.Format(time.RFC3339),
		"created_at":   article.CreatedAt.Format(time.RFC3339),
	}
}

func articleViews(articles []database.Article) []gin.H {
	views := make([]gin.H, 0, len(articles))
	for _, article := range articles {
		views = append(views, articleView(article))
	}
	return views
}
