package server

import (
	"net/http"
	"strconv"

	"go-upwork-watcher/internal/scraper"

	"github.com/gin-gonic/gin"
)

// JobReader is the read side of the seen-jobs store
type JobReader interface {
	Load() []scraper.Job
	Path() string
}

func NewRouter(store JobReader) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Upwork job watcher is running!",
			"status":  "healthy",
		})
	})

	r.GET("/jobs", func(c *gin.Context) {
		jobs := store.Load()
		total := len(jobs)

		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			if limit < len(jobs) {
				jobs = jobs[:limit]
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"store": store.Path(),
			"total": total,
			"jobs":  jobs,
		})
	})

	return r
}
