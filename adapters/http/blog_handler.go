package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	blogUC "github.com/trafylabs/academy-api/internal/application/usecase/blog"
	"github.com/trafylabs/academy-api/internal/domain/blog"
)

type BlogHandler struct {
	rssUseCase *blogUC.RSSUseCase
}

func NewBlogHandler(rssUC *blogUC.RSSUseCase) *BlogHandler {
	return &BlogHandler{rssUseCase: rssUC}
}

// ListBlogs returns the full catalog, newest first. The client uses the
// first entry as the landing-page banner.
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	c.JSON(http.StatusOK, blog.List())
}

func (h *BlogHandler) GetBlog(c *gin.Context) {

	post, err := blog.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get blog post failed"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) GetRSSFeed(c *gin.Context) {

	feed, err := h.rssUseCase.Execute(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generate RSS feed failed"})
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render RSS feed failed"})
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}
