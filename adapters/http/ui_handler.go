package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trafylabs/academy-api/internal/ui"
)

// UIHandler exposes the per-visitor navigation and notice state. Every
// mutation returns the settled state so the client renders from one source
// of truth instead of mirroring transitions locally.
type UIHandler struct {
	registry *ui.Registry
}

func NewUIHandler(registry *ui.Registry) *UIHandler {
	return &UIHandler{registry: registry}
}

func (h *UIHandler) session(c *gin.Context) *ui.Session {
	return h.registry.Get(GetSessionID(c))
}

func (h *UIHandler) state(s *ui.Session) gin.H {
	text, visible := s.Notices.Current()
	return gin.H{
		"overlay":       s.Nav.Overlay().String(),
		"scroll_locked": s.Nav.ScrollLocked(),
		"notice":        gin.H{"text": text, "visible": visible},
	}
}

func (h *UIHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.state(h.session(c)))
}

func (h *UIHandler) ToggleMenu(c *gin.Context) {
	s := h.session(c)
	s.Nav.ToggleMenu()
	c.JSON(http.StatusOK, h.state(s))
}

func (h *UIHandler) ToggleDropdown(c *gin.Context) {
	s := h.session(c)
	s.Nav.ToggleDropdown()
	c.JSON(http.StatusOK, h.state(s))
}

func (h *UIHandler) OutsideClick(c *gin.Context) {
	s := h.session(c)
	s.Nav.OutsideClick()
	c.JSON(http.StatusOK, h.state(s))
}

func (h *UIHandler) Navigate(c *gin.Context) {

	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	s := h.session(c)
	s.Nav.Navigate(req.Route)
	c.JSON(http.StatusOK, h.state(s))
}

func (h *UIHandler) RouteChanged(c *gin.Context) {
	s := h.session(c)
	s.Nav.RouteChanged()
	c.JSON(http.StatusOK, h.state(s))
}

func (h *UIHandler) DismissNotice(c *gin.Context) {
	s := h.session(c)
	s.Notices.Hide()
	c.JSON(http.StatusOK, h.state(s))
}
