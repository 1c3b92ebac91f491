package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trafylabs/academy-api/adapters/event"
	"github.com/trafylabs/academy-api/internal/application/service"
	profileUC "github.com/trafylabs/academy-api/internal/application/usecase/profile"
	"github.com/trafylabs/academy-api/internal/domain/identity"
	domainProfile "github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/internal/domain/user"
	"github.com/trafylabs/academy-api/internal/ui"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type ProfileHandler struct {
	users       user.Repository
	profileRepo domainProfile.Repository
	uploader    service.Uploader
	events      event.Publisher
	registry    *ui.Registry
	logger      logger.Logger
}

func NewProfileHandler(
	users user.Repository,
	profileRepo domainProfile.Repository,
	uploader service.Uploader,
	events event.Publisher,
	registry *ui.Registry,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		users:       users,
		profileRepo: profileRepo,
		uploader:    uploader,
		events:      events,
		registry:    registry,
		logger:      log,
	}
}

func (h *ProfileHandler) identityFor(c *gin.Context) (*identity.Identity, bool) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return nil, false
	}

	u, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return nil, false
	}

	ident := &identity.Identity{ID: u.ID, Email: u.Email}
	if u.FirstName != nil {
		ident.FirstName = *u.FirstName
	}
	return ident, true
}

// GetProfile loads the signed-in user's settings form: the stored record
// merged over identity defaults.
func (h *ProfileHandler) GetProfile(c *gin.Context) {

	ident, ok := h.identityFor(c)
	if !ok {
		return
	}

	uiSession := h.registry.Get(GetSessionID(c))
	reconciler := h.newReconciler(uiSession)
	defer reconciler.Close()

	reconciler.Load(c.Request.Context(), ident)

	c.JSON(http.StatusOK, gin.H{
		"state":   "ready",
		"profile": ToProfileDTO(reconciler.Form()),
	})
}

// UpdateProfile applies the submitted edits, uploading a newly picked
// picture before the record update. Outcomes surface as a transient notice;
// only an overlapping submit is an HTTP-level error.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {

	ident, ok := h.identityFor(c)
	if !ok {
		return
	}

	uiSession := h.registry.Get(GetSessionID(c))
	if !uiSession.BeginSubmit() {
		c.JSON(http.StatusConflict, gin.H{"error": "a save is already in progress"})
		return
	}
	defer uiSession.EndSubmit()

	reconciler := h.newReconciler(uiSession)
	defer reconciler.Close()

	reconciler.Load(c.Request.Context(), ident)
	reconciler.Edit(func(f *profileUC.Form) {
		if v, ok := c.GetPostForm("first_name"); ok {
			f.FirstName = v
		}
		if v, ok := c.GetPostForm("last_name"); ok {
			f.LastName = v
		}
		if v, ok := c.GetPostForm("phone"); ok {
			f.Phone = v
		}
		if v, ok := c.GetPostForm("country"); ok {
			f.Country = v
		}
	})

	if fileHeader, err := c.FormFile("profile_picture"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file cannot open"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file cannot be read"})
			return
		}
		reconciler.AttachImage(fileHeader.Filename, data)
	}

	if err := reconciler.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "a save is already in progress"})
		return
	}

	text, visible := uiSession.Notices.Current()
	c.JSON(http.StatusOK, gin.H{
		"state":   "ready",
		"profile": ToProfileDTO(reconciler.Form()),
		"notice":  gin.H{"text": text, "visible": visible},
	})
}

func (h *ProfileHandler) newReconciler(uiSession *ui.Session) *profileUC.Reconciler {
	return profileUC.NewReconciler(h.profileRepo, h.uploader, h.events, uiSession.Notices, h.logger)
}
