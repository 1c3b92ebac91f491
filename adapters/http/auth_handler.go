package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trafylabs/academy-api/adapters/idp"
	authUC "github.com/trafylabs/academy-api/internal/application/usecase/auth"
	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/session"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase   *authUC.LoginUseCase
	signOutUseCase *authUC.SignOutUseCase
	provider       *idp.Provider
	sessions       *session.Store
	logger         logger.Logger

	handoffCookieName string
	handoffTokenTTL   time.Duration

	// One bridge per visitor session; it runs the cookie handoff exactly
	// once per sign-in page lifetime and gates the interactive form.
	mu      sync.Mutex
	bridges map[string]*authUC.Bridge
}

func NewAuthHandler(
	loginUC *authUC.LoginUseCase,
	signOutUC *authUC.SignOutUseCase,
	provider *idp.Provider,
	sessions *session.Store,
	log logger.Logger,
	handoffCookieName string,
	handoffTokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:      loginUC,
		signOutUseCase:    signOutUC,
		provider:          provider,
		sessions:          sessions,
		logger:            log,
		handoffCookieName: handoffCookieName,
		handoffTokenTTL:   handoffTokenTTL,
		bridges:           make(map[string]*authUC.Bridge),
	}
}

func (h *AuthHandler) bridgeFor(sid string) *authUC.Bridge {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.bridges[sid]
	if !ok {
		b = authUC.NewBridge(h.provider, h.logger)
		h.bridges[sid] = b
	}
	return b
}

func (h *AuthHandler) dropBridge(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.bridges, sid)
}

// Bridge runs the one-shot cookie handoff for this visitor's sign-in page
// load. Called before the interactive form is enabled; repeat calls return
// the first outcome.
func (h *AuthHandler) Bridge(c *gin.Context) {

	token, _ := c.Cookie(h.handoffCookieName)
	result := h.bridgeFor(GetSessionID(c)).Run(c.Request.Context(), token)

	if result.Exchanged {
		// The token is one-time; drop the cookie and send the visitor
		// back where they came from.
		c.SetCookie(h.handoffCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"exchanged":   true,
			"redirect_to": c.DefaultQuery("from", "/"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exchanged": false, "login_live": true})
}

func (h *AuthHandler) Login(c *gin.Context) {

	if !h.bridgeFor(GetSessionID(c)).InteractiveLoginAllowed() {
		c.JSON(http.StatusConflict, gin.H{"error": "sign-in handoff has not settled; retry shortly"})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		User:        ToUserDTO(output.Identity),
	})
}

// FederatedLogin completes a provider popup sign-in. A popup the visitor
// closed is not an error: the response says cancelled and the client stays
// on the form without a notice.
func (h *AuthHandler) FederatedLogin(c *gin.Context) {

	var req FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	output, err := h.loginUseCase.ExecuteFederated(c.Request.Context(), authUC.FederatedLoginInput{
		Assertion: identity.FederatedAssertion{
			Provider: req.Provider,
			Subject:  req.Subject,
			Email:    req.Email,
		},
	})
	if err != nil {
		if errors.Is(err, identity.ErrPopupClosed) {
			c.JSON(http.StatusOK, gin.H{"cancelled": true})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		User:        ToUserDTO(output.Identity),
	})
}

// Handoff mints a one-time token for the signed-in user and plants it in
// the shared cookie, so a sibling site can adopt the session on its next
// sign-in page load.
func (h *AuthHandler) Handoff(c *gin.Context) {

	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	token, err := h.provider.IssueHandoffToken(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetCookie(h.handoffCookieName, token, int(h.handoffTokenTTL.Seconds()), "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Logout(c *gin.Context) {

	output := h.signOutUseCase.Execute(c.Request.Context())

	sid := GetSessionID(c)
	h.dropBridge(sid)
	c.SetCookie(h.handoffCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"redirect_to": output.RedirectTo})
}

// Session reports the reactive identity snapshot: loading until the
// provider has delivered its first state, then the user or logged-out.
func (h *AuthHandler) Session(c *gin.Context) {

	snap := h.sessions.Snapshot()
	if snap.Loading {
		c.JSON(http.StatusOK, gin.H{"loading": true})
		return
	}

	resp := gin.H{"loading": false, "logged_out": snap.LoggedOut()}
	if snap.Identity != nil {
		resp["user"] = ToUserDTO(snap.Identity)
	}
	c.JSON(http.StatusOK, resp)
}
