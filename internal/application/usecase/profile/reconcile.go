package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/adapters/event"
	"github.com/trafylabs/academy-api/internal/application/service"
	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/internal/ui/notice"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateSaving
)

// ErrSaveInFlight rejects a save while another one has not settled; the
// submit control stays disabled for the duration.
var ErrSaveInFlight = errors.New("profile save already in flight")

// Form is the editable draft of the profile record. Email is read-only and
// always mirrors the identity's authentication email.
type Form struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Country       string
	ProfilePicURL string
}

// Reconciler drives the account-settings surface: it loads the remote
// record into an editable draft, previews a picked image locally, and on
// save uploads the image strictly before the partial record update.
type Reconciler struct {
	repo     profile.Repository
	uploader service.Uploader
	events   event.Publisher
	notices  *notice.Controller
	logger   logger.Logger

	mu      sync.Mutex
	state   State
	uid     uuid.UUID
	form    Form
	pending *PendingImage
	closed  bool
}

func NewReconciler(
	repo profile.Repository,
	uploader service.Uploader,
	events event.Publisher,
	notices *notice.Controller,
	log logger.Logger,
) *Reconciler {
	return &Reconciler{
		repo:     repo,
		uploader: uploader,
		events:   events,
		notices:  notices,
		logger:   log,
		state:    StateLoading,
	}
}

// Load fetches the remote record for the signed-in identity and merges
// defaults. A fetch failure is logged and leaves the defaults; the surface
// always reaches Ready.
func (r *Reconciler) Load(ctx context.Context, ident *identity.Identity) {
	r.mu.Lock()
	r.state = StateLoading
	r.uid = ident.ID
	r.mu.Unlock()

	form := Form{
		Email:     ident.Email,
		FirstName: ident.DisplayName(),
	}

	rec, err := r.repo.Get(ctx, ident.ID)
	switch {
	case err == nil:
		form = Form{
			FirstName:     rec.DisplayFirstName(),
			LastName:      rec.LastName,
			Email:         ident.Email,
			Phone:         rec.Phone,
			Country:       rec.Country,
			ProfilePicURL: rec.ProfilePicURL,
		}
	case errors.Is(err, profile.ErrRecordNotFound):
		// First visit before any record exists; defaults stand.
	default:
		r.logger.Error("Error fetching profile record", err, zap.String("user_id", ident.ID.String()))
	}

	r.mu.Lock()
	r.form = form
	r.state = StateReady
	r.mu.Unlock()
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reconciler) Form() Form {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// Edit applies fn to the draft. The email field cannot be edited; whatever
// fn writes there is discarded.
func (r *Reconciler) Edit(fn func(*Form)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := r.form.Email
	fn(&r.form)
	r.form.Email = email
}

// AttachImage stages a newly picked file and returns its local preview.
// A previous preview is released before being superseded.
func (r *Reconciler) AttachImage(name string, data []byte) *PreviewHandle {
	img := NewPendingImage(name, data)

	r.mu.Lock()
	old := r.pending
	r.pending = img
	r.form.ProfilePicURL = img.Preview().URL()
	r.mu.Unlock()

	if old != nil {
		old.Preview().Release()
	}
	return img.Preview()
}

// Save uploads the pending image (when there is one) and then issues the
// partial update. The remote record is never written before the upload has
// resolved to a final URL.
func (r *Reconciler) Save(ctx context.Context) error {
	r.mu.Lock()
	if r.state != StateReady {
		r.mu.Unlock()
		return ErrSaveInFlight
	}
	r.state = StateSaving
	form := r.form
	pending := r.pending
	uid := r.uid
	r.mu.Unlock()

	picURL := form.ProfilePicURL
	if pending != nil {
		url, err := r.uploader.Upload(ctx, pending.Preview().reader(),
			"profilePictures/"+uid.String(), pending.Name)
		r.discardPending(pending)
		if err != nil {
			r.logger.Error("Error uploading profile picture", err, zap.String("user_id", uid.String()))
			r.settle("Error uploading profile picture")
			return nil
		}
		picURL = url
	}

	patch := profile.Patch{
		FirstName:     &form.FirstName,
		LastName:      &form.LastName,
		Email:         &form.Email,
		Phone:         &form.Phone,
		Country:       &form.Country,
		ProfilePicURL: &picURL,
	}

	if err := r.repo.Update(ctx, uid, patch); err != nil {
		r.logger.Error("Error updating profile", err, zap.String("user_id", uid.String()))
		r.settle("Error updating profile")
		return nil
	}

	r.mu.Lock()
	r.form.ProfilePicURL = picURL
	r.mu.Unlock()
	r.settle("Profile updated successfully")

	if r.events != nil {
		go func() {
			payload := event.ProfileEventPayload{
				EventType:     event.ProfileEventTypeUpdated,
				UID:           uid,
				ProfilePicURL: picURL,
			}
			if err := r.events.PublishProfileEvent(context.Background(), payload); err != nil {
				r.logger.Error("Failed to publish 'profile.updated' event", err, zap.String("user_id", uid.String()))
			}
		}()
	}
	return nil
}

// Close releases the pending preview when the surface goes away. A save
// still in flight completes against the detached state without effect on
// the notice surface.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if pending != nil {
		pending.Preview().Release()
	}
}

// discardPending drops the staged image once its upload has resolved,
// success or failure.
func (r *Reconciler) discardPending(p *PendingImage) {
	r.mu.Lock()
	if r.pending == p {
		r.pending = nil
	}
	r.mu.Unlock()
	p.Preview().Release()
}

// settle returns the machine to Ready and raises the outcome notice,
// unless the surface has been closed in the meantime.
func (r *Reconciler) settle(text string) {
	r.mu.Lock()
	r.state = StateReady
	closed := r.closed
	r.mu.Unlock()

	if !closed && text != "" {
		r.notices.Show(text, notice.ProfileDuration)
	}
}
