package profile

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/internal/ui/notice"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type fakeRepo struct {
	records map[uuid.UUID]*profile.Record
	getErr  error
	updErr  error
	updates []profile.Patch
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*profile.Record)}
}

func (r *fakeRepo) Get(_ context.Context, uid uuid.UUID) (*profile.Record, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	rec, ok := r.records[uid]
	if !ok {
		return nil, profile.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRepo) Set(_ context.Context, rec *profile.Record) error {
	r.records[rec.UID] = rec
	return nil
}

func (r *fakeRepo) Update(_ context.Context, uid uuid.UUID, patch profile.Patch) error {
	if r.updErr != nil {
		return r.updErr
	}
	r.updates = append(r.updates, patch)
	return nil
}

type fakeUploader struct {
	calls   int
	folders []string
	err     error
	url     string
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	u.calls++
	u.folders = append(u.folders, folder+"/"+publicID)
	io.Copy(io.Discard, file)
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func (u *fakeUploader) Delete(context.Context, string) error { return nil }

func newTestReconciler(repo *fakeRepo, up *fakeUploader) (*Reconciler, *notice.Controller) {
	notices := notice.NewController()
	return NewReconciler(repo, up, nil, notices, logger.NewNop()), notices
}

func TestLoad_NoRecordUsesIdentityDefaults(t *testing.T) {
	r, _ := newTestReconciler(newFakeRepo(), &fakeUploader{})

	ident := &identity.Identity{ID: uuid.New(), Email: "jane.doe@example.com"}
	r.Load(context.Background(), ident)

	assert.Equal(t, StateReady, r.State())
	form := r.Form()
	assert.Equal(t, "jane.doe", form.FirstName)
	assert.Equal(t, "jane.doe@example.com", form.Email)
}

func TestLoad_FetchFailureStillReachesReady(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	r, _ := newTestReconciler(repo, &fakeUploader{})

	ident := &identity.Identity{ID: uuid.New(), Email: "jane@example.com", FirstName: "Jane"}
	r.Load(context.Background(), ident)

	assert.Equal(t, StateReady, r.State())
	assert.Equal(t, "Jane", r.Form().FirstName)
}

func TestLoad_MergesStoredRecord(t *testing.T) {
	repo := newFakeRepo()
	uid := uuid.New()
	repo.records[uid] = &profile.Record{
		UID:       uid,
		FirstName: "Janet",
		LastName:  "Doe",
		Phone:     "5551234567",
		Country:   "India",
	}
	r, _ := newTestReconciler(repo, &fakeUploader{})

	r.Load(context.Background(), &identity.Identity{ID: uid, Email: "jane@example.com"})

	form := r.Form()
	assert.Equal(t, "Janet", form.FirstName)
	assert.Equal(t, "Doe", form.LastName)
	assert.Equal(t, "jane@example.com", form.Email)
	assert.Equal(t, "India", form.Country)
}

func TestEdit_EmailIsImmutable(t *testing.T) {
	r, _ := newTestReconciler(newFakeRepo(), &fakeUploader{})
	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})

	r.Edit(func(f *Form) {
		f.FirstName = "Janet"
		f.Email = "attacker@example.com"
	})

	form := r.Form()
	assert.Equal(t, "Janet", form.FirstName)
	assert.Equal(t, "jane@example.com", form.Email)
}

func TestSave_UploadsBeforeUpdate(t *testing.T) {
	repo := newFakeRepo()
	up := &fakeUploader{url: "https://cdn.example.com/pic.png"}
	r, notices := newTestReconciler(repo, up)

	uid := uuid.New()
	r.Load(context.Background(), &identity.Identity{ID: uid, Email: "jane@example.com"})
	r.AttachImage("pic.png", []byte("image-bytes"))

	assert.NoError(t, r.Save(context.Background()))

	assert.Equal(t, 1, up.calls)
	assert.Equal(t, []string{"profilePictures/" + uid.String() + "/pic.png"}, up.folders)
	if assert.Len(t, repo.updates, 1) {
		assert.Equal(t, "https://cdn.example.com/pic.png", *repo.updates[0].ProfilePicURL)
	}
	assert.Equal(t, "https://cdn.example.com/pic.png", r.Form().ProfilePicURL)

	text, visible := notices.Current()
	assert.True(t, visible)
	assert.Equal(t, "Profile updated successfully", text)
}

func TestSave_UploadFailureWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	up := &fakeUploader{err: errors.New("storage unavailable")}
	r, notices := newTestReconciler(repo, up)

	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})
	r.AttachImage("pic.png", []byte("image-bytes"))

	assert.NoError(t, r.Save(context.Background()))

	// The record update must not run after a failed upload.
	assert.Empty(t, repo.updates)
	assert.Equal(t, StateReady, r.State())

	text, visible := notices.Current()
	assert.True(t, visible)
	assert.Equal(t, "Error uploading profile picture", text)
}

func TestSave_UpdateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.updErr = errors.New("write denied")
	r, notices := newTestReconciler(repo, &fakeUploader{})

	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})

	assert.NoError(t, r.Save(context.Background()))
	assert.Equal(t, StateReady, r.State())

	text, visible := notices.Current()
	assert.True(t, visible)
	assert.Equal(t, "Error updating profile", text)
}

func TestSave_WithoutImageSkipsUploader(t *testing.T) {
	repo := newFakeRepo()
	up := &fakeUploader{}
	r, _ := newTestReconciler(repo, up)

	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})
	assert.NoError(t, r.Save(context.Background()))

	assert.Zero(t, up.calls)
	assert.Len(t, repo.updates, 1)
}

func TestSave_RejectsWhileSaving(t *testing.T) {
	r, _ := newTestReconciler(newFakeRepo(), &fakeUploader{})

	// Still Loading until Load settles; a save cannot start.
	assert.ErrorIs(t, r.Save(context.Background()), ErrSaveInFlight)
}

func TestAttachImage_SupersedesPreviousPreview(t *testing.T) {
	r, _ := newTestReconciler(newFakeRepo(), &fakeUploader{})
	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})

	first := r.AttachImage("first.png", []byte("one"))
	second := r.AttachImage("second.png", []byte("two"))

	assert.True(t, first.Released())
	assert.False(t, second.Released())
	assert.Equal(t, second.URL(), r.Form().ProfilePicURL)
}

func TestClose_ReleasesPendingAndSilencesNotices(t *testing.T) {
	repo := newFakeRepo()
	repo.updErr = errors.New("write denied")
	r, notices := newTestReconciler(repo, &fakeUploader{})

	r.Load(context.Background(), &identity.Identity{ID: uuid.New(), Email: "jane@example.com"})
	preview := r.AttachImage("pic.png", []byte("image-bytes"))

	r.Close()
	assert.True(t, preview.Released())

	// A save settling after close must not raise a notice.
	r.settle("Error updating profile")
	_, visible := notices.Current()
	assert.False(t, visible)
}

func TestPreviewHandleReleaseIsIdempotent(t *testing.T) {
	img := NewPendingImage("pic.png", []byte("bytes"))
	h := img.Preview()

	assert.True(t, strings.HasPrefix(h.URL(), "mem://preview/"))
	h.Release()
	h.Release()
	assert.True(t, h.Released())
}
