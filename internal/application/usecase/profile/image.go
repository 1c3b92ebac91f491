package profile

import (
	"bytes"
	"io"
	"sync"

	"github.com/google/uuid"
)

// PreviewHandle is a local, revocable reference to an image the user picked
// but has not uploaded yet. Release frees the backing buffer; it must be
// called whenever the preview is superseded or the surface goes away.
type PreviewHandle struct {
	url string

	mu       sync.Mutex
	data     []byte
	released bool
}

func (h *PreviewHandle) URL() string {
	return h.url
}

// Released reports whether the handle has been freed.
func (h *PreviewHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Release is idempotent.
func (h *PreviewHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data = nil
	h.released = true
}

func (h *PreviewHandle) reader() io.Reader {
	h.mu.Lock()
	defer h.mu.Unlock()
	return bytes.NewReader(h.data)
}

// PendingImage pairs the picked file with its local preview. It lives from
// selection until the upload resolves, success or failure.
type PendingImage struct {
	Name    string
	preview *PreviewHandle
}

func NewPendingImage(name string, data []byte) *PendingImage {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &PendingImage{
		Name: name,
		preview: &PreviewHandle{
			url:  "mem://preview/" + uuid.NewString(),
			data: buf,
		},
	}
}

func (p *PendingImage) Preview() *PreviewHandle {
	return p.preview
}
