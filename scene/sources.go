package scene

import (
	"image"

	"github.com/google/uuid"
)

// Sources owns the decoded pixel data that layers reference by ID. Keeping
// pixels out of the Layer values makes scene snapshots cheap while the
// background master keeps its full natural resolution for export.
type Sources struct {
	images map[string]*image.NRGBA
}

// NewSources returns an empty source set.
func NewSources() *Sources {
	return &Sources{images: make(map[string]*image.NRGBA)}
}

// Add stores a decoded image under a fresh ID and returns the ID.
func (s *Sources) Add(img *image.NRGBA) string {
	id := uuid.NewString()
	s.images[id] = img
	return id
}

// Put stores a decoded image under the given ID, replacing any previous
// image with that ID.
func (s *Sources) Put(id string, img *image.NRGBA) {
	s.images[id] = img
}

// Get returns the image for the given ID, or nil.
func (s *Sources) Get(id string) *image.NRGBA {
	return s.images[id]
}

// Remove drops the image with the given ID.
func (s *Sources) Remove(id string) {
	delete(s.images, id)
}

// Retain drops every image whose ID is not in keep. Called after history
// restores and session loads to release pixels no reachable layer uses.
func (s *Sources) Retain(keep map[string]struct{}) {
	for id := range s.images {
		if _, ok := keep[id]; !ok {
			delete(s.images, id)
		}
	}
}

// Len returns the number of stored images.
func (s *Sources) Len() int {
	return len(s.images)
}

// Clear drops all stored images.
func (s *Sources) Clear() {
	s.images = make(map[string]*image.NRGBA)
}
