package scene

// State is the serializable form of a Scene at a point in time. Layers are
// plain value types, so a State is a full deep copy of the scene's layer
// stack and can be stored, compared, and restored verbatim.
//
// Selection is deliberately not part of State: pure selection changes are not
// undoable and do not belong in history entries or session records.
type State struct {
	PreviewWidth  int     `json:"previewWidth"`
	PreviewHeight int     `json:"previewHeight"`
	Layers        []Layer `json:"layers"`
}

// Snapshot captures the scene as an immutable State.
func (s *Scene) Snapshot() State {
	layers := make([]Layer, len(s.layers))
	copy(layers, s.layers)
	return State{
		PreviewWidth:  s.previewWidth,
		PreviewHeight: s.previewHeight,
		Layers:        layers,
	}
}

// Restore fully replaces the scene's contents (layers, order, background,
// preview dimensions) with the given state. This is a replacement, not a
// patch. The selection is kept when the selected layer still exists in the
// restored state and cleared otherwise.
func (s *Scene) Restore(st State) {
	s.layers = make([]Layer, len(st.Layers))
	copy(s.layers, st.Layers)
	s.previewWidth = st.PreviewWidth
	s.previewHeight = st.PreviewHeight

	if s.activeID != "" && s.indexOf(s.activeID) < 0 {
		s.activeID = ""
	}
}

// SourceIDs returns the set of source IDs the state references.
func (st State) SourceIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(st.Layers))
	for i := range st.Layers {
		ids[st.Layers[i].SourceID] = struct{}{}
	}
	return ids
}

// Equal reports whether two states describe the same scene: same preview
// dimensions and the same layers in the same order with identical fields.
func (st State) Equal(other State) bool {
	if st.PreviewWidth != other.PreviewWidth || st.PreviewHeight != other.PreviewHeight {
		return false
	}
	if len(st.Layers) != len(other.Layers) {
		return false
	}
	for i := range st.Layers {
		if st.Layers[i] != other.Layers[i] {
			return false
		}
	}
	return true
}
