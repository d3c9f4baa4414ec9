// Package interactions implements the optimistic toggle engine behind
// likes, saves, and favorites: state flips locally first, the remote
// call settles it afterwards, and failures restore the exact pre-toggle
// snapshot.
package interactions

// Entity is the local view of one toggleable thing. ParticipantIDs and
// Count travel together: the count is denormalized because the server
// may report one without the other.
type Entity struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Toggled        bool     `json:"toggled"`
	ParticipantIDs []string `json:"participant_ids"`
	Count          int      `json:"count"`
}

// clone returns an independent deep copy, used both for snapshots and
// for handing state to callers without exposing internal slices.
func (e *Entity) clone() Entity {
	out := *e
	out.ParticipantIDs = append([]string(nil), e.ParticipantIDs...)
	return out
}

// hasParticipant reports whether a user id is in the participant list.
func (e *Entity) hasParticipant(userID string) bool {
	for _, id := range e.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// addParticipant appends a user id if absent.
func (e *Entity) addParticipant(userID string) {
	if !e.hasParticipant(userID) {
		e.ParticipantIDs = append(e.ParticipantIDs, userID)
	}
}

// removeParticipant drops a user id if present, preserving order.
func (e *Entity) removeParticipant(userID string) {
	for i, id := range e.ParticipantIDs {
		if id == userID {
			e.ParticipantIDs = append(e.ParticipantIDs[:i], e.ParticipantIDs[i+1:]...)
			return
		}
	}
}

// ToggleResponse is the canonical server settlement payload. Every field
// is optional: a nil field means the server did not speak to it and the
// optimistic value stands.
type ToggleResponse struct {
	Flag           *bool    `json:"flag,omitempty"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
	Count          *int     `json:"count,omitempty"`
}

// reconcile merges the server-authoritative fields of resp into e,
// keeping the optimistic value for any field the server omitted.
func (e *Entity) reconcile(resp *ToggleResponse) {
	if resp == nil {
		return
	}
	if resp.Flag != nil {
		e.Toggled = *resp.Flag
	}
	if resp.ParticipantIDs != nil {
		e.ParticipantIDs = append([]string(nil), resp.ParticipantIDs...)
	}
	if resp.Count != nil {
		e.Count = *resp.Count
	} else if resp.ParticipantIDs != nil {
		e.Count = len(resp.ParticipantIDs)
	}
}
