package model

// Actor is the resolved identity attempting an exercise: an authenticated
// user or a cookie-backed anonymous guest. Resolution happens outside the
// core; the engine only reads it. When both ids are present the user id is
// authoritative.
type Actor struct {
	UserID  *string
	GuestID *string
}

// IsZero reports whether no identity could be resolved at all.
func (a Actor) IsZero() bool {
	return (a.UserID == nil || *a.UserID == "") && (a.GuestID == nil || *a.GuestID == "")
}

// Key returns the stable string form used as the seed scope under the
// per-actor seed policy.
func (a Actor) Key() string {
	if a.UserID != nil && *a.UserID != "" {
		return "user:" + *a.UserID
	}
	if a.GuestID != nil && *a.GuestID != "" {
		return "guest:" + *a.GuestID
	}
	return ""
}

// Matches reports whether the actor embedded in a capability key belongs to
// the same identity as the request actor. A user id wins over a guest id on
// both sides, so a key minted for a guest stops working once that browser
// authenticates as someone else.
func (a Actor) Matches(userID, guestID *string) bool {
	other := Actor{UserID: userID, GuestID: guestID}
	if a.IsZero() || other.IsZero() {
		return false
	}
	return a.Key() == other.Key()
}
