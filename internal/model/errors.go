package model

import "errors"

var (
	// ErrInvalidKey covers every capability key failure: malformed token,
	// bad signature, expired, or missing instance binding. Callers fail
	// closed on it without needing to distinguish the cause.
	ErrInvalidKey = errors.New("invalid capability key")
	// ErrActorMismatch is returned when a valid key is presented by a
	// different actor than the one it was minted for. Treated as a
	// security rejection, never retried.
	ErrActorMismatch = errors.New("capability key does not belong to this actor")
	// ErrUnknownTopic indicates the requested topic has no pool in the
	// catalog. Generation rejects instead of substituting another topic.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrUnknownHandler indicates a forced generator key that the topic
	// does not offer.
	ErrUnknownHandler = errors.New("unknown exercise handler")
	// ErrUnknownKind indicates an exercise kind with no registered checker.
	ErrUnknownKind = errors.New("unknown exercise kind")
	// ErrAttemptsExhausted rejects further non-reveal submissions once the
	// attempt policy's maximum is reached. Reveal may still be permitted.
	ErrAttemptsExhausted = errors.New("maximum attempts reached")
	// ErrRevealNotAllowed rejects a reveal request that the policy gates off.
	ErrRevealNotAllowed = errors.New("reveal is not allowed for this exercise")
	// ErrInstanceNotFound indicates the instance referenced by a key no
	// longer exists.
	ErrInstanceNotFound = errors.New("exercise instance not found")
	// ErrSessionNotFound indicates an unknown practice session id.
	ErrSessionNotFound = errors.New("practice session not found")
)
