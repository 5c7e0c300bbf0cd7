package service

import "fruitstand-backend/internal/domain"

// Actor identifies the authenticated caller of a deletion operation.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

// Requester is an Actor with its place-level grants resolved.
type Requester struct {
	UserID      int64
	Role        domain.UserRole
	PlaceGrants map[int64]struct{}
}

// NewRequester builds a Requester from an actor and its granted place ids.
func NewRequester(actor Actor, placeIDs []int64) Requester {
	grants := make(map[int64]struct{}, len(placeIDs))
	for _, id := range placeIDs {
		grants[id] = struct{}{}
	}
	return Requester{UserID: actor.UserID, Role: actor.Role, PlaceGrants: grants}
}

// CanDeleteReport evaluates the deletion permission tiers in order, first
// match wins: administrators may delete anything, a place-level grant
// covers any report at that place, and a submitter may delete their own
// report. Everything else is denied.
func CanDeleteReport(req Requester, rep domain.ShiftReport) bool {
	if req.Role == domain.RoleAdmin {
		return true
	}
	if _, ok := req.PlaceGrants[rep.PlaceID]; ok {
		return true
	}
	return req.UserID == rep.UserID
}
