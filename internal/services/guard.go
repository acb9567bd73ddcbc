package services

import (
	"context"
	"errors"

	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
)

// AccessGuard confirms an acting user is a legitimate participant of a room
// before any read or write touches it. Every operation re-runs the check
// against current permission state; decisions are never cached.
type AccessGuard struct {
	Rooms repository.RoomRepository
	Perms repository.PermissionRepository
	Users repository.CompanyUserRepository
}

func NewAccessGuard(rooms repository.RoomRepository, perms repository.PermissionRepository, users repository.CompanyUserRepository) *AccessGuard {
	return &AccessGuard{Rooms: rooms, Perms: perms, Users: users}
}

// Participation is the confirmed membership handed back to callers.
type Participation struct {
	Room  *models.Room
	Actor models.Actor
	// GroupIDs holds the permitted group set for company actors.
	GroupIDs []uint
}

// PermittedGroupIDs resolves the effective set of company groups a company
// user may access. Zero permission rows means zero rooms (fail-closed, not an
// error). Any admin-level row expands to every group under the same company
// account, resolved through the user's own home group.
func (g *AccessGuard) PermittedGroupIDs(ctx context.Context, companyUserID uint) ([]uint, error) {
	perms, err := g.Perms.ListByCompanyUser(ctx, companyUserID)
	if err != nil {
		return nil, apperrors.Persistence("list group permissions", err)
	}
	if len(perms) == 0 {
		return []uint{}, nil
	}

	elevated := false
	ids := make([]uint, 0, len(perms))
	for _, p := range perms {
		if p.PermissionLevel == models.PermissionAdmin {
			elevated = true
		}
		ids = append(ids, p.CompanyGroupID)
	}
	if !elevated {
		return ids, nil
	}

	user, err := g.Users.FindCompanyUserByID(ctx, companyUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []uint{}, nil
		}
		return nil, apperrors.Persistence("find company user", err)
	}
	all, err := g.Perms.GroupIDsByAccount(ctx, user.CompanyGroup.CompanyAccountID)
	if err != nil {
		return nil, apperrors.Persistence("expand account groups", err)
	}
	return all, nil
}

// AssertParticipant authorizes the actor for the room. A missing room and a
// wrong owner both come back as ErrRoomAccess so callers cannot probe which
// rooms exist.
func (g *AccessGuard) AssertParticipant(ctx context.Context, roomID uint, actor models.Actor) (*Participation, error) {
	room, err := g.Rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRoomAccess
		}
		return nil, apperrors.Persistence("find room", err)
	}

	if actor.IsCandidate() {
		if room.CandidateID != actor.ID {
			return nil, apperrors.ErrRoomAccess
		}
		return &Participation{Room: room, Actor: actor}, nil
	}

	groupIDs, err := g.PermittedGroupIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range groupIDs {
		if id == room.CompanyGroupID {
			return &Participation{Room: room, Actor: actor, GroupIDs: groupIDs}, nil
		}
	}
	return nil, apperrors.ErrRoomAccess
}
