package services

import (
	"context"
	"log"

	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
)

// CreateRoomInput carries the payload for opening a new conversation.
type CreateRoomInput struct {
	CandidateID         uint
	CompanyGroupID      uint
	RelatedJobPostingID *uint
	Type                string
}

// RoomService handles room lifecycle: create (with compensation), detail,
// update and cascading delete.
type RoomService struct {
	Rooms        repository.RoomRepository
	Participants repository.ParticipantRepository
	Guard        *AccessGuard
}

func NewRoomService(rooms repository.RoomRepository, participants repository.ParticipantRepository, guard *AccessGuard) *RoomService {
	return &RoomService{Rooms: rooms, Participants: participants, Guard: guard}
}

// CreateRoom inserts the room, then its two participant rows. The store does
// not give us a multi-statement transaction here, so a failed participant
// insert compensates by deleting the just-created room.
func (s *RoomService) CreateRoom(ctx context.Context, actor models.Actor, in CreateRoomInput) (*models.Room, error) {
	if in.CandidateID == 0 || in.CompanyGroupID == 0 {
		return nil, apperrors.Validation("candidateId and companyGroupId are required")
	}

	// Only a participant-to-be may open the room.
	switch {
	case actor.IsCandidate():
		if actor.ID != in.CandidateID {
			return nil, apperrors.ErrRoomAccess
		}
	default:
		groupIDs, err := s.Guard.PermittedGroupIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		permitted := false
		for _, id := range groupIDs {
			if id == in.CompanyGroupID {
				permitted = true
				break
			}
		}
		if !permitted {
			return nil, apperrors.ErrRoomAccess
		}
	}

	roomType := in.Type
	if roomType == "" {
		roomType = "direct"
	}
	room := models.Room{
		Type:                roomType,
		CandidateID:         in.CandidateID,
		CompanyGroupID:      in.CompanyGroupID,
		RelatedJobPostingID: in.RelatedJobPostingID,
	}
	if err := s.Rooms.Create(ctx, &room); err != nil {
		return nil, apperrors.Persistence("create room", err)
	}

	candidateID := in.CandidateID
	groupID := in.CompanyGroupID
	participants := []models.RoomParticipant{
		{RoomID: room.ID, SenderType: models.SenderCandidate, CandidateID: &candidateID},
		{RoomID: room.ID, SenderType: models.SenderCompany, CompanyGroupID: &groupID},
	}
	if err := s.Participants.CreateAll(ctx, participants); err != nil {
		// Compensating delete; the room must not survive half-created.
		if derr := s.Rooms.Delete(ctx, room.ID); derr != nil {
			log.Printf("[rooms] compensation delete failed for room %d: %v", room.ID, derr)
		}
		return nil, apperrors.Persistence("create participants", err)
	}

	return &room, nil
}

// GetRoom returns the room after the guard confirms membership.
func (s *RoomService) GetRoom(ctx context.Context, roomID uint, actor models.Actor) (*models.Room, error) {
	part, err := s.Guard.AssertParticipant(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}
	return part.Room, nil
}

// UpdateRoom changes the room's linked job posting.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uint, actor models.Actor, jobPostingID *uint) (*models.Room, error) {
	part, err := s.Guard.AssertParticipant(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}
	part.Room.RelatedJobPostingID = jobPostingID
	if err := s.Rooms.Update(ctx, part.Room); err != nil {
		return nil, apperrors.Persistence("update room", err)
	}
	return part.Room, nil
}

// DeleteRoom removes the room, cascading to its messages and participants.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uint, actor models.Actor) error {
	if _, err := s.Guard.AssertParticipant(ctx, roomID, actor); err != nil {
		return err
	}
	if err := s.Rooms.Delete(ctx, roomID); err != nil {
		return apperrors.Persistence("delete room", err)
	}
	return nil
}
