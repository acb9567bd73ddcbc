// Package repository defines the persistence ports the services depend on,
// plus the gorm-backed adapter. Services only ever see the interfaces, so
// tests can swap in fakes.
package repository

import (
	"context"
	"time"

	"github.com/scoutline/scoutline-api/internal/models"
)

// RoomRepository reads and mutates conversation rooms. FindByID and the List
// methods return rooms with job posting, company group (incl. account) and
// candidate associations populated.
type RoomRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	ListByCandidate(ctx context.Context, candidateID uint) ([]models.Room, error)
	ListByGroupIDs(ctx context.Context, groupIDs []uint) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	// Touch bumps the room's updated_at, done after every accepted message.
	Touch(ctx context.Context, id uint, at time.Time) error
	// Delete removes the room and cascades to its messages and participants.
	Delete(ctx context.Context, id uint) error
}

// ParticipantRepository inserts the explicit participant rows for a room.
type ParticipantRepository interface {
	CreateAll(ctx context.Context, participants []models.RoomParticipant) error
}

// MessageRepository reads and mutates messages. List results are ordered by
// sent_at ascending with sender associations populated.
type MessageRepository interface {
	ListByRoom(ctx context.Context, roomID uint, limit, offset int) ([]models.Message, error)
	CreateMessage(ctx context.Context, msg *models.Message) error

	// MarkRoomRead bulk-transitions every status=sent message in the room
	// authored by senderSide to read, stamping read_at.
	MarkRoomRead(ctx context.Context, roomID uint, senderSide models.SenderType, at time.Time) (int64, error)

	// UpdateStatus transitions the given messages, skipping any row whose
	// sender id matches the actor (a sender cannot mark their own messages).
	UpdateStatus(ctx context.Context, roomID uint, ids []uint, status models.MessageStatus, at time.Time, actor models.Actor) (int64, error)

	// LatestByRooms returns the most recent message per room in one query.
	LatestByRooms(ctx context.Context, roomIDs []uint) (map[uint]models.Message, error)

	// LatestBySenderType is LatestByRooms restricted to one sending side.
	LatestBySenderType(ctx context.Context, roomIDs []uint, sender models.SenderType) (map[uint]models.Message, error)

	// CountUnreadByRooms counts status=sent messages authored by senderSide,
	// per room.
	CountUnreadByRooms(ctx context.Context, roomIDs []uint, senderSide models.SenderType) (map[uint]int64, error)
}

// PermissionRepository resolves company-side access grants.
type PermissionRepository interface {
	ListByCompanyUser(ctx context.Context, companyUserID uint) ([]models.GroupPermission, error)
	// GroupIDsByAccount lists every group id under one company account.
	GroupIDsByAccount(ctx context.Context, accountID uint) ([]uint, error)
	FindGroup(ctx context.Context, groupID uint) (*models.CompanyGroup, error)
}

// CandidateRepository looks up candidates.
type CandidateRepository interface {
	FindCandidateByID(ctx context.Context, id uint) (*models.Candidate, error)
	FindCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error)
}

// CompanyUserRepository looks up company users with their home group loaded.
type CompanyUserRepository interface {
	FindCompanyUserByID(ctx context.Context, id uint) (*models.CompanyUser, error)
	FindCompanyUserByEmail(ctx context.Context, email string) (*models.CompanyUser, error)
}

// BlockListRepository returns the company display-names a candidate excludes
// from their room directory.
type BlockListRepository interface {
	CompanyNames(ctx context.Context, candidateID uint) ([]string, error)
}

// UnreadRoom is one room with pending-unread messages, used by the reminder
// scheduler. UnreadFor is the side the reminder mail goes to.
type UnreadRoom struct {
	RoomID         uint
	UnreadFor      models.SenderType
	RecipientEmail string
	RecipientName  string
	Count          int64
	OldestSentAt   time.Time
}

// ReminderRepository feeds the unread-reminder cron job.
type ReminderRepository interface {
	ListRoomsWithUnread(ctx context.Context, olderThan time.Time) ([]UnreadRoom, error)
}
