package services

import (
	"context"
	"sort"
	"time"

	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
)

// fakeStore is an in-memory stand-in for the gorm Store, implementing every
// repository port the services consume.
type fakeStore struct {
	rooms         map[uint]*models.Room
	msgs          []*models.Message
	perms         map[uint][]models.GroupPermission
	accountGroups map[uint][]uint
	users         map[uint]*models.CompanyUser
	candidates    map[uint]*models.Candidate
	blocked       map[uint][]string
	participants  []models.RoomParticipant

	nextMsgID        uint
	nextRoomID       uint
	failParticipants bool
	roomErr          error // forces room listing to fail
	deletedRooms     []uint
	touched          map[uint]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:         make(map[uint]*models.Room),
		perms:         make(map[uint][]models.GroupPermission),
		accountGroups: make(map[uint][]uint),
		users:         make(map[uint]*models.CompanyUser),
		candidates:    make(map[uint]*models.Candidate),
		blocked:       make(map[uint][]string),
		touched:       make(map[uint]time.Time),
	}
}

// addRoom registers a room between a candidate and a group of one company.
func (f *fakeStore) addRoom(id, candidateID, groupID uint, companyName string) *models.Room {
	room := &models.Room{
		ID:             id,
		Type:           "direct",
		CandidateID:    candidateID,
		CompanyGroupID: groupID,
		CompanyGroup: models.CompanyGroup{
			ID:   groupID,
			Name: "Recruiting",
			CompanyAccount: models.CompanyAccount{
				Name: companyName,
			},
		},
		Candidate: models.Candidate{ID: candidateID, FirstName: "Taro", LastName: "Yamada"},
	}
	f.rooms[id] = room
	return room
}

func (f *fakeStore) addMessage(roomID uint, sender models.SenderType, senderID uint, content string, status models.MessageStatus, sentAt time.Time) *models.Message {
	f.nextMsgID++
	m := &models.Message{
		ID:          f.nextMsgID,
		RoomID:      roomID,
		SenderType:  sender,
		MessageType: models.TypeGeneral,
		Content:     content,
		Status:      status,
		SentAt:      sentAt,
	}
	id := senderID
	if sender == models.SenderCandidate {
		m.SenderCandidateID = &id
	} else {
		groupID := f.rooms[roomID].CompanyGroupID
		m.SenderCompanyGroupID = &groupID
		m.SenderCompanyUserID = &id
	}
	f.msgs = append(f.msgs, m)
	return m
}

// ─── RoomRepository ─────────────────────────────────────────────────────────

func (f *fakeStore) FindByID(_ context.Context, id uint) (*models.Room, error) {
	if f.roomErr != nil {
		return nil, f.roomErr
	}
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return room, nil
}

func (f *fakeStore) ListByCandidate(_ context.Context, candidateID uint) ([]models.Room, error) {
	if f.roomErr != nil {
		return nil, f.roomErr
	}
	var out []models.Room
	for _, r := range f.rooms {
		if r.CandidateID == candidateID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListByGroupIDs(_ context.Context, groupIDs []uint) ([]models.Room, error) {
	if f.roomErr != nil {
		return nil, f.roomErr
	}
	set := make(map[uint]bool, len(groupIDs))
	for _, id := range groupIDs {
		set[id] = true
	}
	var out []models.Room
	for _, r := range f.rooms {
		if set[r.CompanyGroupID] {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, room *models.Room) error {
	f.nextRoomID++
	room.ID = f.nextRoomID
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeStore) Update(_ context.Context, room *models.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeStore) Touch(_ context.Context, id uint, at time.Time) error {
	f.touched[id] = at
	if r, ok := f.rooms[id]; ok {
		r.UpdatedAt = at
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	delete(f.rooms, id)
	kept := f.msgs[:0]
	for _, m := range f.msgs {
		if m.RoomID != id {
			kept = append(kept, m)
		}
	}
	f.msgs = kept
	f.deletedRooms = append(f.deletedRooms, id)
	return nil
}

// ─── ParticipantRepository ──────────────────────────────────────────────────

func (f *fakeStore) CreateAll(_ context.Context, participants []models.RoomParticipant) error {
	if f.failParticipants {
		return errInjected
	}
	f.participants = append(f.participants, participants...)
	return nil
}

// ─── MessageRepository ──────────────────────────────────────────────────────

func (f *fakeStore) ListByRoom(_ context.Context, roomID uint, limit, offset int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.msgs {
		if m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	if limit > 0 {
		if offset >= len(out) {
			return []models.Message{}, nil
		}
		end := offset + limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, nil
}

func (f *fakeStore) CreateMessage(_ context.Context, msg *models.Message) error {
	f.nextMsgID++
	msg.ID = f.nextMsgID
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	stored := *msg
	f.msgs = append(f.msgs, &stored)
	return nil
}

func (f *fakeStore) MarkRoomRead(_ context.Context, roomID uint, senderSide models.SenderType, at time.Time) (int64, error) {
	var n int64
	for _, m := range f.msgs {
		if m.RoomID == roomID && m.Status == models.StatusSent && m.SenderType == senderSide {
			m.Status = models.StatusRead
			t := at
			m.ReadAt = &t
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, roomID uint, ids []uint, status models.MessageStatus, at time.Time, actor models.Actor) (int64, error) {
	idSet := make(map[uint]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var n int64
	for _, m := range f.msgs {
		if m.RoomID != roomID || !idSet[m.ID] {
			continue
		}
		if actor.IsCandidate() && m.SenderCandidateID != nil && *m.SenderCandidateID == actor.ID {
			continue
		}
		if actor.IsCompany() && m.SenderCompanyUserID != nil && *m.SenderCompanyUserID == actor.ID {
			continue
		}
		switch status {
		case models.StatusRead:
			if m.Status != models.StatusSent {
				continue
			}
			t := at
			m.Status = models.StatusRead
			m.ReadAt = &t
		case models.StatusReplied:
			if m.Status == models.StatusReplied {
				continue
			}
			t := at
			m.Status = models.StatusReplied
			m.RepliedAt = &t
		}
		n++
	}
	return n, nil
}

func (f *fakeStore) LatestByRooms(_ context.Context, roomIDs []uint) (map[uint]models.Message, error) {
	return f.latest(roomIDs, "")
}

func (f *fakeStore) LatestBySenderType(_ context.Context, roomIDs []uint, sender models.SenderType) (map[uint]models.Message, error) {
	return f.latest(roomIDs, sender)
}

func (f *fakeStore) latest(roomIDs []uint, sender models.SenderType) (map[uint]models.Message, error) {
	set := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		set[id] = true
	}
	out := make(map[uint]models.Message)
	for _, m := range f.msgs {
		if !set[m.RoomID] {
			continue
		}
		if sender != "" && m.SenderType != sender {
			continue
		}
		if cur, ok := out[m.RoomID]; !ok || m.SentAt.After(cur.SentAt) {
			out[m.RoomID] = *m
		}
	}
	return out, nil
}

func (f *fakeStore) CountUnreadByRooms(_ context.Context, roomIDs []uint, senderSide models.SenderType) (map[uint]int64, error) {
	set := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		set[id] = true
	}
	out := make(map[uint]int64)
	for _, m := range f.msgs {
		if set[m.RoomID] && m.Status == models.StatusSent && m.SenderType == senderSide {
			out[m.RoomID]++
		}
	}
	return out, nil
}

// ─── PermissionRepository ───────────────────────────────────────────────────

func (f *fakeStore) ListByCompanyUser(_ context.Context, companyUserID uint) ([]models.GroupPermission, error) {
	return f.perms[companyUserID], nil
}

func (f *fakeStore) GroupIDsByAccount(_ context.Context, accountID uint) ([]uint, error) {
	return f.accountGroups[accountID], nil
}

func (f *fakeStore) FindGroup(_ context.Context, groupID uint) (*models.CompanyGroup, error) {
	for _, r := range f.rooms {
		if r.CompanyGroupID == groupID {
			g := r.CompanyGroup
			return &g, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ─── User repositories ──────────────────────────────────────────────────────

func (f *fakeStore) FindCandidateByID(_ context.Context, id uint) (*models.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) FindCandidateByEmail(_ context.Context, email string) (*models.Candidate, error) {
	for _, c := range f.candidates {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) FindCompanyUserByID(_ context.Context, id uint) (*models.CompanyUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) FindCompanyUserByEmail(_ context.Context, email string) (*models.CompanyUser, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ─── BlockListRepository ────────────────────────────────────────────────────

func (f *fakeStore) CompanyNames(_ context.Context, candidateID uint) ([]string, error) {
	return f.blocked[candidateID], nil
}

// ─── ReminderRepository ─────────────────────────────────────────────────────

func (f *fakeStore) ListRoomsWithUnread(_ context.Context, olderThan time.Time) ([]repository.UnreadRoom, error) {
	byRoom := make(map[uint]*repository.UnreadRoom)
	for _, m := range f.msgs {
		if m.Status != models.StatusSent || m.SenderType != models.SenderCompany || !m.SentAt.Before(olderThan) {
			continue
		}
		u, ok := byRoom[m.RoomID]
		if !ok {
			room := f.rooms[m.RoomID]
			u = &repository.UnreadRoom{
				RoomID:         m.RoomID,
				UnreadFor:      models.SenderCandidate,
				RecipientEmail: room.Candidate.Email,
				RecipientName:  room.Candidate.LastName + " " + room.Candidate.FirstName,
				OldestSentAt:   m.SentAt,
			}
			byRoom[m.RoomID] = u
		}
		u.Count++
		if m.SentAt.Before(u.OldestSentAt) {
			u.OldestSentAt = m.SentAt
		}
	}
	out := make([]repository.UnreadRoom, 0, len(byRoom))
	for _, u := range byRoom {
		out = append(out, *u)
	}
	return out, nil
}

var errInjected = &apperrors.PersistenceError{Op: "injected", Err: context.DeadlineExceeded}

// snapshot returns a copy of every message for no-mutation assertions.
func (f *fakeStore) snapshot() []models.Message {
	out := make([]models.Message, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, *m)
	}
	return out
}
