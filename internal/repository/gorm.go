package repository

import (
	"context"
	"errors"
	"time"

	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"gorm.io/gorm"
)

// Store is the gorm-backed adapter satisfying every repository port.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Compile-time interface checks.
var (
	_ RoomRepository        = (*Store)(nil)
	_ ParticipantRepository = (*Store)(nil)
	_ MessageRepository     = (*Store)(nil)
	_ PermissionRepository  = (*Store)(nil)
	_ CandidateRepository   = (*Store)(nil)
	_ CompanyUserRepository = (*Store)(nil)
	_ BlockListRepository   = (*Store)(nil)
	_ ReminderRepository    = (*Store)(nil)
)

// ─── Rooms ───────────────────────────────────────────────────────────────────

func (s *Store) roomQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("RelatedJobPosting").
		Preload("CompanyGroup").
		Preload("CompanyGroup.CompanyAccount").
		Preload("Candidate")
}

func (s *Store) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := s.roomQuery(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Store) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.roomQuery(ctx).
		Where("candidate_id = ?", candidateID).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (s *Store) ListByGroupIDs(ctx context.Context, groupIDs []uint) ([]models.Room, error) {
	if len(groupIDs) == 0 {
		return []models.Room{}, nil
	}
	var rooms []models.Room
	err := s.roomQuery(ctx).
		Where("company_group_id IN ?", groupIDs).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (s *Store) Create(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Create(room).Error
}

func (s *Store) Update(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Save(room).Error
}

func (s *Store) Touch(ctx context.Context, id uint, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

// Delete hard-deletes the room and cascades to messages and participants.
func (s *Store) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", id).Delete(&models.Message{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", id).Delete(&models.RoomParticipant{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// ─── Participants ────────────────────────────────────────────────────────────

func (s *Store) CreateAll(ctx context.Context, participants []models.RoomParticipant) error {
	return s.db.WithContext(ctx).Create(&participants).Error
}

// ─── Messages ────────────────────────────────────────────────────────────────

func (s *Store) messageQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("SenderCandidate").
		Preload("SenderCompanyGroup").
		Preload("SenderCompanyGroup.CompanyAccount")
}

func (s *Store) ListByRoom(ctx context.Context, roomID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	q := s.messageQuery(ctx).
		Where("room_id = ?", roomID).
		Order("sent_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&msgs).Error
	return msgs, err
}

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *Store) MarkRoomRead(ctx context.Context, roomID uint, senderSide models.SenderType, at time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("room_id = ? AND status = ? AND sender_type = ?", roomID, models.StatusSent, senderSide).
		Updates(map[string]any{"status": models.StatusRead, "read_at": at})
	return res.RowsAffected, res.Error
}

func (s *Store) UpdateStatus(ctx context.Context, roomID uint, ids []uint, status models.MessageStatus, at time.Time, actor models.Actor) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("room_id = ? AND id IN ?", roomID, ids)

	// A participant cannot advance their own sent messages through this path.
	if actor.IsCandidate() {
		q = q.Where("sender_candidate_id IS NULL OR sender_candidate_id <> ?", actor.ID)
	} else {
		q = q.Where("sender_company_user_id IS NULL OR sender_company_user_id <> ?", actor.ID)
	}

	updates := map[string]any{"status": status}
	switch status {
	case models.StatusRead:
		// Never downgrade replied back to read.
		q = q.Where("status = ?", models.StatusSent)
		updates["read_at"] = at
	case models.StatusReplied:
		q = q.Where("status IN ?", []models.MessageStatus{models.StatusSent, models.StatusRead})
		updates["replied_at"] = at
	}

	res := q.Updates(updates)
	return res.RowsAffected, res.Error
}

// LatestByRooms uses DISTINCT ON (Postgres) to fetch the newest message per
// room in a single query.
func (s *Store) LatestByRooms(ctx context.Context, roomIDs []uint) (map[uint]models.Message, error) {
	return s.latestByRooms(ctx, roomIDs, "")
}

func (s *Store) LatestBySenderType(ctx context.Context, roomIDs []uint, sender models.SenderType) (map[uint]models.Message, error) {
	return s.latestByRooms(ctx, roomIDs, sender)
}

func (s *Store) latestByRooms(ctx context.Context, roomIDs []uint, sender models.SenderType) (map[uint]models.Message, error) {
	result := make(map[uint]models.Message)
	if len(roomIDs) == 0 {
		return result, nil
	}

	var msgs []models.Message
	q := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("room_id IN ?", roomIDs)
	if sender != "" {
		q = q.Where("sender_type = ?", sender)
	}
	err := q.
		Select("DISTINCT ON (room_id) *").
		Order("room_id, sent_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		result[m.RoomID] = m
	}
	return result, nil
}

func (s *Store) CountUnreadByRooms(ctx context.Context, roomIDs []uint, senderSide models.SenderType) (map[uint]int64, error) {
	result := make(map[uint]int64)
	if len(roomIDs) == 0 {
		return result, nil
	}

	type row struct {
		RoomID uint
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Select("room_id, COUNT(*) AS n").
		Where("room_id IN ? AND status = ? AND sender_type = ?", roomIDs, models.StatusSent, senderSide).
		Group("room_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.RoomID] = r.N
	}
	return result, nil
}

// ─── Permissions ─────────────────────────────────────────────────────────────

func (s *Store) ListByCompanyUser(ctx context.Context, companyUserID uint) ([]models.GroupPermission, error) {
	var perms []models.GroupPermission
	err := s.db.WithContext(ctx).
		Where("company_user_id = ?", companyUserID).
		Find(&perms).Error
	return perms, err
}

func (s *Store) GroupIDsByAccount(ctx context.Context, accountID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.CompanyGroup{}).
		Where("company_account_id = ?", accountID).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *Store) FindGroup(ctx context.Context, groupID uint) (*models.CompanyGroup, error) {
	var group models.CompanyGroup
	err := s.db.WithContext(ctx).
		Preload("CompanyAccount").
		First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

func (s *Store) FindCandidateByID(ctx context.Context, id uint) (*models.Candidate, error) {
	var c models.Candidate
	err := s.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	var c models.Candidate
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindCompanyUserByID(ctx context.Context, id uint) (*models.CompanyUser, error) {
	var u models.CompanyUser
	err := s.db.WithContext(ctx).Preload("CompanyGroup").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindCompanyUserByEmail(ctx context.Context, email string) (*models.CompanyUser, error) {
	var u models.CompanyUser
	err := s.db.WithContext(ctx).Preload("CompanyGroup").Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ─── Block list ──────────────────────────────────────────────────────────────

func (s *Store) CompanyNames(ctx context.Context, candidateID uint) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.BlockedCompany{}).
		Where("candidate_id = ?", candidateID).
		Pluck("company_name", &names).Error
	return names, err
}

// ─── Reminders ───────────────────────────────────────────────────────────────

// ListRoomsWithUnread finds rooms holding company-sent messages still at
// status=sent older than the threshold, with the candidate recipient joined.
// Company-side reminders would fan out to every permitted user, so only the
// candidate direction is mailed.
func (s *Store) ListRoomsWithUnread(ctx context.Context, olderThan time.Time) ([]UnreadRoom, error) {
	type row struct {
		RoomID       uint
		Email        string
		FirstName    string
		LastName     string
		N            int64
		OldestSentAt time.Time
	}
	var rows []row
	err := s.db.WithContext(ctx).Raw(`
		SELECT m.room_id AS room_id,
		       c.email AS email,
		       c.first_name AS first_name,
		       c.last_name AS last_name,
		       COUNT(*) AS n,
		       MIN(m.sent_at) AS oldest_sent_at
		FROM messages m
		JOIN rooms r ON r.id = m.room_id
		JOIN candidates c ON c.id = r.candidate_id
		WHERE m.status = ? AND m.sender_type = ? AND m.sent_at < ?
		GROUP BY m.room_id, c.email, c.first_name, c.last_name`,
		models.StatusSent, models.SenderCompany, olderThan,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	unread := make([]UnreadRoom, 0, len(rows))
	for _, r := range rows {
		unread = append(unread, UnreadRoom{
			RoomID:         r.RoomID,
			UnreadFor:      models.SenderCandidate,
			RecipientEmail: r.Email,
			RecipientName:  r.LastName + " " + r.FirstName,
			Count:          r.N,
			OldestSentAt:   r.OldestSentAt,
		})
	}
	return unread, nil
}
