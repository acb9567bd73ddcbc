package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
)

// MessageView is a message joined with its sender's display name.
type MessageView struct {
	ID          uint                 `json:"id"`
	RoomID      uint                 `json:"room_id"`
	SenderType  models.SenderType    `json:"sender_type"`
	SenderName  string               `json:"sender_name"`
	MessageType models.MessageType   `json:"message_type"`
	Subject     string               `json:"subject,omitempty"`
	Content     string               `json:"content"`
	Status      models.MessageStatus `json:"status"`
	FileURLs    []string             `json:"file_urls,omitempty"`
	SentAt      time.Time            `json:"sent_at"`
	ReadAt      *time.Time           `json:"read_at,omitempty"`
	RepliedAt   *time.Time           `json:"replied_at,omitempty"`
}

// SendMessageInput carries the validated payload for posting a message.
type SendMessageInput struct {
	Content     string
	Subject     string
	MessageType string
	FileURLs    []string
}

// MessageService lists and appends messages inside one room. Every operation
// goes through the AccessGuard first.
type MessageService struct {
	Messages repository.MessageRepository
	Rooms    repository.RoomRepository
	Guard    *AccessGuard
	now      func() time.Time
}

func NewMessageService(messages repository.MessageRepository, rooms repository.RoomRepository, guard *AccessGuard) *MessageService {
	return &MessageService{Messages: messages, Rooms: rooms, Guard: guard, now: time.Now}
}

// ListMessages returns the room's messages ordered by sent_at ascending and,
// as a side effect, bulk-marks every counterpart-sent message still at
// status=sent as read. The read-marking covers the whole room, not just the
// requested page, and its failure only logs a warning.
func (s *MessageService) ListMessages(ctx context.Context, roomID uint, actor models.Actor, page, limit int) ([]MessageView, error) {
	if _, err := s.Guard.AssertParticipant(ctx, roomID, actor); err != nil {
		return nil, err
	}

	offset := 0
	if page > 1 && limit > 0 {
		offset = (page - 1) * limit
	}

	msgs, err := s.Messages.ListByRoom(ctx, roomID, limit, offset)
	if err != nil {
		return nil, apperrors.Persistence("list messages", err)
	}

	now := s.now()
	marked := false
	if n, err := s.Messages.MarkRoomRead(ctx, roomID, actor.Type.Counterpart(), now); err != nil {
		log.Printf("[messages] read-marking failed for room %d: %v", roomID, err)
	} else {
		marked = true
		if n > 0 {
			log.Printf("[messages] marked %d message(s) read in room %d", n, roomID)
		}
	}

	views := make([]MessageView, 0, len(msgs))
	for i := range msgs {
		view := toView(&msgs[i])
		// Reflect the bulk transition in the response; the rows were fetched
		// before the update ran.
		if marked && view.SenderType == actor.Type.Counterpart() && view.Status == models.StatusSent {
			view.Status = models.StatusRead
			t := now
			view.ReadAt = &t
		}
		views = append(views, view)
	}
	return views, nil
}

// SendMessage validates, authorizes and persists a new message, then bumps
// the room's updated_at. The bump is skipped when the insert fails.
func (s *MessageService) SendMessage(ctx context.Context, roomID uint, actor models.Actor, in SendMessageInput) (*MessageView, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.Validation("message content must not be empty")
	}
	msgType, err := models.ParseMessageType(in.MessageType)
	if err != nil {
		return nil, apperrors.Validation("%v", err)
	}

	part, err := s.Guard.AssertParticipant(ctx, roomID, actor)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		RoomID:      roomID,
		SenderType:  actor.Type,
		MessageType: msgType,
		Subject:     strings.TrimSpace(in.Subject),
		Content:     content,
		Status:      models.StatusSent,
	}
	if actor.IsCandidate() {
		id := actor.ID
		msg.SenderCandidateID = &id
	} else {
		groupID := part.Room.CompanyGroupID
		userID := actor.ID
		msg.SenderCompanyGroupID = &groupID
		msg.SenderCompanyUserID = &userID
	}
	if len(in.FileURLs) > 0 {
		raw, err := json.Marshal(in.FileURLs)
		if err != nil {
			return nil, apperrors.Validation("invalid file url list")
		}
		msg.FileURLs = string(raw)
	}

	if err := s.Messages.CreateMessage(ctx, &msg); err != nil {
		return nil, apperrors.Persistence("create message", err)
	}

	if err := s.Rooms.Touch(ctx, roomID, s.now()); err != nil {
		log.Printf("[messages] room touch failed for room %d: %v", roomID, err)
	}

	view := toView(&msg)
	return &view, nil
}

// UpdateMessageStatus transitions the given messages to read or replied.
// Messages the actor sent themselves are always skipped.
func (s *MessageService) UpdateMessageStatus(ctx context.Context, roomID uint, actor models.Actor, messageIDs []uint, status string) error {
	st, err := models.ParseMessageStatus(status)
	if err != nil {
		return apperrors.Validation("%v", err)
	}
	if st != models.StatusRead && st != models.StatusReplied {
		return apperrors.Validation("status must be read or replied")
	}
	if len(messageIDs) == 0 {
		return apperrors.Validation("messageIds must not be empty")
	}

	if _, err := s.Guard.AssertParticipant(ctx, roomID, actor); err != nil {
		return err
	}

	if _, err := s.Messages.UpdateStatus(ctx, roomID, messageIDs, st, s.now(), actor); err != nil {
		return apperrors.Persistence("update message status", err)
	}
	return nil
}

func toView(m *models.Message) MessageView {
	view := MessageView{
		ID:          m.ID,
		RoomID:      m.RoomID,
		SenderType:  m.SenderType,
		SenderName:  m.SenderDisplayName(),
		MessageType: m.MessageType,
		Subject:     m.Subject,
		Content:     m.Content,
		Status:      m.Status,
		SentAt:      m.SentAt,
		ReadAt:      m.ReadAt,
		RepliedAt:   m.RepliedAt,
	}
	if m.FileURLs != "" {
		var urls []string
		if err := json.Unmarshal([]byte(m.FileURLs), &urls); err == nil {
			view.FileURLs = urls
		}
	}
	return view
}
