package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/scoutline/scoutline-api/internal/cache"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/repository"
)

const (
	directoryCacheTTL = 15 * time.Second
	timeDisplayLayout = "2006/01/02 15:04"
	noJobTitle        = "No job posting"
)

// RoomSummary is one row of a user's room directory.
type RoomSummary struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name,omitempty"`
	GroupName   string `json:"group_name,omitempty"`
	// CandidateName is only filled for company viewers.
	CandidateName   string `json:"candidate_name,omitempty"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	// LastCandidateMessageTime is the most recent candidate-sent message,
	// shown to candidate viewers as their own last activity.
	LastCandidateMessageTime string    `json:"last_candidate_message_time,omitempty"`
	UnreadCount              int64     `json:"unread_count"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// DirectoryService resolves which rooms a user may see and annotates each
// with its latest-message preview. Listing is fail-soft: store errors are
// logged and an empty directory is returned.
type DirectoryService struct {
	Rooms     repository.RoomRepository
	Messages  repository.MessageRepository
	BlockList repository.BlockListRepository
	Guard     *AccessGuard
	Cache     cache.Cache
	TTL       time.Duration
}

func NewDirectoryService(rooms repository.RoomRepository, messages repository.MessageRepository, blockList repository.BlockListRepository, guard *AccessGuard, c cache.Cache) *DirectoryService {
	return &DirectoryService{
		Rooms:     rooms,
		Messages:  messages,
		BlockList: blockList,
		Guard:     guard,
		Cache:     c,
		TTL:       directoryCacheTTL,
	}
}

// ListRooms returns the directory for the actor, consulting the short-TTL
// cache first. Failed lookups are never cached.
func (s *DirectoryService) ListRooms(ctx context.Context, actor models.Actor) []RoomSummary {
	key := fmt.Sprintf("rooms:%s:%d", actor.Type, actor.ID)

	if raw, err := s.Cache.Get(ctx, key); err == nil {
		var cached []RoomSummary
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached
		}
	}

	summaries, err := s.listRooms(ctx, actor)
	if err != nil {
		log.Printf("[directory] list rooms failed for %s/%d: %v", actor.Type, actor.ID, err)
		return []RoomSummary{}
	}

	if raw, err := json.Marshal(summaries); err == nil {
		if err := s.Cache.Set(ctx, key, string(raw), s.TTL); err != nil {
			log.Printf("[directory] cache set failed: %v", err)
		}
	}
	return summaries
}

func (s *DirectoryService) listRooms(ctx context.Context, actor models.Actor) ([]RoomSummary, error) {
	if actor.IsCandidate() {
		return s.listForCandidate(ctx, actor.ID)
	}
	return s.listForCompany(ctx, actor.ID)
}

func (s *DirectoryService) listForCandidate(ctx context.Context, candidateID uint) ([]RoomSummary, error) {
	blocked, err := s.BlockList.CompanyNames(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	blockedSet := make(map[string]bool, len(blocked))
	for _, name := range blocked {
		blockedSet[name] = true
	}

	rooms, err := s.Rooms.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	// Block-list filtering is an exact match on the company display-name.
	visible := rooms[:0]
	for _, r := range rooms {
		if blockedSet[r.CompanyGroup.CompanyAccount.Name] {
			continue
		}
		visible = append(visible, r)
	}

	return s.annotate(ctx, visible, models.SenderCandidate)
}

func (s *DirectoryService) listForCompany(ctx context.Context, companyUserID uint) ([]RoomSummary, error) {
	groupIDs, err := s.Guard.PermittedGroupIDs(ctx, companyUserID)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return []RoomSummary{}, nil
	}

	rooms, err := s.Rooms.ListByGroupIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, rooms, models.SenderCompany)
}

// annotate attaches latest-message previews and unread counts using one
// batched lookup per concern across all room ids.
func (s *DirectoryService) annotate(ctx context.Context, rooms []models.Room, viewer models.SenderType) ([]RoomSummary, error) {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	latest, err := s.Messages.LatestByRooms(ctx, ids)
	if err != nil {
		return nil, err
	}

	var latestByCandidate map[uint]models.Message
	if viewer == models.SenderCandidate {
		latestByCandidate, err = s.Messages.LatestBySenderType(ctx, ids, models.SenderCandidate)
		if err != nil {
			return nil, err
		}
	}

	unread, err := s.Messages.CountUnreadByRooms(ctx, ids, viewer.Counterpart())
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		sum := RoomSummary{
			ID:          r.ID,
			Type:        r.Type,
			JobTitle:    noJobTitle,
			UnreadCount: unread[r.ID],
			UpdatedAt:   r.UpdatedAt,
		}
		if r.RelatedJobPosting != nil {
			sum.JobTitle = r.RelatedJobPosting.Title
		}

		switch viewer {
		case models.SenderCandidate:
			sum.CompanyName = r.CompanyGroup.CompanyAccount.Name
			sum.GroupName = r.CompanyGroup.Name
			if m, ok := latestByCandidate[r.ID]; ok {
				sum.LastCandidateMessageTime = m.SentAt.Format(timeDisplayLayout)
			}
		case models.SenderCompany:
			sum.GroupName = r.CompanyGroup.Name
			sum.CandidateName = r.Candidate.LastName + " " + r.Candidate.FirstName
		}

		if m, ok := latest[r.ID]; ok {
			sum.LastMessage = m.Content
			sum.LastMessageTime = m.SentAt.Format(timeDisplayLayout)
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// InvalidateDirectory drops the cached directory for one user, called after
// mutations that change what they would see.
func (s *DirectoryService) InvalidateDirectory(ctx context.Context, actor models.Actor) {
	key := fmt.Sprintf("rooms:%s:%d", actor.Type, actor.ID)
	if _, err := s.Cache.Del(ctx, key); err != nil {
		log.Printf("[directory] cache del failed: %v", err)
	}
}
