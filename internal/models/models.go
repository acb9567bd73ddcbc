package models

import (
	"time"

	"gorm.io/gorm"
)

// SenderType tells which side of a room authored a message.
type SenderType string

const (
	SenderCandidate SenderType = "candidate"
	SenderCompany   SenderType = "company"
)

// Counterpart returns the opposite side of a room.
func (s SenderType) Counterpart() SenderType {
	if s == SenderCandidate {
		return SenderCompany
	}
	return SenderCandidate
}

// Permission levels a company user can hold over a company group.
// Admin expands to every group under the same company account.
const (
	PermissionAdmin  = "admin"
	PermissionMember = "member"
)

type CompanyAccount struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Groups []CompanyGroup `json:"groups,omitempty"`
}

type CompanyGroup struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyAccountID uint           `gorm:"index;not null" json:"company_account_id"`
	CompanyAccount   CompanyAccount `json:"company_account,omitempty"`

	Name string `gorm:"not null" json:"name"`
}

type CompanyUser struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Home group, used to resolve the company account for admin expansion.
	CompanyGroupID uint         `gorm:"index;not null" json:"company_group_id"`
	CompanyGroup   CompanyGroup `json:"company_group,omitempty"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
}

type Candidate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type JobPosting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyGroupID uint   `gorm:"index;not null" json:"company_group_id"`
	Title          string `gorm:"not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
}

// Room is one conversation thread between exactly one candidate and one
// company group for its whole lifetime.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"` // bumped on every new message

	Type string `gorm:"default:'direct'" json:"type"` // 'direct' or 'group'

	RelatedJobPostingID *uint       `gorm:"index" json:"related_job_posting_id"`
	RelatedJobPosting   *JobPosting `gorm:"foreignKey:RelatedJobPostingID" json:"related_job_posting,omitempty"`

	CompanyGroupID uint         `gorm:"index;not null" json:"company_group_id"`
	CompanyGroup   CompanyGroup `json:"company_group,omitempty"`

	CandidateID uint      `gorm:"index;not null" json:"candidate_id"`
	Candidate   Candidate `json:"candidate,omitempty"`
}

// RoomParticipant mirrors the room's two sides as explicit rows. Inserted
// after the room itself; a failed insert triggers a compensating room delete.
type RoomParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	RoomID         uint       `gorm:"index;not null" json:"room_id"`
	SenderType     SenderType `gorm:"not null" json:"sender_type"`
	CandidateID    *uint      `gorm:"index" json:"candidate_id,omitempty"`
	CompanyGroupID *uint      `gorm:"index" json:"company_group_id,omitempty"`
}

// Message belongs to exactly one room. Exactly one of SenderCandidateID /
// SenderCompanyGroupID is set, matching SenderType. Messages are never
// deleted individually, only via cascading room deletion.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomID uint `gorm:"index;not null" json:"room_id"`

	SenderType           SenderType `gorm:"not null" json:"sender_type"`
	SenderCandidateID    *uint      `gorm:"index" json:"sender_candidate_id,omitempty"`
	SenderCompanyGroupID *uint      `gorm:"index" json:"sender_company_group_id,omitempty"`
	// Which user inside the group actually sent it (company side only).
	SenderCompanyUserID *uint `gorm:"index" json:"sender_company_user_id,omitempty"`

	MessageType MessageType   `gorm:"not null" json:"message_type"`
	Subject     string        `json:"subject"`
	Content     string        `gorm:"type:text;not null" json:"content"`
	Status      MessageStatus `gorm:"default:'sent';index" json:"status"`
	FileURLs    string        `gorm:"type:text" json:"file_urls"` // JSON-encoded list

	SentAt    time.Time  `gorm:"autoCreateTime;index" json:"sent_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`

	SenderCandidate    *Candidate    `gorm:"foreignKey:SenderCandidateID" json:"sender_candidate,omitempty"`
	SenderCompanyGroup *CompanyGroup `gorm:"foreignKey:SenderCompanyGroupID" json:"sender_company_group,omitempty"`
}

// SenderDisplayName resolves the name shown next to a message.
func (m *Message) SenderDisplayName() string {
	switch m.SenderType {
	case SenderCandidate:
		if m.SenderCandidate != nil {
			return m.SenderCandidate.LastName + " " + m.SenderCandidate.FirstName
		}
	case SenderCompany:
		if m.SenderCompanyGroup != nil {
			if m.SenderCompanyGroup.CompanyAccount.Name != "" {
				return m.SenderCompanyGroup.CompanyAccount.Name + " " + m.SenderCompanyGroup.Name
			}
			return m.SenderCompanyGroup.Name
		}
	}
	return ""
}

// GroupPermission grants a company user access to a company group's rooms.
// A user with zero rows has access to zero rooms.
type GroupPermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyUserID   uint   `gorm:"index:idx_user_group,unique;not null" json:"company_user_id"`
	CompanyGroupID  uint   `gorm:"index:idx_user_group,unique;not null" json:"company_group_id"`
	PermissionLevel string `gorm:"default:'member'" json:"permission_level"`
}

// BlockedCompany is a candidate's exclusion of one company display-name from
// their room directory. Matching is by exact name string, not by id.
type BlockedCompany struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CandidateID uint   `gorm:"index;not null" json:"candidate_id"`
	CompanyName string `gorm:"not null" json:"company_name"`
}
