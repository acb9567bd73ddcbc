package dtos

type CreateRoomRequest struct {
	CandidateID         uint   `json:"candidateId" binding:"required"`
	CompanyGroupID      uint   `json:"companyGroupId" binding:"required"`
	RelatedJobPostingID *uint  `json:"relatedJobPostingId"`
	Type                string `json:"type"`
}

type UpdateRoomRequest struct {
	RelatedJobPostingID *uint `json:"relatedJobPostingId"`
}
