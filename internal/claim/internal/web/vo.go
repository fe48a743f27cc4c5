package web

import (
	"time"

	"github.com/healthproof/healthproof/internal/claim/internal/domain"
)

type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ClaimId struct {
	ClaimId int64 `json:"claimId"`
}

type Claim struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty"`
	Market      Market `json:"market"`
	Ctime       string `json:"ctime,omitempty"`
}

type Market struct {
	Status           string  `json:"status"`
	YesVotes         int64   `json:"yesVotes"`
	NoVotes          int64   `json:"noVotes"`
	TotalVotes       int64   `json:"totalVotes"`
	AiVerdict        string  `json:"aiVerdict,omitempty"`
	AiConfidence     float64 `json:"aiConfidence,omitempty"`
	ConsensusSummary string  `json:"consensusSummary,omitempty"`
	ResolvedAt       string  `json:"resolvedAt,omitempty"`
}

type ClaimList struct {
	Claims []Claim `json:"claims"`
}

type ClaimDetailResp struct {
	Claim    Claim      `json:"claim"`
	Evidence []Evidence `json:"evidence"`
	// MyVote 登录用户在该命题上的投票，没投过或未登录则为空
	MyVote *MyVote `json:"myVote,omitempty"`
}

type MyVote struct {
	Side    string `json:"side"`
	VotedAt string `json:"votedAt"`
}

type EvidenceListReq struct {
	ClaimId int64  `json:"claimId"`
	Stance  string `json:"stance,omitempty"`
	Sort    string `json:"sort,omitempty"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type EvidenceList struct {
	Total    int64      `json:"total"`
	Evidence []Evidence `json:"evidence"`
}

type Evidence struct {
	Id              int64   `json:"id"`
	ClaimId         int64   `json:"claimId"`
	Stance          string  `json:"stance,omitempty"`
	StudyType       string  `json:"studyType,omitempty"`
	AiSummary       string  `json:"aiSummary,omitempty"`
	SampleSize      int64   `json:"sampleSize,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Paper           Paper   `json:"paper"`
	Ctime           string  `json:"ctime,omitempty"`
}

type Paper struct {
	Id      int64  `json:"id"`
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    int    `json:"year,omitempty"`
	Doi     string `json:"doi,omitempty"`
	Url     string `json:"url,omitempty"`
}

func newClaim(c domain.Claim) Claim {
	res := Claim{
		Id:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  string(c.Difficulty),
		Ctime:       c.Ctime.Format(time.DateTime),
		Market: Market{
			Status:           string(c.Market.Status),
			YesVotes:         c.Market.YesVotes,
			NoVotes:          c.Market.NoVotes,
			TotalVotes:       c.Market.TotalVotes,
			AiVerdict:        c.Market.AIVerdict,
			AiConfidence:     c.Market.AIConfidence,
			ConsensusSummary: c.Market.ConsensusSummary,
		},
	}
	if !c.Market.ResolvedAt.IsZero() {
		res.Market.ResolvedAt = c.Market.ResolvedAt.Format(time.DateTime)
	}
	return res
}

func newEvidence(e domain.Evidence) Evidence {
	return Evidence{
		Id:              e.ID,
		ClaimId:         e.ClaimID,
		Stance:          string(e.Stance),
		StudyType:       e.StudyType,
		AiSummary:       e.AISummary,
		SampleSize:      e.SampleSize,
		ConfidenceScore: e.ConfidenceScore,
		Ctime:           e.Ctime.Format(time.DateTime),
		Paper: Paper{
			Id:      e.Paper.ID,
			Title:   e.Paper.Title,
			Authors: e.Paper.Authors,
			Journal: e.Paper.Journal,
			Year:    e.Paper.Year,
			Doi:     e.Paper.DOI,
			Url:     e.Paper.URL,
		},
	}
}

type AdminListReq struct {
	Status string `json:"status,omitempty"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type AdminClaimList struct {
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
	Claims     []ClaimSummary `json:"claims"`
}

type ClaimSummary struct {
	Claim         Claim `json:"claim"`
	EvidenceCount int64 `json:"evidenceCount"`
	VoteCount     int64 `json:"voteCount"`
	JobCount      int64 `json:"jobCount"`
}

type CreateClaimReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

type AttachEvidenceReq struct {
	ClaimId         int64   `json:"claimId"`
	Stance          string  `json:"stance,omitempty"`
	StudyType       string  `json:"studyType,omitempty"`
	AiSummary       string  `json:"aiSummary,omitempty"`
	SampleSize      int64   `json:"sampleSize,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Paper           Paper   `json:"paper"`
}

func (req AttachEvidenceReq) toDomain() domain.Evidence {
	return domain.Evidence{
		ClaimID:         req.ClaimId,
		Stance:          domain.Stance(req.Stance),
		StudyType:       req.StudyType,
		AISummary:       req.AiSummary,
		SampleSize:      req.SampleSize,
		ConfidenceScore: req.ConfidenceScore,
		Paper: domain.Paper{
			Title:   req.Paper.Title,
			Authors: req.Paper.Authors,
			Journal: req.Paper.Journal,
			Year:    req.Paper.Year,
			DOI:     req.Paper.Doi,
			URL:     req.Paper.Url,
		},
	}
}
