package web

import (
	"time"

	"github.com/healthproof/healthproof/internal/vote/internal/domain"
)

type VoteReq struct {
	ClaimId int64  `json:"claimId"`
	Side    string `json:"side"`
}

type VoteResp struct {
	Vote    Vote  `json:"vote"`
	Balance int64 `json:"balance"`
}

type ClaimId struct {
	ClaimId int64 `json:"claimId"`
}

type Vote struct {
	Id       int64  `json:"id,omitempty"`
	ClaimId  int64  `json:"claimId,omitempty"`
	Side     string `json:"side,omitempty"`
	VotedAt  string `json:"votedAt,omitempty"`
	RevealAt string `json:"revealAt,omitempty"`
	Revealed bool   `json:"revealed,omitempty"`
}

func newVote(v domain.Vote) Vote {
	return Vote{
		Id:       v.ID,
		ClaimId:  v.ClaimID,
		Side:     string(v.Side),
		VotedAt:  v.VotedAt.Format(time.DateTime),
		RevealAt: v.RevealAt.Format(time.DateTime),
		Revealed: v.Revealed,
	}
}
