package web

import (
	"time"

	"github.com/healthproof/healthproof/internal/coin/internal/domain"
)

type HistoryReq struct {
	// Biz 为空表示不过滤
	Biz    string `json:"biz,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type HistoryResp struct {
	Total        int64         `json:"total,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

type Transaction struct {
	Id      int64  `json:"id,omitempty"`
	Biz     string `json:"biz,omitempty"`
	Amount  int64  `json:"amount,omitempty"`
	Balance int64  `json:"balance,omitempty"`
	Ctime   string `json:"ctime,omitempty"`
}

type Account struct {
	Balance int64 `json:"balance"`
}

type BonusResp struct {
	// Granted 为 false 表示这次没有发放（已经领过）
	Granted bool  `json:"granted"`
	Balance int64 `json:"balance"`
}

func newTransaction(t domain.Transaction) Transaction {
	return Transaction{
		Id:      t.ID,
		Biz:     t.Biz,
		Amount:  t.Amount,
		Balance: t.Balance,
		Ctime:   t.Ctime.Format(time.DateTime),
	}
}
