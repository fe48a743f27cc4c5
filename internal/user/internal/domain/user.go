package domain

type User struct {
	Id       int64
	SN       string
	Email    string
	Nickname string
	Admin    bool
	// LastLoginDate 形如 2025-01-02，只做展示，
	// 每日奖励的幂等性由金币流水的 key 保证
	LastLoginDate string
}
