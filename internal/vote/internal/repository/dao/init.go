package dao

import (
	"github.com/ego-component/egorm"
)

func InitTables(db *egorm.Component) error {
	// markets 和 coin 两张表由各自的模块迁移
	return db.AutoMigrate(
		&ClaimVote{},
	)
}
