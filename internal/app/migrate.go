package app

import (
	"gorm.io/gorm"

	"github.com/yohan114/leave-management-system/internal/balance"
	"github.com/yohan114/leave-management-system/internal/department"
	"github.com/yohan114/leave-management-system/internal/holiday"
	"github.com/yohan114/leave-management-system/internal/leaverequest"
	"github.com/yohan114/leave-management-system/internal/leavetype"
	"github.com/yohan114/leave-management-system/internal/notification"
	"github.com/yohan114/leave-management-system/internal/user"
)

// outbox_events is written with raw SQL, so it has no gorm model to migrate.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id            uuid PRIMARY KEY,
	request_id    text,
	aggregate_type varchar(50) NOT NULL,
	aggregate_id  uuid NOT NULL,
	event_type    varchar(100) NOT NULL,
	topic         varchar(100) NOT NULL,
	payload       jsonb NOT NULL,
	status        varchar(20) NOT NULL DEFAULT 'pending',
	retry_count   int NOT NULL DEFAULT 0,
	error_message varchar(500),
	next_retry_at timestamptz,
	processed_at  timestamptz,
	created_at    timestamptz NOT NULL DEFAULT NOW(),
	updated_at    timestamptz
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
	ON outbox_events (status, created_at);
`

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&department.Department{},
		&user.User{},
		&leavetype.LeaveType{},
		&balance.LeaveBalance{},
		&leaverequest.LeaveRequest{},
		&notification.Notification{},
		&holiday.Holiday{},
	); err != nil {
		return err
	}
	return db.Exec(outboxDDL).Error
}
