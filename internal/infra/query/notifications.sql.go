package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InsertNotificationJobParams struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
}

const insertNotificationJob = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) InsertNotificationJob(ctx context.Context, db DBTX, arg InsertNotificationJobParams) error {
	_, err := db.Exec(ctx, insertNotificationJob, arg.ID, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}
