package fromrow

import (
	"context"
	"database/sql"
)

// Execer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	_ Execer = (*sql.DB)(nil)
	_ Execer = (*sql.Conn)(nil)
	_ Execer = (*sql.Tx)(nil)
)

// Ack is the outcome of a statement that returns no rows.
type Ack struct {
	RowsAffected int64
	// LastInsertID is only meaningful when HasLastInsertID is set; drivers
	// such as lib/pq do not report it.
	LastInsertID    int64
	HasLastInsertID bool
}

// Execute runs a statement and reports how many rows it affected.
//
//	ack, err := fromrow.Execute(ctx, db, fromrow.NewQuery("UPDATE p SET x = x + 1"))
//	fmt.Println("rows:", ack.RowsAffected)
func Execute(ctx context.Context, e Execer, query Query) (Ack, error) {
	res, err := e.ExecContext(ctx, query.Text, query.Args...)
	if err != nil {
		return Ack{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Ack{}, err
	}

	ack := Ack{RowsAffected: n}
	if id, err := res.LastInsertId(); err == nil {
		ack.LastInsertID = id
		ack.HasLastInsertID = true
	}

	return ack, nil
}
