package morfo

import (
	"database/sql"
	"errors"
	"time"

	"shanhu.io/misc/errcode"

	_ "modernc.org/sqlite" // sqlite driver
)

const journalSchema = `create table if not exists builds (
	id integer primary key autoincrement,
	main text not null,
	started integer not null,
	duration_ms integer not null,
	units integer not null,
	digest text not null,
	status text not null,
	error text not null
)`

// Journal entry status values.
const (
	StatusOK      = "ok"
	StatusLoad    = "load"
	StatusCompile = "compile"
	StatusRun     = "run"
	StatusExit    = "exit"
)

// JournalEntry is one build or run recorded in the journal.
type JournalEntry struct {
	ID       int64
	Main     string
	Started  time.Time
	Duration time.Duration
	Units    int
	Digest   string
	Status   string
	Error    string
}

func statusOf(err error) string {
	if err == nil {
		return StatusOK
	}
	var loadErrs LoadErrors
	var compileErr *CompileError
	var exitErr *ExitStatusError
	switch {
	case errors.As(err, &loadErrs):
		return StatusLoad
	case errors.As(err, &compileErr):
		return StatusCompile
	case errors.As(err, &exitErr):
		return StatusExit
	}
	return StatusRun
}

type journal struct {
	db *sql.DB
}

func openJournal(f string) (*journal, error) {
	db, err := sql.Open("sqlite", f)
	if err != nil {
		return nil, errcode.Annotate(err, "open journal")
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, errcode.Annotate(err, "create journal table")
	}
	return &journal{db: db}, nil
}

func (j *journal) add(e *JournalEntry) error {
	res, err := j.db.Exec(
		`insert into builds
		(main, started, duration_ms, units, digest, status, error)
		values (?, ?, ?, ?, ?, ?, ?)`,
		e.Main, e.Started.UnixNano(), e.Duration.Milliseconds(),
		e.Units, e.Digest, e.Status, e.Error,
	)
	if err != nil {
		return errcode.Annotate(err, "insert build")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errcode.Annotate(err, "get build id")
	}
	e.ID = id
	return nil
}

func (j *journal) latest(n int) ([]*JournalEntry, error) {
	rows, err := j.db.Query(
		`select id, main, started, duration_ms, units, digest, status, error
		from builds order by id desc limit ?`, n,
	)
	if err != nil {
		return nil, errcode.Annotate(err, "query builds")
	}
	defer rows.Close()

	var entries []*JournalEntry
	for rows.Next() {
		e := new(JournalEntry)
		var started, ms int64
		if err := rows.Scan(
			&e.ID, &e.Main, &started, &ms, &e.Units,
			&e.Digest, &e.Status, &e.Error,
		); err != nil {
			return nil, errcode.Annotate(err, "scan build")
		}
		e.Started = time.Unix(0, started)
		e.Duration = time.Duration(ms) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errcode.Annotate(err, "iterate builds")
	}
	return entries, nil
}

func (j *journal) Close() error { return j.db.Close() }

// ReadJournal returns the latest n entries of the journal in file f,
// newest first.
func ReadJournal(f string, n int) ([]*JournalEntry, error) {
	j, err := openJournal(f)
	if err != nil {
		return nil, err
	}
	defer j.Close()
	return j.latest(n)
}
