package database

type RunRepository interface {
	InsertRun(run Run) error
	ListRecent(limit int) ([]Run, error)
	GetRunCount() (int, error)
}
