package attendance

import "context"

type Repository interface {
	// Sheet returns the lesson's class roster with any existing marks.
	Sheet(context context.Context, lessonID string) ([]*SheetEntry, error)

	// SaveMarks upserts every mark and flags the lesson completed, in one
	// transaction.
	SaveMarks(context context.Context, lessonID, markedBy string, marks []Mark) error

	HistoryForStudent(context context.Context, studentID string) ([]*HistoryEntry, error)
	StatsForStudent(context context.Context, studentID string) (*Stats, error)
}
