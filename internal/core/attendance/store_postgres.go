package attendance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/database/schema"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Sheet(context context.Context, lessonID string) ([]*SheetEntry, error) {
	// Left join: every active enrollee of the lesson's class appears, marked
	// or not.
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, a.%s
		FROM %s l
		JOIN %s e ON e.%s = l.%s AND e.%s = TRUE
		JOIN %s p ON p.%s = e.%s
		LEFT JOIN %s a ON a.%s = l.%s AND a.%s = e.%s
		WHERE l.%s = $1
		ORDER BY p.%s ASC
	`,
		schema.UserProfile.ID, schema.UserProfile.Name, schema.CoreAttendance.Status,
		schema.CoreLesson.Table,
		schema.CoreEnrollment.Table, schema.CoreEnrollment.ClassID, schema.CoreLesson.ClassID, schema.CoreEnrollment.IsActive,
		schema.UserProfile.Table, schema.UserProfile.ID, schema.CoreEnrollment.StudentID,
		schema.CoreAttendance.Table, schema.CoreAttendance.LessonID, schema.CoreLesson.ID,
		schema.CoreAttendance.StudentID, schema.CoreEnrollment.StudentID,
		schema.CoreLesson.ID,
		schema.UserProfile.Name,
	)

	rows, err := repository.db.Query(context, query, lessonID)
	if err != nil {
		return nil, dberr.Wrap(err, "attendance_sheet")
	}
	defer rows.Close()

	entries := make([]*SheetEntry, 0)
	for rows.Next() {
		entry := &SheetEntry{}
		if err := rows.Scan(&entry.StudentID, &entry.StudentName, &entry.Status); err != nil {
			return nil, dberr.Wrap(err, "scan_sheet_entry")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (repository *PostgresRepository) SaveMarks(context context.Context, lessonID, markedBy string, marks []Mark) error {
	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.CoreAttendance.Table,
		schema.CoreAttendance.ID, schema.CoreAttendance.LessonID, schema.CoreAttendance.StudentID,
		schema.CoreAttendance.Status, schema.CoreAttendance.MarkedBy, schema.CoreAttendance.MarkedAt,
		schema.CoreAttendance.LessonID, schema.CoreAttendance.StudentID,
		schema.CoreAttendance.Status, schema.CoreAttendance.Status,
		schema.CoreAttendance.MarkedBy, schema.CoreAttendance.MarkedBy,
		schema.CoreAttendance.MarkedAt,
	)
	complete := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.CoreLesson.Table, schema.CoreLesson.IsCompleted, schema.CoreLesson.ID,
	)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "save_marks_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	for _, mark := range marks {
		if _, err := transaction.Exec(context, upsert,
			uuid.New(), lessonID, mark.StudentID, mark.Status, markedBy,
		); err != nil {
			return dberr.Wrap(err, "upsert_mark")
		}
	}

	cmd, err := transaction.Exec(context, complete, lessonID)
	if err != nil {
		return dberr.Wrap(err, "complete_lesson")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "save_marks_commit")
	}
	return nil
}

func (repository *PostgresRepository) HistoryForStudent(context context.Context, studentID string) ([]*HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, l.%s, l.%s, c.%s, c.%s, a.%s, a.%s
		FROM %s a
		JOIN %s l ON l.%s = a.%s
		JOIN %s c ON c.%s = l.%s
		WHERE a.%s = $1
		ORDER BY l.%s DESC
	`,
		schema.CoreAttendance.ID, schema.CoreLesson.ID, schema.CoreLesson.LessonDate,
		schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreAttendance.Status, schema.CoreAttendance.MarkedAt,
		schema.CoreAttendance.Table,
		schema.CoreLesson.Table, schema.CoreLesson.ID, schema.CoreAttendance.LessonID,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreLesson.ClassID,
		schema.CoreAttendance.StudentID,
		schema.CoreLesson.LessonDate,
	)

	rows, err := repository.db.Query(context, query, studentID)
	if err != nil {
		return nil, dberr.Wrap(err, "attendance_history")
	}
	defer rows.Close()

	history := make([]*HistoryEntry, 0)
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(
			&entry.RecordID, &entry.LessonID, &entry.LessonDate,
			&entry.ClassName, &entry.Subject, &entry.Status, &entry.MarkedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_history_entry")
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

func (repository *PostgresRepository) StatsForStudent(context context.Context, studentID string) (*Stats, error) {
	query := fmt.Sprintf(`
		SELECT count(*), count(*) FILTER (WHERE %s = $2)
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreAttendance.Status, schema.CoreAttendance.Table, schema.CoreAttendance.StudentID,
	)

	stats := &Stats{}
	err := repository.db.QueryRow(context, query, studentID, StatusPresent).Scan(&stats.TotalMarked, &stats.Present)
	if err != nil {
		return nil, dberr.Wrap(err, "attendance_stats")
	}

	if stats.TotalMarked > 0 {
		stats.Percentage = float64(stats.Present) / float64(stats.TotalMarked) * 100
	}
	return stats, nil
}
