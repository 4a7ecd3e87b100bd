package class

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/database/schema"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListClasses(context context.Context, f Filter) ([]*Summary, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       p.%s,
		       (SELECT count(*) FROM %s e WHERE e.%s = c.%s AND e.%s = TRUE)
		FROM %s c
		JOIN %s p ON p.%s = c.%s
	`,
		schema.CoreClass.ID, schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreClass.TeacherID,
		schema.CoreClass.StartDate, schema.CoreClass.IsActive, schema.CoreClass.CreatedAt, schema.CoreClass.UpdatedAt,
		schema.UserProfile.Name,
		schema.CoreEnrollment.Table, schema.CoreEnrollment.ClassID, schema.CoreClass.ID, schema.CoreEnrollment.IsActive,
		schema.CoreClass.Table,
		schema.UserProfile.Table, schema.UserProfile.ID, schema.CoreClass.TeacherID,
	)

	args := []any{}
	where := ""
	if f.OnlyActive {
		where = fmt.Sprintf(" WHERE c.%s = TRUE", schema.CoreClass.IsActive)
	}
	if f.TeacherID != "" {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, f.TeacherID)
		where += fmt.Sprintf("c.%s = $%d", schema.CoreClass.TeacherID, len(args))
	}
	query += where + fmt.Sprintf(" ORDER BY c.%s ASC", schema.CoreClass.ClassName)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_classes")
	}
	defer rows.Close()

	summaries := make([]*Summary, 0)
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(
			&s.ID, &s.ClassName, &s.Subject, &s.TeacherID, &s.StartDate, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt, &s.TeacherName, &s.EnrolledCount,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_class")
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (repository *PostgresRepository) GetClass(context context.Context, id string) (*Class, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreClass.ID, schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreClass.TeacherID,
		schema.CoreClass.StartDate, schema.CoreClass.IsActive, schema.CoreClass.CreatedAt, schema.CoreClass.UpdatedAt,
		schema.CoreClass.Table, schema.CoreClass.ID,
	)

	c := &Class{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.ClassName, &c.Subject, &c.TeacherID, &c.StartDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_class")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateClass(context context.Context, c *Class) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreClass.Table,
		schema.CoreClass.ID, schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreClass.TeacherID,
		schema.CoreClass.StartDate, schema.CoreClass.IsActive, schema.CoreClass.CreatedAt, schema.CoreClass.UpdatedAt,
		schema.CoreClass.CreatedAt, schema.CoreClass.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.ClassName, c.Subject, c.TeacherID, c.StartDate, c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_class")
}

func (repository *PostgresRepository) UpdateClass(context context.Context, c *Class) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreClass.Table,
		schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreClass.TeacherID, schema.CoreClass.StartDate,
		schema.CoreClass.UpdatedAt, schema.CoreClass.ID, schema.CoreClass.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		c.ID, c.ClassName, c.Subject, c.TeacherID, c.StartDate,
	).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_class")
}

func (repository *PostgresRepository) SetClassActive(context context.Context, id string, isActive bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CoreClass.Table, schema.CoreClass.IsActive, schema.CoreClass.UpdatedAt, schema.CoreClass.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, isActive)
	if err != nil {
		return dberr.Wrap(err, "set_class_active")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Enroll inserts a new enrollment, or reactivates the old row when the
// student was previously removed from the same class.
func (repository *PostgresRepository) Enroll(context context.Context, e *Enrollment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = TRUE
		RETURNING %s, %s, %s
	`,
		schema.CoreEnrollment.Table,
		schema.CoreEnrollment.ID, schema.CoreEnrollment.ClassID, schema.CoreEnrollment.StudentID,
		schema.CoreEnrollment.IsActive, schema.CoreEnrollment.EnrolledAt,
		schema.CoreEnrollment.ClassID, schema.CoreEnrollment.StudentID, schema.CoreEnrollment.IsActive,
		schema.CoreEnrollment.ID, schema.CoreEnrollment.IsActive, schema.CoreEnrollment.EnrolledAt,
	)

	err := repository.db.QueryRow(context, query,
		e.ID, e.ClassID, e.StudentID, e.IsActive,
	).Scan(&e.ID, &e.IsActive, &e.EnrolledAt)
	return dberr.Wrap(err, "enroll_student")
}

func (repository *PostgresRepository) Unenroll(context context.Context, classID, studentID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = $2 AND %s = TRUE`,
		schema.CoreEnrollment.Table, schema.CoreEnrollment.IsActive,
		schema.CoreEnrollment.ClassID, schema.CoreEnrollment.StudentID, schema.CoreEnrollment.IsActive,
	)

	cmd, err := repository.db.Exec(context, query, classID, studentID)
	if err != nil {
		return dberr.Wrap(err, "unenroll_student")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Roster(context context.Context, classID string) ([]*Enrollee, error) {
	query := fmt.Sprintf(`
		SELECT e.%s, p.%s, p.%s, p.%s, e.%s
		FROM %s e
		JOIN %s p ON p.%s = e.%s
		WHERE e.%s = $1 AND e.%s = TRUE
		ORDER BY p.%s ASC
	`,
		schema.CoreEnrollment.ID, schema.UserProfile.ID, schema.UserProfile.Name, schema.UserProfile.Email,
		schema.CoreEnrollment.EnrolledAt,
		schema.CoreEnrollment.Table,
		schema.UserProfile.Table, schema.UserProfile.ID, schema.CoreEnrollment.StudentID,
		schema.CoreEnrollment.ClassID, schema.CoreEnrollment.IsActive,
		schema.UserProfile.Name,
	)

	rows, err := repository.db.Query(context, query, classID)
	if err != nil {
		return nil, dberr.Wrap(err, "class_roster")
	}
	defer rows.Close()

	roster := make([]*Enrollee, 0)
	for rows.Next() {
		e := &Enrollee{}
		if err := rows.Scan(&e.EnrollmentID, &e.StudentID, &e.StudentName, &e.StudentEmail, &e.EnrolledAt); err != nil {
			return nil, dberr.Wrap(err, "scan_enrollee")
		}
		roster = append(roster, e)
	}

	return roster, rows.Err()
}

func (repository *PostgresRepository) ClassesForStudent(context context.Context, studentID string) ([]*Summary, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       p.%s,
		       (SELECT count(*) FROM %s e2 WHERE e2.%s = c.%s AND e2.%s = TRUE)
		FROM %s e
		JOIN %s c ON c.%s = e.%s
		JOIN %s p ON p.%s = c.%s
		WHERE e.%s = $1 AND e.%s = TRUE AND c.%s = TRUE
		ORDER BY c.%s ASC
	`,
		schema.CoreClass.ID, schema.CoreClass.ClassName, schema.CoreClass.Subject, schema.CoreClass.TeacherID,
		schema.CoreClass.StartDate, schema.CoreClass.IsActive, schema.CoreClass.CreatedAt, schema.CoreClass.UpdatedAt,
		schema.UserProfile.Name,
		schema.CoreEnrollment.Table, schema.CoreEnrollment.ClassID, schema.CoreClass.ID, schema.CoreEnrollment.IsActive,
		schema.CoreEnrollment.Table,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreEnrollment.ClassID,
		schema.UserProfile.Table, schema.UserProfile.ID, schema.CoreClass.TeacherID,
		schema.CoreEnrollment.StudentID, schema.CoreEnrollment.IsActive, schema.CoreClass.IsActive,
		schema.CoreClass.ClassName,
	)

	rows, err := repository.db.Query(context, query, studentID)
	if err != nil {
		return nil, dberr.Wrap(err, "classes_for_student")
	}
	defer rows.Close()

	summaries := make([]*Summary, 0)
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(
			&s.ID, &s.ClassName, &s.Subject, &s.TeacherID, &s.StartDate, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt, &s.TeacherName, &s.EnrolledCount,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_student_class")
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
