package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taskforge/backend/internal/domain"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `
	id, name, email, password_hash, native, mobile_no, experience, skills,
	designation, department, date_of_birth, date_of_joining, image_url,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var passwordHash, native, mobileNo, designation, department, imageURL sql.NullString
	var experience sql.NullInt64
	var skills []byte
	var dateOfBirth, dateOfJoining sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&passwordHash,
		&native,
		&mobileNo,
		&experience,
		&skills,
		&designation,
		&department,
		&dateOfBirth,
		&dateOfJoining,
		&imageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.PasswordHash = fromNullString(passwordHash)
	user.Native = fromNullString(native)
	user.MobileNo = fromNullString(mobileNo)
	user.Experience = fromNullInt(experience)
	user.Designation = fromNullString(designation)
	user.Department = fromNullString(department)
	user.ImageURL = fromNullString(imageURL)
	user.DateOfBirth = fromNullTime(dateOfBirth)
	user.DateOfJoining = fromNullTime(dateOfJoining)

	if user.Skills, err = fromJSONB(skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}

	return &user, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, email, designation, department, created_at, updated_at FROM users ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var designation, department sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &designation, &department, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Designation = fromNullString(designation)
		user.Department = fromNullString(department)
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresUserRepository) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	skills, err := toJSONB(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash, native, mobile_no, experience, skills, designation, department, date_of_birth, date_of_joining)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Name,
		input.Email,
		toNullStringValue(input.PasswordHash),
		toNullStringValue(input.Native),
		toNullStringValue(input.MobileNo),
		toNullInt(input.Experience),
		skills,
		toNullStringValue(input.Designation),
		toNullStringValue(input.Department),
		toNullTime(input.DateOfBirth),
		toNullTime(input.DateOfJoining),
	)

	user, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, conflictFor(err)
	}
	return user, err
}

// conflictFor maps a unique violation to ErrAlreadyExists, annotated with the
// conflicting identity field so bulk import can report it per row.
func conflictFor(err error) error {
	constraint := uniqueConstraint(err)
	switch {
	case strings.Contains(constraint, "email"):
		return fmt.Errorf("%w: email already exists", domain.ErrAlreadyExists)
	case strings.Contains(constraint, "name"):
		return fmt.Errorf("%w: name already exists", domain.ErrAlreadyExists)
	case strings.Contains(constraint, "mobile"):
		return fmt.Errorf("%w: mobile number already exists", domain.ErrAlreadyExists)
	}
	return domain.ErrAlreadyExists
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error) {
	skills, err := toJSONB(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		UPDATE users SET
			native = COALESCE($2, native),
			mobile_no = COALESCE($3, mobile_no),
			experience = COALESCE($4, experience),
			skills = COALESCE($5, skills),
			designation = COALESCE($6, designation),
			department = COALESCE($7, department),
			image_url = COALESCE($8, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		id,
		toNullString(input.Native),
		toNullString(input.MobileNo),
		toNullInt(input.Experience),
		skills,
		toNullString(input.Designation),
		toNullString(input.Department),
		toNullString(input.ImageURL),
	)

	user, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, conflictFor(err)
	}
	return user, err
}

func (r *PostgresUserRepository) FindConflicts(ctx context.Context, names, emails, mobiles []string) (*domain.UserConflicts, error) {
	conflicts := &domain.UserConflicts{
		Names:   make(map[string]bool),
		Emails:  make(map[string]bool),
		Mobiles: make(map[string]bool),
	}

	namesJSON, err := toJSONB(names)
	if err != nil {
		return nil, err
	}
	emailsJSON, err := toJSONB(emails)
	if err != nil {
		return nil, err
	}
	mobilesJSON, err := toJSONB(mobiles)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT name, email, mobile_no
		FROM users
		WHERE name IN (SELECT jsonb_array_elements_text($1::jsonb))
		   OR lower(email) IN (SELECT lower(jsonb_array_elements_text($2::jsonb)))
		   OR mobile_no IN (SELECT jsonb_array_elements_text($3::jsonb))
	`

	rows, err := r.db.QueryContext(ctx, query, namesJSON, emailsJSON, mobilesJSON)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, email string
		var mobile sql.NullString
		if err := rows.Scan(&name, &email, &mobile); err != nil {
			return nil, err
		}
		conflicts.Names[name] = true
		conflicts.Emails[strings.ToLower(email)] = true
		if mobile.Valid {
			conflicts.Mobiles[mobile.String] = true
		}
	}

	return conflicts, rows.Err()
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

var _ domain.UserRepository = (*PostgresUserRepository)(nil)
