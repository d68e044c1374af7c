// internal/storage/form_field_repo.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

const formFieldColumns = `id, name, field_type, min_length, max_length, default_value, required, list_of_values, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateFormField inserts def and returns the stored row.
func CreateFormField(ctx context.Context, db *sql.DB, def *domain.FieldDefinition) (*domain.FieldDefinition, error) {
	options, err := encodeOptions(def.Options)
	if err != nil {
		return nil, err
	}

	sqlStatement := `INSERT INTO form_fields (name, field_type, min_length, max_length, default_value, required, list_of_values)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement,
		def.Name, string(def.FieldType), nullInt(def.MinLength), nullInt(def.MaxLength),
		nullString(def.DefaultValue), def.Required, options)
	if err != nil {
		if ce := asConstraintError(err); ce != nil {
			return nil, ce
		}
		customLog.Warnf("Storage: Failed to insert form field '%s': %v", def.Name, err)
		return nil, fmt.Errorf("database error during form field creation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for form field '%s': %v", def.Name, err)
		return nil, fmt.Errorf("failed to retrieve form field ID after creation: %w", err)
	}
	return GetFormField(ctx, db, id)
}

// ListFormFields returns every field definition ordered by id.
func ListFormFields(ctx context.Context, db *sql.DB) ([]domain.FieldDefinition, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+formFieldColumns+` FROM form_fields ORDER BY id ASC`)
	if err != nil {
		customLog.Warnf("Storage: Error listing form fields: %v", err)
		return nil, fmt.Errorf("database error listing form fields: %w", err)
	}
	defer rows.Close()

	fields := make([]domain.FieldDefinition, 0)
	for rows.Next() {
		def, err := scanFormField(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning form field row: %v", err)
			return nil, fmt.Errorf("failed processing form field list: %w", err)
		}
		fields = append(fields, *def)
	}
	if err = rows.Err(); err != nil {
		customLog.Warnf("Storage: Error iterating form field rows: %v", err)
		return nil, fmt.Errorf("failed reading form field list: %w", err)
	}
	return fields, nil
}

// GetFormField loads one field definition.
func GetFormField(ctx context.Context, db *sql.DB, id int64) (*domain.FieldDefinition, error) {
	row := db.QueryRowContext(ctx, `SELECT `+formFieldColumns+` FROM form_fields WHERE id = ? LIMIT 1`, id)
	def, err := scanFormField(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormFieldNotFound
		}
		customLog.Warnf("Storage: Failed to find form field %d: %v", id, err)
		return nil, fmt.Errorf("database error finding form field: %w", err)
	}
	return def, nil
}

// UpdateFormField overwrites every mutable column of def.ID.
func UpdateFormField(ctx context.Context, db *sql.DB, def *domain.FieldDefinition) (*domain.FieldDefinition, error) {
	options, err := encodeOptions(def.Options)
	if err != nil {
		return nil, err
	}

	sqlStatement := `UPDATE form_fields
		SET name = ?, field_type = ?, min_length = ?, max_length = ?, default_value = ?, required = ?, list_of_values = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	result, err := db.ExecContext(ctx, sqlStatement,
		def.Name, string(def.FieldType), nullInt(def.MinLength), nullInt(def.MaxLength),
		nullString(def.DefaultValue), def.Required, options, def.ID)
	if err != nil {
		if ce := asConstraintError(err); ce != nil {
			return nil, ce
		}
		customLog.Warnf("Storage: Failed to update form field %d: %v", def.ID, err)
		return nil, fmt.Errorf("database error during form field update: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, ErrFormFieldNotFound
	}
	return GetFormField(ctx, db, def.ID)
}

// DeleteFormField removes a field definition. Submissions do not reference
// fields, so nothing else is touched.
func DeleteFormField(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM form_fields WHERE id = ?`, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete form field %d: %v", id, err)
		return fmt.Errorf("database error deleting form field: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm form field deletion: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFormFieldNotFound
	}
	return nil
}

// CountFormFields returns the number of stored definitions.
func CountFormFields(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM form_fields`).Scan(&n); err != nil {
		return 0, fmt.Errorf("database error counting form fields: %w", err)
	}
	return n, nil
}

func scanFormField(row rowScanner) (*domain.FieldDefinition, error) {
	var (
		def          domain.FieldDefinition
		fieldType    string
		minLength    sql.NullInt64
		maxLength    sql.NullInt64
		defaultValue sql.NullString
		options      sql.NullString
	)
	err := row.Scan(&def.ID, &def.Name, &fieldType, &minLength, &maxLength, &defaultValue,
		&def.Required, &options, &def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		return nil, err
	}

	def.FieldType = domain.FieldType(fieldType)
	if minLength.Valid {
		v := int(minLength.Int64)
		def.MinLength = &v
	}
	if maxLength.Valid {
		v := int(maxLength.Int64)
		def.MaxLength = &v
	}
	if defaultValue.Valid {
		v := defaultValue.String
		def.DefaultValue = &v
	}
	def.Options = decodeOptions(def.ID, options)
	return &def, nil
}

func encodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(data), nil
}

// decodeOptions never fails: a missing or malformed column reads as no options.
func decodeOptions(id int64, raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var options []string
	if err := json.Unmarshal([]byte(raw.String), &options); err != nil {
		customLog.Warnf("Storage: Ignoring malformed options for form field %d: %v", id, err)
		return nil
	}
	if len(options) == 0 {
		return nil
	}
	return options
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
