package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// SampleFormFields are the definitions installed into an empty store.
func SampleFormFields() []domain.FieldDefinition {
	one := "1"
	return []domain.FieldDefinition{
		{Name: "Full Name", FieldType: domain.FieldTypeText, MinLength: intRef(1), MaxLength: intRef(100), DefaultValue: strRef("John Doe"), Required: true},
		{Name: "Email", FieldType: domain.FieldTypeText, MinLength: intRef(1), MaxLength: intRef(50), DefaultValue: strRef("hello@mail.com"), Required: true},
		{Name: "Gender", FieldType: domain.FieldTypeList, DefaultValue: &one, Required: true, Options: []string{"Male", "Female", "Others"}},
		{Name: "Love React?", FieldType: domain.FieldTypeRadio, DefaultValue: &one, Required: true, Options: []string{"Yes", "No"}},
	}
}

// SeedFormFields inserts SampleFormFields when the table is empty and
// reports how many rows were written.
func SeedFormFields(ctx context.Context, db *sql.DB) (int, error) {
	count, err := CountFormFields(ctx, db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		customLog.Printf("Storage: %d form field(s) already exist, skipping seed.", count)
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO form_fields (name, field_type, min_length, max_length, default_value, required, list_of_values)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	samples := SampleFormFields()
	for _, def := range samples {
		options, err := encodeOptions(def.Options)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, def.Name, string(def.FieldType), nullInt(def.MinLength), nullInt(def.MaxLength),
			nullString(def.DefaultValue), def.Required, options); err != nil {
			return 0, fmt.Errorf("failed to seed form field '%s': %w", def.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	customLog.Printf("Storage: Seeded %d form field(s).", len(samples))
	return len(samples), nil
}

func intRef(v int) *int       { return &v }
func strRef(v string) *string { return &v }
