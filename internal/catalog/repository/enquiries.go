package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"garment-studio/internal/catalog/models"
)

// ============================================================
// Enquiries
// ============================================================

func (r *Repository) CreateEnquiry(ctx context.Context, e models.Enquiry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO enquiries (
            id, fabric_id, print_type, quantity, size_range, phone_number,
            email, company_name, contact_person, notes,
            design_image_url, back_design_image_url, side_design_image_url, original_logo_url
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		e.ID, e.FabricID, e.PrintType, e.Quantity, e.SizeRange, e.PhoneNumber,
		e.Email, e.CompanyName, e.ContactPerson, e.Notes,
		e.DesignImageURL, e.BackDesignImageURL, e.SideDesignImageURL, e.OriginalLogoURL,
	)
	return e.ID, err
}

func (r *Repository) ListEnquiries(ctx context.Context) ([]models.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, fabric_id, print_type, quantity, size_range, phone_number,
               email, company_name, contact_person, notes,
               design_image_url, back_design_image_url, side_design_image_url,
               original_logo_url, created_at
        FROM enquiries ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Enquiry
	for rows.Next() {
		var e models.Enquiry
		if err := rows.Scan(
			&e.ID, &e.FabricID, &e.PrintType, &e.Quantity, &e.SizeRange, &e.PhoneNumber,
			&e.Email, &e.CompanyName, &e.ContactPerson, &e.Notes,
			&e.DesignImageURL, &e.BackDesignImageURL, &e.SideDesignImageURL,
			&e.OriginalLogoURL, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, fabric_id, print_type, quantity, size_range, phone_number,
               email, company_name, contact_person, notes,
               design_image_url, back_design_image_url, side_design_image_url,
               original_logo_url, created_at
        FROM enquiries WHERE id = ?
    `, id)

	var e models.Enquiry
	if err := row.Scan(
		&e.ID, &e.FabricID, &e.PrintType, &e.Quantity, &e.SizeRange, &e.PhoneNumber,
		&e.Email, &e.CompanyName, &e.ContactPerson, &e.Notes,
		&e.DesignImageURL, &e.BackDesignImageURL, &e.SideDesignImageURL,
		&e.OriginalLogoURL, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) DeleteEnquiry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ============================================================
// Reviews
// ============================================================

func (r *Repository) ListReviews(ctx context.Context, publishedOnly bool) ([]models.Review, error) {
	query := `SELECT id, author, rating, comment, published, created_at FROM reviews`
	if publishedOnly {
		query += ` WHERE published = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.Author, &rv.Rating, &rv.Comment, &rv.Published, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repository) CreateReview(ctx context.Context, rv models.Review) (string, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO reviews (id, author, rating, comment, published)
        VALUES (?, ?, ?, ?, ?)
    `, rv.ID, rv.Author, rv.Rating, rv.Comment, rv.Published)
	return rv.ID, err
}

func (r *Repository) UpdateReview(ctx context.Context, rv models.Review) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE reviews SET author = ?, rating = ?, comment = ?, published = ?
        WHERE id = ?
    `, rv.Author, rv.Rating, rv.Comment, rv.Published, rv.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *Repository) DeleteReview(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ============================================================
// Settings
// ============================================================

func (r *Repository) ListSettings(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO settings (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `, key, value)
	return err
}
