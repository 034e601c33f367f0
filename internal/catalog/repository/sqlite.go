package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"garment-studio/internal/catalog/models"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и сажает стартовый каталог.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.seed(ctx)
}

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// ============================================================
// Seeding
// ============================================================

func (r *Repository) seed(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	productID := "00000000-0000-0000-0000-000000000001"
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO products (id, name, description, customizable)
        VALUES (?, ?, ?, 1)
    `, productID, "Classic T-Shirt", "Round-neck cotton tee for custom prints")
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	colors := []models.Color{
		{
			Name: "White", Hex: "#ffffff",
			FrontImageURL: "/static/mockups/tshirt-white-front.png",
			BackImageURL:  "/static/mockups/tshirt-white-back.png",
			SideImageURL:  "/static/mockups/tshirt-white-side.png",
		},
		{
			Name: "Black", Hex: "#111111",
			FrontImageURL: "/static/mockups/tshirt-black-front.png",
			BackImageURL:  "/static/mockups/tshirt-black-back.png",
		},
	}
	for _, c := range colors {
		_, err := r.db.ExecContext(ctx, `
            INSERT INTO product_colors (id, product_id, name, hex, front_image_url, back_image_url, side_image_url)
            VALUES (?, ?, ?, ?, ?, ?, ?)
        `, uuid.NewString(), productID, c.Name, c.Hex, c.FrontImageURL, c.BackImageURL, c.SideImageURL)
		if err != nil {
			return fmt.Errorf("seed color: %w", err)
		}
	}

	for _, name := range []string{"Cotton 180g", "Cotton 240g", "Polyester Blend"} {
		fabricID := uuid.NewString()
		if _, err := r.db.ExecContext(ctx, `INSERT INTO fabrics (id, name) VALUES (?, ?)`, fabricID, name); err != nil {
			return fmt.Errorf("seed fabric: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, `INSERT INTO product_fabrics (product_id, fabric_id) VALUES (?, ?)`, productID, fabricID); err != nil {
			return fmt.Errorf("seed product fabric: %w", err)
		}
	}

	settings := map[string]string{
		"company_name":  "Garment Works",
		"contact_phone": "+1000000000",
		"contact_email": "sales@example.com",
	}
	for k, v := range settings {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	return nil
}

// ============================================================
// Products
// ============================================================

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, description, customizable, created_at
        FROM products ORDER BY created_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Customizable, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, description, customizable, created_at
        FROM products WHERE id = ?
    `, id)

	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Customizable, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p models.Product) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO products (id, name, description, customizable)
        VALUES (?, ?, ?, ?)
    `, p.ID, p.Name, p.Description, p.Customizable)
	return p.ID, err
}

func (r *Repository) UpdateProduct(ctx context.Context, p models.Product) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE products SET name = ?, description = ?, customizable = ?
        WHERE id = ?
    `, p.Name, p.Description, p.Customizable, p.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ============================================================
// Colors
// ============================================================

func (r *Repository) ListColors(ctx context.Context, productID string) ([]models.Color, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, product_id, name, hex, front_image_url, back_image_url, side_image_url
        FROM product_colors WHERE product_id = ? ORDER BY name
    `, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Color
	for rows.Next() {
		var c models.Color
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name, &c.Hex, &c.FrontImageURL, &c.BackImageURL, &c.SideImageURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateColor(ctx context.Context, c models.Color) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO product_colors (id, product_id, name, hex, front_image_url, back_image_url, side_image_url)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, c.ID, c.ProductID, c.Name, c.Hex, c.FrontImageURL, c.BackImageURL, c.SideImageURL)
	return c.ID, err
}

func (r *Repository) DeleteColor(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_colors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ============================================================
// Fabrics
// ============================================================

func (r *Repository) ListFabrics(ctx context.Context) ([]models.Fabric, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM fabrics ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Fabric
	for rows.Next() {
		var f models.Fabric
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) CreateFabric(ctx context.Context, f models.Fabric) (string, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO fabrics (id, name) VALUES (?, ?)`, f.ID, f.Name)
	return f.ID, err
}

func (r *Repository) UpdateFabric(ctx context.Context, f models.Fabric) error {
	res, err := r.db.ExecContext(ctx, `UPDATE fabrics SET name = ? WHERE id = ?`, f.Name, f.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *Repository) DeleteFabric(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fabrics WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// ============================================================
// Customizable products
// ============================================================

// ListCustomizable собирает продукты с цветами и тканями для конструктора.
func (r *Repository) ListCustomizable(ctx context.Context) ([]models.CustomizableProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name FROM products WHERE customizable = 1 ORDER BY created_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CustomizableProduct
	for rows.Next() {
		var p models.CustomizableProduct
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		colors, err := r.ListColors(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Colors = colors

		fabrics, err := r.productFabrics(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Fabrics = fabrics
	}
	return out, nil
}

func (r *Repository) productFabrics(ctx context.Context, productID string) ([]models.Fabric, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT f.id, f.name
        FROM fabrics f
        JOIN product_fabrics pf ON pf.fabric_id = f.id
        WHERE pf.product_id = ?
        ORDER BY f.name
    `, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Fabric
	for rows.Next() {
		var f models.Fabric
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
