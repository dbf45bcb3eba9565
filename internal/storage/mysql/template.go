package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage"
)

const errDuplicateEntry = 1062

func (s *Storage) SaveTemplate(ctx context.Context, tmpl storage.Template) (int64, error) {
	const op = "storage.mysql.SaveTemplate"

	stmt := `
		INSERT INTO funding_templates (funding_stream_id, funding_period_id, template_version, schema_version, content)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, stmt,
		tmpl.FundingStreamID,
		tmpl.FundingPeriodID,
		tmpl.TemplateVersion,
		tmpl.SchemaVersion,
		tmpl.Content,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return 0, fmt.Errorf("%s: %+v: %w", op, tmpl.TemplateKey, storage.ErrTemplateExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetTemplate(ctx context.Context, key storage.TemplateKey) (*storage.Template, error) {
	const op = "storage.mysql.GetTemplate"

	query := `
		SELECT id, funding_stream_id, funding_period_id, template_version, schema_version, content, created_at
		FROM funding_templates
		WHERE funding_stream_id = ? AND funding_period_id = ? AND template_version = ?
	`

	tmpl := &storage.Template{}
	err := s.db.QueryRowContext(ctx, query, key.FundingStreamID, key.FundingPeriodID, key.TemplateVersion).Scan(
		&tmpl.ID,
		&tmpl.FundingStreamID,
		&tmpl.FundingPeriodID,
		&tmpl.TemplateVersion,
		&tmpl.SchemaVersion,
		&tmpl.Content,
		&tmpl.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %+v: %w", op, key, storage.ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tmpl, nil
}

// GetTemplates returns every stored version for a funding stream and period in the order
// they were saved, contents included.
func (s *Storage) GetTemplates(ctx context.Context, fundingStreamID, fundingPeriodID string) ([]*storage.Template, error) {
	const op = "storage.mysql.GetTemplates"

	query := `
		SELECT id, funding_stream_id, funding_period_id, template_version, schema_version, content, created_at
		FROM funding_templates
		WHERE funding_stream_id = ? AND funding_period_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, fundingStreamID, fundingPeriodID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var templates []*storage.Template
	for rows.Next() {
		tmpl := &storage.Template{}
		err := rows.Scan(
			&tmpl.ID,
			&tmpl.FundingStreamID,
			&tmpl.FundingPeriodID,
			&tmpl.TemplateVersion,
			&tmpl.SchemaVersion,
			&tmpl.Content,
			&tmpl.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		templates = append(templates, tmpl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}

	return templates, nil
}
