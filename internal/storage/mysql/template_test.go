package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/storage"
)

func uniqueStream() string {
	return fmt.Sprintf("TST%d", time.Now().UnixNano())
}

func TestSaveAndGetTemplate(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()

	key := storage.TemplateKey{FundingStreamID: uniqueStream(), FundingPeriodID: "AY-2122", TemplateVersion: "1.0"}
	id, err := s.SaveTemplate(ctx, storage.Template{TemplateKey: key, SchemaVersion: "1.2", Content: `{"a":1}`})
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := s.GetTemplate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, got.TemplateKey)
	assert.Equal(t, "1.2", got.SchemaVersion)
	assert.Equal(t, `{"a":1}`, got.Content)

	_, err = s.SaveTemplate(ctx, storage.Template{TemplateKey: key, SchemaVersion: "1.2", Content: `{}`})
	assert.ErrorIs(t, err, storage.ErrTemplateExists)
}

func TestGetTemplate_NotFound(t *testing.T) {
	s := requireDB(t)

	_, err := s.GetTemplate(context.Background(), storage.TemplateKey{FundingStreamID: uniqueStream()})

	assert.ErrorIs(t, err, storage.ErrTemplateNotFound)
}

func TestGetTemplates(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()
	stream := uniqueStream()

	versions := []string{"2.0", "10.0", "1.5"}
	for _, v := range versions {
		_, err := s.SaveTemplate(ctx, storage.Template{
			TemplateKey:   storage.TemplateKey{FundingStreamID: stream, FundingPeriodID: "FY-2122", TemplateVersion: v},
			SchemaVersion: "1.1",
			Content:       "{}",
		})
		require.NoError(t, err)
	}

	got, err := s.GetTemplates(ctx, stream, "FY-2122")
	require.NoError(t, err)
	require.Len(t, got, len(versions))
	for i, v := range versions {
		assert.Equal(t, v, got[i].TemplateVersion, "versions come back in save order")
	}
}
