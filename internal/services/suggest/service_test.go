package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxnotes/scribe-api/internal/models"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSuggester struct {
	suggestions []string
	err         error
	lastContent string
}

func (f *fakeSuggester) Suggest(ctx context.Context, content string) ([]string, error) {
	f.lastContent = content
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TitleSuggestion{}))
	return db
}

func TestSuggestTitles_GeneratesAndStores(t *testing.T) {
	db := setupTestDB(t)
	suggester := &fakeSuggester{suggestions: []string{"Go Time", "Concurrency Notes"}}
	svc := NewService(suggester, db)

	userID := uint(1)
	suggestions, err := svc.SuggestTitles(context.Background(), "a post about go", &userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Time", "Concurrency Notes"}, suggestions)
	assert.Equal(t, "a post about go", suggester.lastContent)

	var stored []models.TitleSuggestion
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "a post about go", stored[0].OriginalContent)
	assert.JSONEq(t, `["Go Time","Concurrency Notes"]`, stored[0].SuggestionsJSON)
}

func TestSuggestTitles_EmptyContent(t *testing.T) {
	svc := NewService(&fakeSuggester{}, setupTestDB(t))

	_, err := svc.SuggestTitles(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "No blog post content provided.")
}

func TestSuggestTitles_GenerationFailure(t *testing.T) {
	svc := NewService(&fakeSuggester{err: errors.New("endpoint unreachable")}, setupTestDB(t))

	_, err := svc.SuggestTitles(context.Background(), "a post about go", nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeExternalService))
}

func TestListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(&fakeSuggester{suggestions: []string{"T"}}, db)

	userID := uint(1)
	otherID := uint(2)
	_, err := svc.SuggestTitles(context.Background(), "mine", &userID)
	require.NoError(t, err)
	_, err = svc.SuggestTitles(context.Background(), "theirs", &otherID)
	require.NoError(t, err)

	records, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "mine", records[0].OriginalContent)
}

func TestDecodeSuggestions(t *testing.T) {
	assert.Nil(t, DecodeSuggestions(nil))
	assert.Nil(t, DecodeSuggestions(&models.TitleSuggestion{}))
	assert.Nil(t, DecodeSuggestions(&models.TitleSuggestion{SuggestionsJSON: "not json"}))
	assert.Equal(t, []string{"A", "B"},
		DecodeSuggestions(&models.TitleSuggestion{SuggestionsJSON: `["A","B"]`}))
}
