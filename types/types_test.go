package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-newsdigest/apperr"
)

func intPtr(n int) *int { return &n }

func TestNewSearchRequestDefaults(t *testing.T) {
	req := NewSearchRequest("  bitcoin ", "", nil)

	assert.Equal(t, "bitcoin", req.Keyword)
	assert.Equal(t, DefaultLanguage, req.Language)
	assert.Equal(t, DefaultNumArticles, req.NumArticles)
	require.NoError(t, req.Validate())
}

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		wantErr bool
	}{
		{"valid", NewSearchRequest("ai", "de", intPtr(10)), false},
		{"blank keyword", NewSearchRequest("   ", "en", nil), true},
		{"zero articles", NewSearchRequest("ai", "en", intPtr(0)), true},
		{"negative articles", NewSearchRequest("ai", "en", intPtr(-3)), true},
		{"too many articles", NewSearchRequest("ai", "en", intPtr(MaxNumArticles+1)), true},
		{"bad language", NewSearchRequest("ai", "english", nil), true},
		{"upper-case language normalized", NewSearchRequest("ai", "FR", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestArticleBody(t *testing.T) {
	assert.Empty(t, Article{}.Body())
	assert.Empty(t, Article{Content: StringPtr("  \n ")}.Body())
	assert.Equal(t, "text", Article{Content: StringPtr(" text ")}.Body())
}
