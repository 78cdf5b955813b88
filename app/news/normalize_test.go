package news

import (
	"testing"

	"github.com/Semior001/newsview/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func strPtr(s string) *string { return &s }

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(slog.New(logx.NoOp()))

	tests := []struct {
		name    string
		payload string
		want    []Article
		wantErr bool
	}{
		{
			name:    "bare array",
			payload: `[{"id":1,"title":"A","link":"http://x","published":"2024-01-02T10:00:00Z"}]`,
			want:    []Article{{ID: "1", Title: "A", Link: "http://x", Published: "2024-01-02T10:00:00Z"}},
		},
		{
			name: "object with articles keeps order",
			payload: `{"articles":[
				{"id":"b","title":"B","link":"http://b","published":"2024-01-02","source":"bnr"},
				{"id":"a","title":"A","link":"http://a","published":"2024-01-01"}
			]}`,
			want: []Article{
				{ID: "b", Title: "B", Link: "http://b", Published: "2024-01-02", Source: strPtr("bnr")},
				{ID: "a", Title: "A", Link: "http://a", Published: "2024-01-01"},
			},
		},
		{
			name:    "empty articles",
			payload: `{"articles":[]}`,
			want:    []Article{},
		},
		{
			name: "malformed records are dropped",
			payload: `[
				{"id":1,"title":"A","link":"http://a","published":"2024-01-01"},
				{"id":2,"link":"http://b","published":"2024-01-01"},
				{"id":3,"title":"C","link":"http://c"},
				{"title":"D","link":"http://d","published":"2024-01-01"},
				{"id":null,"title":"E","link":"http://e","published":"2024-01-01"},
				{"id":{},"title":"F","link":"http://f","published":"2024-01-01"},
				{"id":7,"title":7,"link":"http://g","published":"2024-01-01"},
				{"id":8,"title":"","link":"http://h","published":"2024-01-01"},
				"not an object",
				null,
				{"id":9,"title":"I","link":"http://i","published":"2024-01-01"}
			]`,
			want: []Article{
				{ID: "1", Title: "A", Link: "http://a", Published: "2024-01-01"},
				{ID: "9", Title: "I", Link: "http://i", Published: "2024-01-01"},
			},
		},
		{
			name: "duplicate ids keep the first",
			payload: `[
				{"id":1,"title":"A","link":"http://a","published":"2024-01-01"},
				{"id":"1","title":"B","link":"http://b","published":"2024-01-01"}
			]`,
			want: []Article{{ID: "1", Title: "A", Link: "http://a", Published: "2024-01-01"}},
		},
		{name: "string", payload: `"not json array or object"`, wantErr: true},
		{name: "number", payload: `42`, wantErr: true},
		{name: "null", payload: `null`, wantErr: true},
		{name: "empty body", payload: ` `, wantErr: true},
		{name: "object without articles", payload: `{"items":[]}`, wantErr: true},
		{name: "articles is not an array", payload: `{"articles":{"id":1}}`, wantErr: true},
		{name: "articles is null", payload: `{"articles":null}`, wantErr: true},
		{name: "broken json", payload: `[{"id":1,`, wantErr: true},
		{name: "not json", payload: `<html></html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize([]byte(tt.payload))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnexpectedFormat)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_NormalizePage(t *testing.T) {
	n := NewNormalizer(slog.New(logx.NoOp()))

	t.Run("paging metadata", func(t *testing.T) {
		page, err := n.NormalizePage([]byte(`{
			"articles":[{"id":1,"title":"A","link":"http://a","published":"2024-01-01"},{"id":2}],
			"total":61,"pages":2,"current_page":1
		}`))
		require.NoError(t, err)
		assert.Len(t, page.Articles, 1)
		assert.Equal(t, 61, page.Total)
		assert.Equal(t, 2, page.Pages)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 1, page.Dropped)
		assert.True(t, page.Paged())
	})

	t.Run("malformed metadata is ignored", func(t *testing.T) {
		page, err := n.NormalizePage([]byte(`{"articles":[],"total":"many"}`))
		require.NoError(t, err)
		assert.Empty(t, page.Articles)
		assert.False(t, page.Paged())
	})

	t.Run("bare array has no metadata", func(t *testing.T) {
		page, err := n.NormalizePage([]byte(`[]`))
		require.NoError(t, err)
		assert.Equal(t, Page{Articles: []Article{}}, page)
	})
}

func TestArticle_HasSource(t *testing.T) {
	assert.False(t, Article{}.HasSource())
	assert.False(t, Article{Source: strPtr("")}.HasSource())
	assert.True(t, Article{Source: strPtr("bnr")}.HasSource())
}
