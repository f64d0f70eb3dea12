package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"property-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnswer_ForwardsContext(t *testing.T) {
	var gotQuery string
	var gotHistory []domain.ChatMessage
	router := newTestRouter(testDeps{
		answer: func(ctx context.Context, query string, history []domain.ChatMessage) (string, error) {
			gotQuery, gotHistory = query, history
			return "Two bedrooms.", nil
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ai/answer",
		`{"query":"How many bedrooms?","context":[{"role":"user","content":"Tell me about the loft"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Two bedrooms."}`, rec.Body.String())
	assert.Equal(t, "How many bedrooms?", gotQuery)
	assert.Equal(t, []domain.ChatMessage{{Role: "user", Content: "Tell me about the loft"}}, gotHistory)
}

func TestGetDescription(t *testing.T) {
	router := newTestRouter(testDeps{
		describe: func(ctx context.Context, p domain.PropertyDescriptor) (string, error) {
			assert.Equal(t, "Loft", p.Name)
			assert.Equal(t, []string{"gym"}, p.Amenities)
			return "A bright loft.", nil
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ai/description", `{"name":"Loft","amenities":["gym"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"description":"A bright loft."}`, rec.Body.String())
}

func TestGetComparison(t *testing.T) {
	router := newTestRouter(testDeps{
		compare: func(ctx context.Context, ps []domain.PropertyDescriptor) (string, error) {
			require.Len(t, ps, 2)
			return "Cottage is cheaper.", nil
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/ai/comparison", `[{"name":"Loft"},{"name":"Cottage"}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comparison":"Cottage is cheaper."}`, rec.Body.String())
}

func TestGenerationErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"generator disabled", domain.ErrGeneratorDisabled, http.StatusServiceUnavailable},
		{"empty output", domain.ErrEmptyGeneration, http.StatusBadGateway},
		{"upstream failure", errors.New("quota exceeded"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(testDeps{
				answer: func(context.Context, string, []domain.ChatMessage) (string, error) { return "", tc.err },
			})
			rec := doRequest(t, router, http.MethodPost, "/api/v1/ai/answer", `{"query":"hi"}`)
			assert.Equal(t, tc.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "quota")
		})
	}
}

func TestGeneration_InvalidBody(t *testing.T) {
	router := newTestRouter(testDeps{})
	rec := doRequest(t, router, http.MethodPost, "/api/v1/ai/comparison", `{"name":"not an array"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
