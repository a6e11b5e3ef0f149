package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
)

func TestListRunsCommand(t *testing.T) {
	history := newMemoryHistory()
	for i, ct := range []domain.ComponentType{domain.TypeRates, domain.TypeWing, domain.TypeRates} {
		require.NoError(t, history.RecordRun(domain.Run{
			ID:            string(rune('a' + i)),
			ComponentType: ct,
			StartedAt:     time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}, nil))
	}

	tests := []struct {
		name    string
		ct      domain.ComponentType
		limit   int
		wantIDs []string
	}{
		{name: "all types, default limit", wantIDs: []string{"c", "b", "a"}},
		{name: "filtered", ct: domain.TypeRates, wantIDs: []string{"c", "a"}},
		{name: "limited", limit: 1, wantIDs: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewListRunsCommand(history, tt.ct, tt.limit).Execute(context.Background())
			require.NoError(t, err)

			var ids []string
			for _, r := range res.Runs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := NewListRunsCommand(history, "bad/type", 0).Execute(context.Background())
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestShowRunCommand(t *testing.T) {
	history := newMemoryHistory()
	require.NoError(t, history.RecordRun(domain.Run{ID: "run-1"}, []domain.RunResult{
		{RunID: "run-1", FilePath: "a.xml", Similarity: 80},
	}))

	rows, err := NewShowRunCommand(history, "run-1").Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = NewShowRunCommand(history, "nope").Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewShowRunCommand(history, "").Execute(context.Background())
	assert.Error(t, err)
}

func TestListTypesCommand(t *testing.T) {
	tc := setupCorpus(t)
	mustWrite(t, domain.DefaultPath(tc.defaultsDir, "spindle"), "<spindle><rpm>1</rpm></spindle>")

	infos, err := NewListTypesCommand(newRepo(), domain.DefaultRegistry(), tc.defaultsDir).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, len(domain.KnownTypes)+1)

	byType := make(map[domain.ComponentType]TypeInfo)
	for _, info := range infos {
		byType[info.Type] = info
	}

	assert.True(t, byType[domain.TypeRates].HasDefault)
	assert.Equal(t, "table", byType[domain.TypeRates].Strategy)
	assert.False(t, byType[domain.TypeWing].HasDefault)
	assert.Equal(t, "copy", byType[domain.TypeLink].Strategy)

	spindle := byType["spindle"]
	assert.True(t, spindle.HasDefault)
	assert.False(t, spindle.Known)
	assert.Equal(t, infos[len(infos)-1].Type, domain.ComponentType("spindle"))
}

func TestEnsureDefaultExists(t *testing.T) {
	tc := setupCorpus(t)

	path, err := EnsureDefaultExists(tc.defaultsDir, domain.TypeRates)
	require.NoError(t, err)
	assert.Equal(t, tc.defaultPath, path)

	_, err = EnsureDefaultExists(tc.defaultsDir, domain.TypeWing)
	assert.ErrorIs(t, err, application.ErrNotFound)
}
