package commands

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
)

func TestAdoptDefaultCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     *AdoptDefaultCommand
		wantErr string
	}{
		{name: "missing type", cmd: NewAdoptDefaultCommand(nil, nil, "", "a.xml", "d"), wantErr: "component type"},
		{name: "missing source", cmd: NewAdoptDefaultCommand(nil, nil, domain.TypeRates, "", "d"), wantErr: "source path"},
		{name: "missing defaults dir", cmd: NewAdoptDefaultCommand(nil, nil, domain.TypeRates, "a.xml", ""), wantErr: "defaults dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
			var verr *application.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestAdoptDefaultCommand_SourceComparesAtHundred(t *testing.T) {
	tc := setupCorpus(t)
	source := tc.path("drift.xml")

	res, err := NewAdoptDefaultCommand(newRepo(), nil, domain.TypeRates, source, tc.defaultsDir).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tc.defaultPath, res.DefaultPath)
	assert.True(t, contains(res.Message, "from drift"))

	diff := NewDiffFileCommand(newRepo(), domain.TypeRates, tc.defaultPath, source)
	got, err := diff.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Result.Similarity)

	compared, err := NewCompareCorpusCommand(newRepo(), nil, domain.TypeRates, tc.defaultPath, tc.corpusDir).
		Execute(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, compared.Results)
	assert.Equal(t, "drift.xml", compared.Results[0].FileName)
	assert.Equal(t, 100.0, compared.Results[0].Similarity)
}

func TestAdoptDefaultCommand_NoInstanceKeepsDefault(t *testing.T) {
	tc := setupCorpus(t)
	before := mustRead(t, tc.defaultPath)

	_, err := NewAdoptDefaultCommand(newRepo(), nil, domain.TypeRates, tc.path("nofeed.xml"), tc.defaultsDir).
		Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, mustRead(t, tc.defaultPath))
}

func TestAdoptDefaultCommand_CreatesDefaultsDir(t *testing.T) {
	tc := setupCorpus(t)
	require.NoError(t, os.RemoveAll(tc.defaultsDir))

	_, err := NewAdoptDefaultCommand(newRepo(), nil, domain.TypeRates, tc.path("close.xml"), tc.defaultsDir).
		Execute(context.Background())
	require.NoError(t, err)

	def, err := newRepo().LoadDefault(tc.defaultPath)
	require.NoError(t, err)
	assert.Equal(t, "103", def.Child("feed").Text)
}
