package commands

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/domain"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) OpenFile(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func (o *recordingOpener) Command(path string) (*exec.Cmd, error) {
	return exec.Command("true", path), nil
}

func TestEditDefaultCommand(t *testing.T) {
	tc := setupCorpus(t)

	t.Run("opens existing default", func(t *testing.T) {
		opener := &recordingOpener{}
		result, err := NewEditDefaultCommand(opener, domain.TypeRates, tc.defaultsDir).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{tc.defaultPath}, opener.opened)
		assert.Equal(t, tc.defaultPath, result.DefaultPath)
	})

	t.Run("missing default", func(t *testing.T) {
		opener := &recordingOpener{}
		_, err := NewEditDefaultCommand(opener, domain.TypeWing, tc.defaultsDir).Execute(context.Background())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, opener.opened)
	})

	t.Run("editor failure", func(t *testing.T) {
		opener := &recordingOpener{err: errors.New("exit status 1")}
		_, err := NewEditDefaultCommand(opener, domain.TypeRates, tc.defaultsDir).Execute(context.Background())
		assert.ErrorContains(t, err, "exit status 1")
	})
}
