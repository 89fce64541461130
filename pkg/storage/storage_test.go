package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/config"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "reports/kristine_20241025_080000.pdf", want: "reports/kristine_20241025_080000.pdf"},
		{in: "reports//a/../b.pdf", want: "reports/b.pdf"},
		{in: `reports\b.pdf`, want: "reports/b.pdf"},
		{in: "", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../secret", wantErr: true},
		{in: "reports/../../secret", wantErr: true},
	}
	for _, tt := range tests {
		got, err := cleanKey(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "key %q", tt.in)
			continue
		}
		require.NoError(t, err, "key %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLocal_PutOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "reports/leon.pdf", []byte("%PDF-1.4"), "application/pdf"))

	_, err = os.Stat(filepath.Join(dir, "reports", "leon.pdf"))
	require.NoError(t, err)

	rc, err := s.Open(ctx, "reports/leon.pdf")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestLocal_OpenMissing(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "reports/none.pdf")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestLocal_RejectsTraversal(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Put(context.Background(), "../escape.pdf", []byte("x"), ""))
}

func TestNew_SelectsDriver(t *testing.T) {
	s, err := New(context.Background(), &config.ReportConfig{StorageDriver: "local", LocalDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(context.Background(), &config.ReportConfig{StorageDriver: "s3"}, zap.NewNop())
	assert.Error(t, err)
}
