package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgaunet/issue-manager/pkg/hooks"
	"github.com/stretchr/testify/require"
)

func TestGeneratePostExportCmd(t *testing.T) {
	tests := []struct {
		name string
		h    hooks.Hooks
		file string
		want string
	}{
		{
			name: "placeholder twice",
			h:    hooks.Hooks{PostExport: "cp %EXPORTFILE% %EXPORTFILE%.bak"},
			file: "issues.csv",
			want: "cp issues.csv issues.csv.bak",
		},
		{
			name: "no placeholder",
			h:    hooks.Hooks{PostExport: "echo done"},
			file: "issues.csv",
			want: "echo done",
		},
		{
			name: "import placeholder is not replaced",
			h:    hooks.Hooks{PostExport: "echo %IMPORTFILE%"},
			file: "issues.csv",
			want: "echo %IMPORTFILE%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.GeneratePostExportCmd(tt.file); got != tt.want {
				t.Errorf("GeneratePostExportCmd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeneratePreImportCmd(t *testing.T) {
	h := hooks.Hooks{PreImport: "aws s3 cp s3://bucket/%IMPORTFILE% %IMPORTFILE%"}
	want := "aws s3 cp s3://bucket/in.csv in.csv"
	if got := h.GeneratePreImportCmd("in.csv"); got != want {
		t.Errorf("GeneratePreImportCmd() = %v, want %v", got, want)
	}
}

func TestHasHooks(t *testing.T) {
	var h hooks.Hooks
	require.False(t, h.HasPostExport())
	require.False(t, h.HasPreImport())

	h = hooks.Hooks{PostExport: "true", PreImport: "true"}
	require.True(t, h.HasPostExport())
	require.True(t, h.HasPreImport())
}

func TestExecuteHooks(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	h := hooks.Hooks{
		PostExport: "touch " + filepath.Join(dir, "%EXPORTFILE%.post"),
		PreImport:  "touch '" + filepath.Join(dir, "%IMPORTFILE%.pre") + "'",
	}

	require.NoError(t, h.ExecutePostExport(ctx, "issues.csv"))
	_, err := os.Stat(filepath.Join(dir, "issues.csv.post"))
	require.NoError(t, err)

	require.NoError(t, h.ExecutePreImport(ctx, "in.csv"))
	_, err = os.Stat(filepath.Join(dir, "in.csv.pre"))
	require.NoError(t, err)
}

func TestExecuteEmptyHookIsNoop(t *testing.T) {
	var h hooks.Hooks
	require.NoError(t, h.ExecutePostExport(context.Background(), "x"))
	require.NoError(t, h.ExecutePreImport(context.Background(), "x"))
}

func TestExecuteFailingHook(t *testing.T) {
	h := hooks.Hooks{PreImport: "false"}
	require.Error(t, h.ExecutePreImport(context.Background(), "x"))

	h = hooks.Hooks{PostExport: "/command/that/does/not/exist"}
	require.Error(t, h.ExecutePostExport(context.Background(), "x"))
}
