package utils_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestTrimSourceExt(t *testing.T) {
	require.Equal(t, "user", utils.TrimSourceExt("user.timu"))
	require.Equal(t, "user.txt", utils.TrimSourceExt("user.txt"))
}

func TestHasSourceExt(t *testing.T) {
	require.True(t, utils.HasSourceExt("app/models/user.timu"))
	require.False(t, utils.HasSourceExt("app/models/user.go"))
}

func TestExtractModuleName(t *testing.T) {
	require.Equal(t, "user", utils.ExtractModuleName("/src/app/models/user.timu"))
}

func TestFileToDottedPath(t *testing.T) {
	got := utils.FileToDottedPath("/src", "/src/app/models/user.timu")
	require.Equal(t, "app.models.user", got)
}
