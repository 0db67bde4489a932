package concurrency_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/concurrency"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func TestWriteFlippedRoutesLog_ListsReversedRoutesSorted(t *testing.T) {
	sys := model.NewHighwaySystem("usai", "Interstates", "red", 1, model.LevelActive, nil)
	r1 := model.NewRoute(sys, nil, "usaiI90", "", "", "")
	r2 := model.NewRoute(sys, nil, "usaiI80", "", "", "")
	r1.Reversed = true
	r2.Reversed = true
	r3 := model.NewRoute(sys, nil, "usaiI95", "", "", "")
	sys.Routes = append(sys.Routes, r1, r2, r3)

	dir := t.TempDir()
	path := filepath.Join(dir, "flippedroutes.log")
	require.NoError(t, concurrency.WriteFlippedRoutesLog(path, []*model.HighwaySystem{sys}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "usaiI80\nusaiI90\n", string(content))
}
