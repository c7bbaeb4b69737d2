package pages

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashkit/internal/gui"
	"dashkit/internal/menu"
	"dashkit/internal/tui"
)

type page struct {
	g      *gui.GUI
	screen *tui.Screen
	prog   *tui.Program
}

func openPage(t *testing.T, p *Pages, build menu.PageFunc) *page {
	t.Helper()
	s := tui.NewScreen(menu.PageSlot)
	g := gui.New("test", s.Toolkit(menu.PageSlot, tui.WithWidth(100)))
	require.NoError(t, g.SetupLogger())
	require.NoError(t, build(context.Background(), g))
	return &page{g: g, screen: s, prog: tui.NewProgram(s)}
}

// press focuses key and hits enter on it.
func (pg *page) press(t *testing.T, key string) {
	t.Helper()
	require.True(t, pg.screen.Focus(menu.PageSlot, key), "focus %s", key)
	pg.prog.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestRegister(t *testing.T) {
	r := menu.NewRegistry()
	New(Options{}).Register(r)
	assert.Equal(t, []string{"pages.charts", "pages.controls", "pages.sql", "pages.table"}, r.Names())
}

func TestSampleFrame_Deterministic(t *testing.T) {
	a, b := SampleFrame(30), SampleFrame(30)
	assert.Equal(t, []string{"date", "close", "sma5", "ret", "volume"}, a.Columns())
	assert.Equal(t, 30, a.Len())
	ca, _ := a.Column("close")
	cb, _ := b.Column("close")
	assert.Equal(t, ca.Values, cb.Values)
}

func TestSummary(t *testing.T) {
	sum := Summary(SampleFrame(20))
	names, _ := sum.Column("series")
	assert.Equal(t, []any{"close", "sma5", "ret", "volume"}, names.Values)

	lo, _ := sum.Floats("min")
	hi, _ := sum.Floats("max")
	for i := range lo {
		assert.LessOrEqual(t, lo[i], hi[i])
	}
}

func TestCharts_DrawsAndSaves(t *testing.T) {
	dir := t.TempDir()
	p := New(Options{OutDir: dir, Width: 640, Height: 480})
	pg := openPage(t, p, p.Charts)

	out := pg.screen.Render()
	assert.Contains(t, out, "close")
	assert.Contains(t, out, "volume")

	ch, ok := pg.g.Chart(pricesChart)
	require.True(t, ok)
	require.NotNil(t, ch.Figure())
	assert.Len(t, ch.Figure().Cells, 2)

	pg.press(t, "save")
	_, err := os.Stat(filepath.Join(dir, "prices.png"))
	require.NoError(t, err)
	assert.Contains(t, pg.screen.Render(), "prices.png")
}

func TestCharts_EmptySelectionLogs(t *testing.T) {
	p := New(Options{OutDir: t.TempDir()})
	pg := openPage(t, p, p.Charts)

	require.NoError(t, pg.g.SetVal("series", []string{}))
	assert.Contains(t, pg.screen.Render(), "pick at least one series")
}

func TestTable_ShowsSummary(t *testing.T) {
	p := New(Options{})
	pg := openPage(t, p, p.Table)

	out := pg.screen.Render()
	assert.Contains(t, out, "series")
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "60 rows summarised")

	ch, ok := pg.g.Chart(tableChart)
	require.True(t, ok)
	require.NotNil(t, ch.Figure())
	assert.Equal(t, 2, ch.Figure().Cols)
}

func TestControls_LogsChanges(t *testing.T) {
	p := New(Options{})
	pg := openPage(t, p, p.Controls)

	require.True(t, pg.screen.Focus(menu.PageSlot, "fruit"))
	pg.prog.Update(tea.KeyMsg{Type: tea.KeyDown})
	pg.prog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, pg.screen.Render(), "fruit = banana")

	require.NoError(t, pg.g.SetVal("period", "week"))
	assert.Contains(t, pg.screen.Render(), "period = week")

	pg.press(t, "clear")
	assert.NotContains(t, pg.screen.Render(), "fruit = banana")
}

func TestControls_PreviewUpload(t *testing.T) {
	p := New(Options{})
	pg := openPage(t, p, p.Controls)
	require.NoError(t, pg.g.SetVal("more", "Preview"))

	err := previewUpload(pg.g, gui.File{Name: "x.csv", Data: []byte("a,b\n1,2\n3,4\n")})
	require.NoError(t, err)
	out := pg.screen.Render()
	assert.Contains(t, out, "x.csv (12 bytes)")

	assert.Error(t, previewUpload(pg.g, "nope"))
}

func testDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE prices (day TEXT, close REAL, volume INTEGER);
INSERT INTO prices VALUES ('2024-01-01', 10.5, 100), ('2024-01-02', 11.25, 200), ('2024-01-03', 9.75, 150);`)
	require.NoError(t, err)
	return path
}

func TestSQL_RunsConfiguredQuery(t *testing.T) {
	p := New(Options{SQLite: testDB(t), Query: "SELECT * FROM prices ORDER BY day"})
	defer p.Close()
	pg := openPage(t, p, p.SQL)

	out := pg.screen.Render()
	assert.Contains(t, out, "3 rows")
	assert.Contains(t, out, "11.25")
	ch, ok := pg.g.Chart(sqlChart)
	require.True(t, ok)
	assert.NotNil(t, ch.Figure())
}

func TestSQL_BadQueryIsLogged(t *testing.T) {
	p := New(Options{SQLite: testDB(t)})
	defer p.Close()
	pg := openPage(t, p, p.SQL)

	require.NoError(t, pg.g.SetVal("query", "SELECT * FROM missing"))
	pg.press(t, "run")
	assert.Contains(t, pg.screen.Render(), "no such table")
}

func TestSQL_NotConfigured(t *testing.T) {
	p := New(Options{})
	pg := openPage(t, p, p.SQL)
	assert.Contains(t, pg.screen.Render(), "no SQLite file configured")
}
