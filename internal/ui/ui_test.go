package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/crudadmin/internal/model"
)

func TestPanel_PadsToWidestLine(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	Panel(&buf, []string{"Posts", "a"})

	assert.Equal(t, strings.Join([]string{
		"+-------+",
		"| Posts |",
		"| a     |",
		"+-------+",
		"",
	}, "\n"), buf.String())
}

func TestColumns_IgnoresANSI(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })

	rows := Columns([][]string{
		{C(fgGreen, "Ann"), "30"},
		{"Bartholomew", "7"},
	})
	assert.Equal(t, "Ann          30", stripANSI(rows[0]))
	assert.Equal(t, "Bartholomew  7", rows[1])
}

func TestOKAndFail(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "404 Not Found")
	assert.Equal(t, "✔ added\n✖ 404 Not Found\n", buf.String())
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "3 hours ago", TimeAgo(model.TimestampOf(now.Add(-3*time.Hour)), now))
	assert.Equal(t, "-", TimeAgo("", now))
	assert.Equal(t, "-", TimeAgo("not-a-number", now))
}
